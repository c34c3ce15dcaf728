package jsonutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalWithContext(t *testing.T) {
	type standing struct {
		Name string `json:"constructor_name"`
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{name: "valid JSON", data: []byte(`{"constructor_name":"McLaren"}`)},
		{name: "invalid JSON", data: []byte(`not json`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v standing
			err := UnmarshalWithContext(tt.data, &v, "standings")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "standings:")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "McLaren", v.Name)
		})
	}
}

func TestDecodeArrayAllowNull(t *testing.T) {
	type row struct {
		ID int `json:"id"`
	}

	t.Run("null is nil", func(t *testing.T) {
		got, err := DecodeArrayAllowNull[row]([]byte(" null "), "rows")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("empty body is nil", func(t *testing.T) {
		got, err := DecodeArrayAllowNull[row](nil, "rows")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("empty array is non-nil", func(t *testing.T) {
		got, err := DecodeArrayAllowNull[row]([]byte(`[]`), "rows")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("keeps order", func(t *testing.T) {
		got, err := DecodeArrayAllowNull[row]([]byte(`[{"id":3},{"id":1},{"id":2}]`), "rows")
		require.NoError(t, err)
		assert.Equal(t, []row{{3}, {1}, {2}}, got)
	})

	t.Run("object is an error", func(t *testing.T) {
		_, err := DecodeArrayAllowNull[row]([]byte(`{"id":1}`), "rows")
		assert.Error(t, err)
	})
}

func TestToString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"Hamilton", "Hamilton"},
		{float64(105), "105"},
		{float64(666.5), "666.5"},
		{7, "7"},
		{int64(44), "44"},
		{json.Number("12"), "12"},
		{true, "true"},
		{[]int{1}, "[1]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToString(tt.in))
	}
}
