package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"f1dash/internal/jsonutil"
)

// Default list parameters, matching the CRUD framework's list defaults.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	DefaultSort    = "id"
	DefaultOrder   = "ASC"
)

// ListParams selects one page of a resource list.
type ListParams struct {
	Page    int
	PerPage int
	Sort    string
	Order   string // ASC or DESC
	Filter  map[string]any
}

// Normalize fills zero fields with the defaults.
func (p ListParams) Normalize() ListParams {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.Sort == "" {
		p.Sort = DefaultSort
	}
	p.Order = strings.ToUpper(p.Order)
	if p.Order != "DESC" {
		p.Order = DefaultOrder
	}
	return p
}

// Range returns the inclusive row window for the page.
func (p ListParams) Range() (start, end int) {
	p = p.Normalize()
	start = (p.Page - 1) * p.PerPage
	return start, start + p.PerPage - 1
}

// Query encodes the params the way simple-REST backends expect:
// sort=["id","ASC"], range=[0,9], filter={}.
func (p ListParams) Query() url.Values {
	p = p.Normalize()
	start, end := p.Range()

	sort, _ := json.Marshal([]string{p.Sort, p.Order})
	rng, _ := json.Marshal([]int{start, end})
	filter := p.Filter
	if filter == nil {
		filter = map[string]any{}
	}
	f, _ := json.Marshal(filter)

	return url.Values{
		"sort":   {string(sort)},
		"range":  {string(rng)},
		"filter": {string(f)},
	}
}

// ListResult is one page of records plus the server-side total.
type ListResult struct {
	Records []Record
	Total   int
}

// GetList fetches one page of a resource. The total comes from the
// Content-Range header, falling back to the page length.
func (c *Client) GetList(ctx context.Context, resource string, params ListParams) (ListResult, error) {
	resp, err := c.FetchJSON(ctx, c.URL(resource, params.Query()), nil)
	if err != nil {
		return ListResult{}, err
	}
	records, err := jsonutil.DecodeArrayAllowNull[Record]([]byte(resp.Body), resource)
	if err != nil {
		return ListResult{}, err
	}

	total := len(records)
	if _, _, t, err := ParseContentRange(resp.Header.Get("Content-Range")); err == nil {
		total = t
	}
	return ListResult{Records: records, Total: total}, nil
}

// GetOne fetches a single record by id.
func (c *Client) GetOne(ctx context.Context, resource, id string) (Record, error) {
	resp, err := c.FetchJSON(ctx, c.URL(resource+"/"+url.PathEscape(id), nil), nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord(resp, resource)
}

// Create posts a new record and returns the stored version.
func (c *Client) Create(ctx context.Context, resource string, rec Record) (Record, error) {
	return c.send(ctx, http.MethodPost, c.URL(resource, nil), resource, rec)
}

// Update replaces a record by id.
func (c *Client) Update(ctx context.Context, resource, id string, rec Record) (Record, error) {
	return c.send(ctx, http.MethodPut, c.URL(resource+"/"+url.PathEscape(id), nil), resource, rec)
}

// Delete removes a record by id and returns what the API echoed back.
func (c *Client) Delete(ctx context.Context, resource, id string) (Record, error) {
	resp, err := c.FetchJSON(ctx, c.URL(resource+"/"+url.PathEscape(id), nil), &Options{
		Method: http.MethodDelete,
		Header: http.Header{"Content-Type": {"text/plain"}},
	})
	if err != nil {
		return nil, err
	}
	return decodeRecord(resp, resource)
}

func (c *Client) send(ctx context.Context, method, rawURL, resource string, rec Record) (Record, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", resource, err)
	}
	resp, err := c.FetchJSON(ctx, rawURL, &Options{Method: method, Body: body})
	if err != nil {
		return nil, err
	}
	return decodeRecord(resp, resource)
}

func decodeRecord(resp *Response, resource string) (Record, error) {
	if resp.JSON == nil {
		return Record{}, nil
	}
	var rec Record
	if err := jsonutil.UnmarshalWithContext(resp.JSON, &rec, resource); err != nil {
		return nil, err
	}
	return rec, nil
}

// ErrContentRange reports a missing or malformed Content-Range header.
var ErrContentRange = errors.New("invalid content-range")

// ParseContentRange parses "<unit> <start>-<end>/<total>".
func ParseContentRange(header string) (start, end, total int, err error) {
	_, span, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrContentRange, header)
	}
	rng, totalStr, ok := strings.Cut(span, "/")
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrContentRange, header)
	}
	if total, err = strconv.Atoi(strings.TrimSpace(totalStr)); err != nil || total < 0 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrContentRange, header)
	}
	startStr, endStr, ok := strings.Cut(rng, "-")
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrContentRange, header)
	}
	if start, err = strconv.Atoi(startStr); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrContentRange, header)
	}
	if end, err = strconv.Atoi(endStr); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrContentRange, header)
	}
	return start, end, total, nil
}
