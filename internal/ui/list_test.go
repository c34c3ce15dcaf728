package ui

import (
	"errors"
	"strings"
	"testing"

	"f1dash/internal/api"
	"f1dash/internal/resource"
)

func testDriverPage() api.ListResult {
	return api.ListResult{
		Total: 25,
		Records: []api.Record{
			{"id": float64(1), "forename": "Lewis", "surname": "Hamilton", "code": "HAM", "number": float64(44), "nationality": "British", "dob": "1985-01-07"},
			{"id": float64(2), "forename": "Nick", "surname": "Heidfeld", "code": "HEI", "nationality": "German", "dob": "1977-05-10"},
		},
	}
}

func loadedList(t *testing.T, src *fakeSource, screen resource.Screen) *ListView {
	t.Helper()
	v := NewListView(screen, src, quietLogger())
	for _, m := range runCmd(v.Init()) {
		v.Update(m)
	}
	return v
}

func TestListView_FetchesOncePerMount(t *testing.T) {
	src := &fakeSource{list: testDriverPage()}
	v := loadedList(t, src, resource.Drivers)

	if len(src.listCalls) != 1 {
		t.Fatalf("expected 1 list call, got %d", len(src.listCalls))
	}
	if p := src.listCalls[0]; p.Page != 1 || p.PerPage != 10 || p.Sort != "id" {
		t.Errorf("unexpected params %+v", p)
	}
	if v.Total != 25 || len(v.Records) != 2 || v.Loading() {
		t.Errorf("expected loaded list, got total=%d records=%d loading=%v", v.Total, len(v.Records), v.Loading())
	}
	out := v.View()
	for _, want := range []string{"Drivers (25)", "Hamilton", "Date of Birth", "page 1/3"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestListView_Paging(t *testing.T) {
	src := &fakeSource{list: testDriverPage()}
	v := loadedList(t, src, resource.Drivers)

	_, cmd := v.Update(keyMsg("n"))
	if v.Params.Page != 2 {
		t.Fatalf("expected page 2, got %d", v.Params.Page)
	}
	for _, m := range runCmd(cmd) {
		v.Update(m)
	}
	_, cmd = v.Update(keyMsg("n"))
	for _, m := range runCmd(cmd) {
		v.Update(m)
	}
	_, cmd = v.Update(keyMsg("n"))
	if v.Params.Page != 3 || cmd != nil {
		t.Errorf("expected to stop on last page 3, got page %d", v.Params.Page)
	}

	v.Update(keyMsg("p"))
	if v.Params.Page != 2 {
		t.Errorf("expected page 2 after p, got %d", v.Params.Page)
	}
}

func TestListView_DropsStalePages(t *testing.T) {
	v := NewListView(resource.Drivers, &fakeSource{}, quietLogger())
	v.Params.Page = 2

	v.Update(ListLoadedMsg{Screen: "drivers", Params: api.ListParams{Page: 1}, Result: testDriverPage()})
	if v.Records != nil {
		t.Error("page 1 result should be ignored on page 2")
	}
	v.Update(ListLoadedMsg{Screen: "constructors", Params: api.ListParams{Page: 2}, Result: testDriverPage()})
	if v.Records != nil {
		t.Error("other screen's result should be ignored")
	}
}

func TestListView_Error(t *testing.T) {
	src := &fakeSource{listErr: &api.HTTPError{Status: 500, Message: "database unavailable"}}
	v := loadedList(t, src, resource.Constructors)

	if v.Err == nil {
		t.Fatal("expected error")
	}
	if out := v.View(); !strings.Contains(out, "database unavailable") {
		t.Errorf("expected API message in view, got:\n%s", out)
	}
}

func TestListView_CreateAndDeleteKeys(t *testing.T) {
	src := &fakeSource{list: testDriverPage()}
	v := loadedList(t, src, resource.Drivers)

	_, cmd := v.Update(keyMsg("c"))
	if cmd == nil {
		t.Fatal("expected c to open the create form")
	}
	if msg, ok := cmd().(OpenCreateMsg); !ok || msg.Screen != "drivers" {
		t.Errorf("expected OpenCreateMsg{drivers}, got %#v", cmd())
	}

	_, cmd = v.Update(keyMsg("d"))
	if cmd == nil {
		t.Fatal("expected d to ask for delete confirmation")
	}
	msg, ok := cmd().(ShowDeleteRecordMsg)
	if !ok || msg.ID != "1" {
		t.Fatalf("expected ShowDeleteRecordMsg for id 1, got %#v", cmd())
	}
	if msg.Label != "Lewis Hamilton (#1)" {
		t.Errorf("unexpected label %q", msg.Label)
	}
}

func TestListView_ReadOnlyScreen(t *testing.T) {
	src := &fakeSource{list: api.ListResult{Total: 1, Records: []api.Record{{"id": float64(1), "constructor_name": "McLaren", "total_points": float64(666)}}}}
	v := loadedList(t, src, resource.ConstructorStandings)

	if _, cmd := v.Update(keyMsg("c")); cmd != nil {
		t.Error("read-only screen should ignore c")
	}
	if _, cmd := v.Update(keyMsg("d")); cmd != nil {
		t.Error("read-only screen should ignore d")
	}
	out := v.View()
	if strings.Contains(out, "c: create") {
		t.Errorf("read-only screen should not hint create:\n%s", out)
	}
	if !strings.Contains(out, "666") {
		t.Errorf("expected points in grid:\n%s", out)
	}
}

func TestListView_ReloadAfterDelete(t *testing.T) {
	src := &fakeSource{list: testDriverPage()}
	v := loadedList(t, src, resource.Drivers)

	_, cmd := v.Update(RecordDeletedMsg{Screen: "drivers", ID: "1", Err: errors.New("boom")})
	if cmd != nil {
		t.Error("failed delete should not reload")
	}
	_, cmd = v.Update(RecordDeletedMsg{Screen: "drivers", ID: "1"})
	runCmd(cmd)
	if len(src.listCalls) != 2 {
		t.Errorf("expected reload after delete, got %d calls", len(src.listCalls))
	}
}

func TestListView_OneFetchInFlight(t *testing.T) {
	src := &fakeSource{list: testDriverPage()}
	v := NewListView(resource.Drivers, src, quietLogger())

	first := runCmd(v.Init())
	if _, cmd := v.Update(keyMsg("r")); cmd != nil {
		t.Error("r should not refetch while a page is loading")
	}
	if _, cmd := v.Update(keyMsg("n")); cmd != nil || v.Params.Page != 1 {
		t.Errorf("paging should wait for the outstanding fetch, page=%d", v.Params.Page)
	}
	if len(src.listCalls) != 1 {
		t.Fatalf("expected 1 list call, got %d", len(src.listCalls))
	}

	for _, m := range first {
		v.Update(m)
	}
	_, cmd := v.Update(keyMsg("r"))
	runCmd(cmd)
	if len(src.listCalls) != 2 {
		t.Errorf("expected r to refetch once loaded, got %d calls", len(src.listCalls))
	}
}

func TestListView_DeleteDuringFetchReloadsAfter(t *testing.T) {
	src := &fakeSource{list: testDriverPage()}
	v := NewListView(resource.Drivers, src, quietLogger())
	first := runCmd(v.Init())

	if _, cmd := v.Update(RecordDeletedMsg{Screen: "drivers", ID: "1"}); cmd != nil {
		t.Error("delete should not start a second fetch")
	}
	reloaded := false
	for _, m := range first {
		if _, cmd := v.Update(m); cmd != nil {
			reloaded = true
		}
	}
	if !reloaded {
		t.Fatal("expected a reload once the outstanding page landed")
	}
	if !v.Loading() {
		t.Error("expected the follow-up fetch to be in flight")
	}
}
