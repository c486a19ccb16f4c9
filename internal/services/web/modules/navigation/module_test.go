package navigation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/showcase/internal/platform/i18n/catalog"
	module "github.com/louisbranch/showcase/internal/services/web/module"
	"github.com/louisbranch/showcase/internal/services/web/pages"
	"github.com/louisbranch/showcase/internal/services/web/platform/visitorcookie"
	"github.com/louisbranch/showcase/internal/services/web/router"
	"github.com/louisbranch/showcase/internal/services/web/store"
	"github.com/louisbranch/showcase/internal/services/web/ui"
)

// testClient is one browser tab. Tabs forked from it share the visitor
// cookie.
type testClient struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
	tab     string
}

func (c *testClient) fork() *testClient {
	return &testClient{t: c.t, handler: c.handler, cookie: c.cookie}
}

// withTab adds the client's tab id to a JSON object body.
func (c *testClient) withTab(body string) string {
	c.t.Helper()
	if c.tab == "" || strings.TrimSpace(body) == "" {
		return body
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return body
	}
	if _, ok := fields["tab"]; !ok {
		fields["tab"] = c.tab
	}
	out, err := json.Marshal(fields)
	if err != nil {
		c.t.Fatalf("encode body: %v", err)
	}
	return string(out)
}

func newTestClient(t *testing.T) (*testClient, *store.Store) {
	t.Helper()
	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}
	lib, err := ui.NewLibrary(bundle)
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}
	table, err := pages.NewTable()
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	st := store.New(store.Options{})
	mount, err := New(module.Dependencies{Library: lib, Table: table, Store: st}).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "/_router/" {
		t.Fatalf("prefix = %q, want %q", mount.Prefix, "/_router/")
	}
	return &testClient{t: t, handler: mount.Handler}, st
}

func (c *testClient) post(path string, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(c.withTab(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://example.com")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == visitorcookie.Name {
			c.cookie = cookie
		}
	}
	return rr
}

func (c *testClient) navigate(path string, body string) navigationResponse {
	c.t.Helper()
	rr := c.post(path, body)
	if rr.Code != http.StatusOK {
		c.t.Fatalf("%s status = %d, want %d: %s", path, rr.Code, http.StatusOK, rr.Body.String())
	}
	var resp navigationResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		c.t.Fatalf("decode %s response: %v", path, err)
	}
	if resp.Tab == "" {
		c.t.Fatalf("%s response has no tab id", path)
	}
	c.tab = resp.Tab
	return resp
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var payload errorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return payload
}

func errorKind(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeError(t, rr).Kind
}

func TestBackRestoresSavedScrollPosition(t *testing.T) {
	t.Parallel()

	client, st := newTestClient(t)

	start := client.navigate("/_router/start", `{"to":"/"}`)
	if start.Location != (router.Location{Path: "/", Name: "Home"}) {
		t.Fatalf("start location = %+v", start.Location)
	}
	if start.Scroll != router.Top {
		t.Fatalf("start scroll = %+v, want top", start.Scroll)
	}
	if client.cookie == nil {
		t.Fatal("expected visitor cookie")
	}

	push := client.navigate("/_router/push", `{"to":"/products","scroll":{"left":0,"top":340}}`)
	if push.Location.Name != "Products" || push.Scroll != router.Top {
		t.Fatalf("push = %+v", push)
	}
	if push.From == nil || push.From.Name != "Home" {
		t.Fatalf("push from = %+v, want Home", push.From)
	}
	if !strings.Contains(push.HTML, `data-page="Products"`) || !strings.Contains(push.Title, "产品") {
		t.Fatalf("push payload = %+v", push)
	}

	back := client.navigate("/_router/back", `{"scroll":{"left":0,"top":120}}`)
	if back.Location.Name != "Home" {
		t.Fatalf("back location = %+v", back.Location)
	}
	if want := (router.Position{Left: 0, Top: 340}); back.Scroll != want {
		t.Fatalf("back scroll = %+v, want %+v", back.Scroll, want)
	}

	forward := client.navigate("/_router/forward", `{"scroll":{"left":0,"top":0}}`)
	if want := (router.Position{Left: 0, Top: 120}); forward.Scroll != want {
		t.Fatalf("forward scroll = %+v, want %+v", forward.Scroll, want)
	}

	if got := st.Len(); got != 1 {
		t.Fatalf("store sessions = %d, want 1", got)
	}
}

func TestGoMovesByDelta(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)
	client.navigate("/_router/start", `{"to":"/"}`)
	client.navigate("/_router/push", `{"to":"/about","scroll":{"top":10}}`)
	client.navigate("/_router/push", `{"to":"/contact","scroll":{"top":20}}`)

	resp := client.navigate("/_router/go", `{"delta":-2,"scroll":{"top":30}}`)
	if resp.Location.Name != "Home" || resp.Scroll.Top != 10 {
		t.Fatalf("go -2 = %+v", resp)
	}
	resp = client.navigate("/_router/go", `{"delta":2}`)
	if resp.Location.Name != "Contact" || resp.Scroll.Top != 30 {
		t.Fatalf("go 2 = %+v", resp)
	}
}

func TestNavigationErrors(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)
	client.navigate("/_router/start", `{"to":"/"}`)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		kind   string
	}{
		{name: "unknown path", path: "/_router/push", body: `{"to":"/pricing"}`, status: http.StatusNotFound, kind: "not_found"},
		{name: "no back entry", path: "/_router/back", body: `{}`, status: http.StatusConflict, kind: "conflict"},
		{name: "zero delta", path: "/_router/go", body: `{"delta":0}`, status: http.StatusConflict, kind: "conflict"},
		{name: "missing target", path: "/_router/push", body: `{}`, status: http.StatusBadRequest, kind: "invalid_input"},
		{name: "unknown field", path: "/_router/push", body: `{"path":"/"}`, status: http.StatusBadRequest, kind: "invalid_input"},
		{name: "internal path", path: "/_router/push", body: `{"to":"/static/site.css"}`, status: http.StatusBadRequest, kind: "invalid_input"},
		{name: "unknown route name", path: "/_router/push", body: `{"name":"Pricing"}`, status: http.StatusNotFound, kind: "not_found"},
	}
	for _, tc := range tests {
		rr := client.post(tc.path, tc.body)
		if rr.Code != tc.status {
			t.Fatalf("%s: status = %d, want %d", tc.name, rr.Code, tc.status)
		}
		if got := errorKind(t, rr); got != tc.kind {
			t.Fatalf("%s: kind = %q, want %q", tc.name, got, tc.kind)
		}
	}
}

func TestPushToCurrentLocationIsNoContent(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)
	client.navigate("/_router/start", `{"to":"/services"}`)
	rr := client.post("/_router/push", `{"to":"/services/"}`)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestNavigationRejectsCrossOrigin(t *testing.T) {
	t.Parallel()

	client, st := newTestClient(t)
	req := httptest.NewRequest(http.MethodPost, "/_router/start", strings.NewReader(`{"to":"/"}`))
	req.Header.Set("Origin", "http://evil.example")
	rr := httptest.NewRecorder()
	client.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	if got := st.Len(); got != 0 {
		t.Fatalf("store sessions = %d, want 0", got)
	}
}

func TestNavigationRequiresPost(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)
	rr := httptest.NewRecorder()
	client.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/_router/start", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}

func TestUnknownVisitorGetsFreshSession(t *testing.T) {
	t.Parallel()

	client, st := newTestClient(t)
	client.cookie = &http.Cookie{Name: visitorcookie.Name, Value: "expired"}
	client.navigate("/_router/start", `{"to":"/"}`)
	if client.cookie.Value == "expired" {
		t.Fatal("expected a new visitor cookie")
	}
	if _, ok := st.Session(client.cookie.Value); !ok {
		t.Fatal("expected new session in store")
	}
}

func TestTabsKeepSeparateHistory(t *testing.T) {
	t.Parallel()

	tabA, st := newTestClient(t)
	tabA.navigate("/_router/start", `{"to":"/"}`)
	tabA.navigate("/_router/push", `{"to":"/products","scroll":{"left":0,"top":340}}`)

	tabB := tabA.fork()
	tabB.navigate("/_router/start", `{"to":"/about"}`)
	tabB.navigate("/_router/push", `{"to":"/contact","scroll":{"top":5}}`)
	if tabA.tab == tabB.tab {
		t.Fatalf("tabs share id %q", tabA.tab)
	}

	back := tabA.navigate("/_router/go", `{"delta":-1,"to":"/"}`)
	if back.Location != (router.Location{Path: "/", Name: "Home"}) {
		t.Fatalf("tab A back location = %+v, want Home", back.Location)
	}
	if want := (router.Position{Left: 0, Top: 340}); back.Scroll != want {
		t.Fatalf("tab A back scroll = %+v, want %+v", back.Scroll, want)
	}

	backB := tabB.navigate("/_router/go", `{"delta":-1,"to":"/about"}`)
	if backB.Location.Name != "About" || backB.Scroll.Top != 5 {
		t.Fatalf("tab B back = %+v, want About at top 5", backB)
	}
	if got := st.Len(); got != 1 {
		t.Fatalf("store sessions = %d, want 1", got)
	}
}

func TestGoToDifferentPathRestartsTab(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)
	client.navigate("/_router/start", `{"to":"/"}`)
	client.navigate("/_router/push", `{"to":"/products","scroll":{"top":340}}`)

	resp := client.navigate("/_router/go", `{"delta":-1,"to":"/contact"}`)
	if resp.Location.Name != "Contact" || resp.Index != 0 || resp.Scroll != router.Top {
		t.Fatalf("go -1 to /contact = %+v, want Contact at index 0 and top", resp)
	}
}

func TestStartResumesTabAfterReload(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)
	client.navigate("/_router/start", `{"to":"/"}`)
	client.navigate("/_router/push", `{"to":"/products","scroll":{"top":340}}`)
	push := client.navigate("/_router/push", `{"to":"/about","scroll":{"top":50}}`)
	if push.Index != 2 {
		t.Fatalf("push index = %d, want 2", push.Index)
	}
	client.navigate("/_router/back", `{"scroll":{"top":0}}`)

	reload := client.navigate("/_router/start", `{"to":"/products","index":1}`)
	if reload.Location.Name != "Products" || reload.Index != 1 || reload.Scroll.Top != 50 {
		t.Fatalf("reload = %+v, want Products at index 1 with top 50", reload)
	}
	back := client.navigate("/_router/go", `{"delta":-1,"to":"/"}`)
	if back.Location.Name != "Home" || back.Scroll.Top != 340 {
		t.Fatalf("back after reload = %+v, want Home at top 340", back)
	}
}

func TestUnknownTabOpensFreshHistory(t *testing.T) {
	t.Parallel()

	client, st := newTestClient(t)
	client.navigate("/_router/start", `{"to":"/"}`)
	first := client.tab

	client.tab = "closed-tab"
	resp := client.navigate("/_router/start", `{"to":"/services","index":3}`)
	if resp.Tab == first || resp.Tab == "closed-tab" {
		t.Fatalf("tab = %q, want a new id", resp.Tab)
	}
	if resp.Location.Name != "Services" || resp.Index != 0 {
		t.Fatalf("start = %+v, want Services at index 0", resp)
	}
	session, ok := st.Session(client.cookie.Value)
	if !ok {
		t.Fatal("visitor session missing")
	}
	if got := session.Tabs(); got != 2 {
		t.Fatalf("Tabs() = %d, want 2", got)
	}
}

func TestPushByRouteName(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)
	client.navigate("/_router/start", `{"to":"/"}`)
	resp := client.navigate("/_router/push", `{"name":"About"}`)
	if resp.Location != (router.Location{Path: "/about", Name: "About"}) {
		t.Fatalf("location = %+v, want About", resp.Location)
	}
}

func TestNavigationErrorMessagesAreLocalized(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)
	client.navigate("/_router/start", `{"to":"/"}`)

	tests := []struct {
		path string
		body string
		want string
	}{
		{path: "/_router/push", body: `{"to":"/pricing"}`, want: "没有与该地址匹配的页面。"},
		{path: "/_router/back", body: `{}`, want: "该方向没有浏览记录。"},
		{path: "/_router/push", body: `{}`, want: "请提供目标页面。"},
		{path: "/_router/push", body: `{"bogus":true}`, want: "导航请求无效。"},
	}
	for _, tc := range tests {
		rr := client.post(tc.path, tc.body)
		if got := decodeError(t, rr).Error; got != tc.want {
			t.Fatalf("%s %s error = %q, want %q", tc.path, tc.body, got, tc.want)
		}
	}
}
