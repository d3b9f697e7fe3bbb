package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func ctxWithQuery(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestFromContextDefaults(t *testing.T) {
	p := FromContext(ctxWithQuery(""))
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("got %+v, want limit=%d offset=0", p, DefaultLimit)
	}
}

func TestFromContextParsesParams(t *testing.T) {
	p := FromContext(ctxWithQuery("limit=50&offset=10"))
	if p.Limit != 50 || p.Offset != 10 {
		t.Errorf("got %+v", p)
	}
}

func TestFromContextClampsLimit(t *testing.T) {
	p := FromContext(ctxWithQuery("limit=5000"))
	if p.Limit != MaxLimit {
		t.Errorf("limit = %d, want %d", p.Limit, MaxLimit)
	}
}

func TestFromContextIgnoresInvalid(t *testing.T) {
	p := FromContext(ctxWithQuery("limit=abc&offset=-3"))
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("got %+v", p)
	}
}

func TestNewResponseHasMore(t *testing.T) {
	cases := []struct {
		total   int
		limit   int
		offset  int
		hasMore bool
	}{
		{total: 100, limit: 20, offset: 0, hasMore: true},
		{total: 100, limit: 20, offset: 80, hasMore: false},
		{total: 15, limit: 20, offset: 0, hasMore: false},
		{total: 21, limit: 20, offset: 0, hasMore: true},
	}
	for _, tc := range cases {
		r := NewResponse(nil, tc.total, tc.limit, tc.offset)
		if r.HasMore != tc.hasMore {
			t.Errorf("total=%d limit=%d offset=%d: has_more = %v, want %v",
				tc.total, tc.limit, tc.offset, r.HasMore, tc.hasMore)
		}
	}
}
