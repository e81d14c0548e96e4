package fixture_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/mbm/internal/fixture"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_GenericPage(t *testing.T) {
	h := fixture.Handler(zerolog.Nop())

	rec := get(t, h, "/pages/generic3.html")

	assert.Equal(t, rec.Code, http.StatusOK)
	body := rec.Body.String()
	assert.Check(t, is.Contains(body, "<title>Test_Page_3</title>"))
	assert.Check(t, is.Contains(body, "Page content: 3"))
	assert.Check(t, is.Contains(body, `rel="icon"`))
}

func TestHandler_NotFound(t *testing.T) {
	h := fixture.Handler(zerolog.Nop())

	for _, path := range []string{"/pages/other.html", "/pages/genericX.html", "/nope"} {
		rec := get(t, h, path)
		assert.Equal(t, rec.Code, http.StatusNotFound, path)
	}
}

func TestHandler_IndexAndFavicon(t *testing.T) {
	h := fixture.Handler(zerolog.Nop())

	index := get(t, h, "/")
	assert.Equal(t, index.Code, http.StatusOK)
	assert.Check(t, is.Contains(index.Body.String(), "/pages/generic1.html"))

	icon := get(t, h, "/favicon.svg")
	assert.Equal(t, icon.Header().Get("Content-Type"), "image/svg+xml")
}

func TestServer_StartServeShutdown(t *testing.T) {
	srv, err := fixture.Start("", zerolog.Nop())
	assert.NilError(t, err)

	asset := srv.GenericAsset(1)
	assert.Assert(t, strings.HasPrefix(asset.URL, srv.URL()))
	assert.Equal(t, asset.Title, "Test_Page_1")

	resp, err := http.Get(asset.URL)
	assert.NilError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.NilError(t, err)
	assert.Check(t, is.Contains(string(body), asset.Content))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NilError(t, srv.Shutdown(ctx))

	_, err = http.Get(asset.URL)
	assert.Assert(t, err != nil)
}
