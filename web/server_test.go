package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	bench "github.com/fjl/dbbench-advisor"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTables(t *testing.T) bench.Tables {
	t.Helper()
	opts := bench.ReadOptions{Prefix: bench.DefaultPrefix}
	read := func(backend, data string) *bench.Table {
		tbl, err := bench.ReadTable(strings.NewReader("name,elapsed,operations\n"+data), backend, opts)
		require.NoError(t, err)
		return tbl
	}
	return bench.NewTables(
		read("a", "/db/write,100,50\n/db/read,1,10\n"),
		read("b", "/db/write,40,50\n"),
	)
}

func newTestServer(t *testing.T) *Server {
	return NewServer(&ServerConfig{Port: "0"}, NewAdvisor(testTables(t), bench.DefaultPrefix))
}

func postForm(s *Server, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func TestIndex_EmptyForm(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="num_files"`)
	assert.Contains(t, body, `name="operation_type"`)
	assert.Contains(t, body, `<option value="write">`)
	assert.NotContains(t, body, `id="recommendation"`)
}

func TestRecommend_Form(t *testing.T) {
	s := newTestServer(t)
	rec := postForm(s, url.Values{"num_files": {"3"}, "operation_type": {"write"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Recommended database: <strong>b</strong>")
}

func TestRecommend_NumFilesIgnored(t *testing.T) {
	s := newTestServer(t)
	for _, n := range []string{"0", "1", "1000"} {
		rec := postForm(s, url.Values{"num_files": {n}, "operation_type": {"write"}})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<strong>b</strong>")
	}
}

func TestRecommend_NoMatch(t *testing.T) {
	s := newTestServer(t)
	rec := postForm(s, url.Values{"num_files": {"1"}, "operation_type": {"scan"}})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `No recommendation for operation "scan".`)
	assert.NotContains(t, body, "<strong>")
}

func TestRecommend_EmptyOperation(t *testing.T) {
	s := newTestServer(t)
	rec := postForm(s, url.Values{"num_files": {"2"}, "operation_type": {""}})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `No recommendation for operation "".`)
	assert.NotContains(t, body, "<strong>")
	assert.NotContains(t, body, "Internal Server Error")
}

func TestAdvisor_Recommend(t *testing.T) {
	adv := NewAdvisor(testTables(t), bench.DefaultPrefix)
	assert.Equal(t, "b", adv.Recommend("write"))
	assert.Equal(t, "a", adv.Recommend("read"))
	assert.Equal(t, "", adv.Recommend("scan"))
	assert.Equal(t, "", adv.Recommend(""))
}

func TestRecommend_BadNumFiles(t *testing.T) {
	s := newTestServer(t)
	rec := postForm(s, url.Values{"num_files": {"many"}, "operation_type": {"write"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendAPI(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/recommend?operation_type=write", nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp recommendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "write", resp.OperationType)
	assert.Equal(t, "b", resp.Recommendation)
	require.Len(t, resp.Ranking, 2)
	assert.Equal(t, "a", resp.Ranking[1].Backend)
}

func TestRecommendAPI_MissingOperation(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/recommend", nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, validatePort("8080"))
	assert.Error(t, validatePort("http"))
	assert.Error(t, validatePort("70000"))
}

func TestLoadServerConfig(t *testing.T) {
	t.Setenv("PORT", "9000")
	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)

	t.Setenv("PORT", "0")
	_, err = LoadServerConfig()
	assert.Error(t, err)
}
