package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ParsesEveryPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	for page := range titles {
		rec := httptest.NewRecorder()
		require.NoError(t, r.Render(rec, http.StatusOK, page, Data{}), page)
		assert.Contains(t, rec.Body.String(), "<title>"+titles[page]+"</title>", page)
	}
}

func TestRender_ErrorAndEscaping(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	err = r.Render(rec, http.StatusOK, PageSignup, Data{Error: "Passwords do not match", Username: "<script>"})
	require.NoError(t, err)
	body := rec.Body.String()
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, `class="error"`)
	assert.Contains(t, body, "Passwords do not match")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestRender_NoErrorBlockWhenEmpty(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, PageLogin, Data{}))
	assert.NotContains(t, rec.Body.String(), `class="error"`)
}

func TestRender_UnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	assert.Error(t, r.Render(rec, http.StatusOK, "nope", Data{}))
	assert.Equal(t, 0, rec.Body.Len())
}

func TestStatic_ServesStylesheet(t *testing.T) {
	rec := httptest.NewRecorder()
	Static().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".card")
}
