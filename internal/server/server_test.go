package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/scoring"
)

const sampleResume = "EDUCATION\nB.Tech CS\nSKILLS\nPython, SQL, Docker\nPROJECTS\nBuilt a chatbot"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(maxUpload int64) *Server {
	assembler := report.NewAssembler(report.Deps{Scorer: scoring.New(scoring.FixedFallback(5))})
	return New(Config{MaxUploadBytes: maxUpload}, assembler, zap.NewNop())
}

func multipartRequest(t *testing.T, path string, resume []byte, jd string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if resume != nil {
		part, err := w.CreateFormFile(resumeField, "resume.txt")
		require.NoError(t, err)
		_, err = part.Write(resume)
		require.NoError(t, err)
	}
	require.NoError(t, w.WriteField(jobDescField, jd))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestForm(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(0).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="resume"`)
	assert.Contains(t, rec.Body.String(), `name="jobdesc"`)
}

func TestMatchHTML(t *testing.T) {
	rec := httptest.NewRecorder()
	req := multipartRequest(t, "/match", []byte(sampleResume), "Looking for Python and SQL engineer")

	newTestServer(0).Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<pre>"))
	assert.Contains(t, body, "Match Score:\n10 / 10")
	assert.Contains(t, body, "Education:\nB.Tech CS")
}

func TestMatchHTMLEscapesContent(t *testing.T) {
	rec := httptest.NewRecorder()
	req := multipartRequest(t, "/match", []byte("EDUCATION\n<script>alert(1)</script>"), "")

	newTestServer(0).Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}

func TestMatchJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := multipartRequest(t, "/api/match", []byte(sampleResume), "python, sql and aws")

	newTestServer(0).Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	require.NotNil(t, resp.Report)
	assert.Equal(t, 6, resp.Report.Score)
	assert.Equal(t, 2, resp.Report.Overlap)
	assert.Equal(t, 3, resp.Report.Total)
	require.NotNil(t, resp.Document)
	assert.Equal(t, "text", string(resp.Document.Kind))
}

func TestMatchMissingFile(t *testing.T) {
	rec := httptest.NewRecorder()
	req := multipartRequest(t, "/api/match", nil, "python")

	newTestServer(0).Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), errMissingFile.Error())
}

func TestMatchTooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	req := multipartRequest(t, "/api/match", bytes.Repeat([]byte("a"), 2048), "python")

	newTestServer(512).Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
