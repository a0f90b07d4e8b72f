package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzhao/legal-drafter/internal/llm"
	"github.com/mzhao/legal-drafter/internal/templates"
	"github.com/mzhao/legal-drafter/internal/workflow"
)

// stubClient is a canned chat-completion client for handler tests.
type stubClient struct {
	response string
	err      error
}

func (c *stubClient) Generate(_ context.Context, _ []llm.Message) (string, error) {
	return c.response, c.err
}

func (c *stubClient) Close() error { return nil }

func newTestServer(t *testing.T, client llm.Client) *Server {
	t.Helper()
	catalog, err := templates.Default()
	require.NoError(t, err)

	srv, err := New(Config{
		Port:     0,
		Catalog:  catalog,
		Workflow: workflow.New(client),
	})
	require.NoError(t, err)
	return srv
}

func do(srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, srv *Server) string {
	t.Helper()
	rec := do(srv, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	rec := do(srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestHandleListTemplates(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	rec := do(srv, http.MethodGet, "/templates", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []TemplateSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	assert.NotEmpty(t, summaries)

	ids := make([]string, 0, len(summaries))
	for _, s := range summaries {
		ids = append(ids, s.ID)
	}
	assert.Contains(t, ids, "civil-complaint")
}

func TestHandleListTemplates_CategoryFilter(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	rec := do(srv, http.MethodGet, "/templates?category=contracts", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []TemplateSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.NotEmpty(t, summaries)
	for _, s := range summaries {
		assert.Equal(t, "contracts", s.Category)
	}
}

func TestHandleGetTemplate_NotFound(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	rec := do(srv, http.MethodGet, "/templates/no-such-template", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t, &stubClient{})
	id := createSession(t, srv)

	// Select a template
	rec := do(srv, http.MethodPost, "/sessions/"+id+"/select", SelectTemplateRequest{TemplateID: "civil-complaint"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "civil-complaint", resp.TemplateID)
	assert.False(t, resp.Complete)

	// Fill scalar fields
	for field, value := range map[string]string{
		"plaintiff": "Zhang San",
		"defendant": "Li Si",
		"court":     "District Court",
		"facts":     "The lease ended in June.",
	} {
		rec = do(srv, http.MethodPut, fmt.Sprintf("/sessions/%s/fields/%s", id, field), SetFieldRequest{Value: value})
		require.Equal(t, http.StatusOK, rec.Code, "field %s", field)
	}

	// Add and fill two claims
	rec = do(srv, http.MethodPost, "/sessions/"+id+"/fields/claims/items", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(srv, http.MethodPost, "/sessions/"+id+"/fields/claims/items", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(srv, http.MethodPut, "/sessions/"+id+"/fields/claims/items/0", SetFieldRequest{Value: "return deposit"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(srv, http.MethodPut, "/sessions/"+id+"/fields/claims/items/1", SetFieldRequest{Value: "pay interest"})
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Complete)
	assert.Equal(t, []string{"return deposit", "pay interest"}, resp.Items["claims"])

	// Remove the first claim; the second shifts down
	rec = do(srv, http.MethodDelete, "/sessions/"+id+"/fields/claims/items/0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"pay interest"}, resp.Items["claims"])

	// Re-selecting clears everything
	rec = do(srv, http.MethodPost, "/sessions/"+id+"/select", SelectTemplateRequest{TemplateID: "demand-letter"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = SessionResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Answers)
	assert.Empty(t, resp.Items)
}

func TestHandleSetField_Errors(t *testing.T) {
	srv := newTestServer(t, &stubClient{})
	id := createSession(t, srv)

	// No template selected yet
	rec := do(srv, http.MethodPut, "/sessions/"+id+"/fields/plaintiff", SetFieldRequest{Value: "x"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	do(srv, http.MethodPost, "/sessions/"+id+"/select", SelectTemplateRequest{TemplateID: "civil-complaint"})

	// Unknown field
	rec = do(srv, http.MethodPut, "/sessions/"+id+"/fields/no-such-field", SetFieldRequest{Value: "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Scalar write to a repeatable field
	rec = do(srv, http.MethodPut, "/sessions/"+id+"/fields/claims", SetFieldRequest{Value: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionNotFoundAndBadID(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	rec := do(srv, http.MethodGet, "/sessions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(srv, http.MethodGet, "/sessions/00000000-0000-0000-0000-000000000001", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGenerate(t *testing.T) {
	srv := newTestServer(t, &stubClient{response: "【Claims for Relief】1. return deposit"})
	id := createSession(t, srv)

	do(srv, http.MethodPost, "/sessions/"+id+"/select", SelectTemplateRequest{TemplateID: "civil-complaint"})
	for field, value := range map[string]string{
		"plaintiff": "Zhang San",
		"defendant": "Li Si",
		"court":     "District Court",
		"facts":     "The lease ended in June.",
	} {
		do(srv, http.MethodPut, fmt.Sprintf("/sessions/%s/fields/%s", id, field), SetFieldRequest{Value: value})
	}
	do(srv, http.MethodPost, "/sessions/"+id+"/fields/claims/items", nil)
	do(srv, http.MethodPut, "/sessions/"+id+"/fields/claims/items/0", SetFieldRequest{Value: "return deposit"})

	rec := do(srv, http.MethodPost, "/sessions/"+id+"/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result workflow.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Sections, 1)
	assert.Equal(t, "Claims for Relief", result.Sections[0].Title)
	assert.Contains(t, result.Document, "1. return deposit")
}

func TestHandleGenerate_Incomplete(t *testing.T) {
	srv := newTestServer(t, &stubClient{response: "【A】x"})
	id := createSession(t, srv)

	do(srv, http.MethodPost, "/sessions/"+id+"/select", SelectTemplateRequest{TemplateID: "civil-complaint"})

	rec := do(srv, http.MethodPost, "/sessions/"+id+"/generate", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleGenerate_CompletionFailure(t *testing.T) {
	srv := newTestServer(t, &stubClient{err: errors.New("upstream timeout")})
	id := createSession(t, srv)

	do(srv, http.MethodPost, "/sessions/"+id+"/select", SelectTemplateRequest{TemplateID: "loan-agreement"})
	for field, value := range map[string]string{
		"lender":         "Bank of Test",
		"borrower":       "Zhang San",
		"principal":      "10000 CNY",
		"repayment_date": "2027-01-01",
	} {
		do(srv, http.MethodPut, fmt.Sprintf("/sessions/%s/fields/%s", id, field), SetFieldRequest{Value: value})
	}

	rec := do(srv, http.MethodPost, "/sessions/"+id+"/generate", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "completion request failed")
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandleAnalyze(t *testing.T) {
	srv := newTestServer(t, &stubClient{response: "【Key Risks】Uncapped indemnity."})

	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, uploadRequest(t, "contract.txt", []byte("some contract text")))
	require.Equal(t, http.StatusOK, rec.Code)

	var result workflow.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Sections, 1)
	assert.Equal(t, "Key Risks", result.Sections[0].Title)
}

func TestHandleAnalyze_UnsupportedFormat(t *testing.T) {
	srv := newTestServer(t, &stubClient{response: "【A】x"})

	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, uploadRequest(t, "scan.docx", []byte("binary")))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestHandleAnalyze_MissingFile(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	rec := do(srv, http.MethodPost, "/analyze", map[string]string{"text": "not a file"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExport(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	rec := do(srv, http.MethodPost, "/export", ExportRequest{Content: "final document", Title: "Civil Complaint"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "final document", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `"Civil Complaint.txt"`)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestHandleExport_Validation(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	rec := do(srv, http.MethodPost, "/export", ExportRequest{Title: "no content"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(srv, http.MethodPost, "/export", ExportRequest{Content: "x", Format: "rtf"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
