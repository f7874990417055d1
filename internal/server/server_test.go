package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"docqa-rag/internal/chunker"
	"docqa-rag/internal/ingest"
	"docqa-rag/internal/partition"
	"docqa-rag/internal/retrieval"
	"docqa-rag/internal/store"
	"docqa-rag/internal/store/chromemdb"
)

type fakeModel struct {
	response string
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.response}},
	}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return m.response, nil
}

type fakeSummarizer struct{}

func (s *fakeSummarizer) Summarize(ctx context.Context, text string, tables, images []string) (string, error) {
	return "summary", nil
}

type fakeEmbedder struct{}

func (e *fakeEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

func (e *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func newTestServer(t *testing.T) (*Server, *chromemdb.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager, err := chromemdb.NewManager("", "test", true)
	require.NoError(t, err)

	writer := store.NewWriter(manager, &fakeEmbedder{})
	pipeline := ingest.NewPipeline(partition.NewLocalPartitioner(), &fakeSummarizer{}, writer, chunker.DefaultOptions())
	retrievalService := retrieval.NewService(&fakeModel{response: "the answer"}, &fakeEmbedder{}, manager, 3, 8)
	return New(pipeline, retrievalService, t.TempDir()), manager
}

func TestHandleRoot(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "RAG backend is running!")
}

func TestHandleIngestAndQuery(t *testing.T) {
	srv, manager := newTestServer(t)
	router := srv.Router()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "doc.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("# Intro\n\nA short body paragraph about gophers.\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ingest", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ingested successfully")
	assert.Equal(t, 1, manager.Count())

	w = httptest.NewRecorder()
	payload := `{"question":"what is this about?","chat_history":[]}`
	req = httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "the answer", resp["answer"])
}

func TestHandleIngestWithoutFile(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleQueryInvalidBody(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSPreflights(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/query", nil)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
