package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"docqa-rag/internal/ingest"
	"docqa-rag/internal/models"
	"docqa-rag/internal/retrieval"
)

// Server exposes the ingestion and retrieval pipelines over HTTP.
type Server struct {
	pipeline  *ingest.Pipeline
	retrieval *retrieval.Service
	docsDir   string
}

func New(pipeline *ingest.Pipeline, retrievalService *retrieval.Service, docsDir string) *Server {
	return &Server{
		pipeline:  pipeline,
		retrieval: retrievalService,
		docsDir:   docsDir,
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.Use(corsMiddleware)

	router.GET("/", s.handleRoot)
	router.POST("/ingest", s.handleIngest)
	router.POST("/query", s.handleQuery)
	return router
}

func (s *Server) Run(port string) error {
	return s.Router().Run(":" + port)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "RAG backend is running!"})
}

func (s *Server) handleIngest(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file"})
		return
	}

	if err := os.MkdirAll(s.docsDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	location := filepath.Join(s.docsDir, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, location); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := s.pipeline.Ingest(c.Request.Context(), location); err != nil {
		log.Error().Err(err).Str("file", file.Filename).Msg("Ingestion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("File '%s' ingested successfully.", file.Filename)})
}

type queryRequest struct {
	Question    string            `json:"question"`
	ChatHistory []models.ChatTurn `json:"chat_history"`
}

func (s *Server) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	answer, err := s.retrieval.Answer(c.Request.Context(), req.Question, req.ChatHistory)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
