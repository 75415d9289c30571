// Package stubserver implements a local stand-in for the RecallAI backend.
// It answers the three endpoints the client uses with canned responses, so
// the client can be exercised end to end without the real service.
package stubserver

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/santanu2402/recallai-cli/internal/logging"
)

// cannedAnswers rotate per question so chatting feels alive during manual
// testing.
var cannedAnswers = []string{
	"Based on the uploaded content, here's what I found relevant to your question.",
	"According to the document, this topic is discussed in detail.",
	"The content suggests several key points about your query.",
	"From my analysis of the uploaded material, I can provide the following insights.",
	"The document contains relevant information that addresses your question.",
}

type uploadRecord struct {
	Name string
	Size int64
	URL  string
}

// Server holds the in-memory upload registry behind the stub endpoints.
type Server struct {
	log logging.Logger

	mu      sync.Mutex
	uploads map[string]uploadRecord
	asked   int
}

func New(log logging.Logger) *Server {
	return &Server{
		log:     log,
		uploads: make(map[string]uploadRecord),
	}
}

// RegisterRoutes attaches the stub endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/upload/file", s.UploadFile)
	e.POST("/upload/youtube", s.UploadYouTube)
	e.POST("/ask", s.Ask)
}

// UploadFile accepts a multipart document upload and returns a fresh upload
// number.
// POST /upload/file
func (s *Server) UploadFile(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file field is required"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to read upload"})
	}
	defer f.Close()

	size, err := io.Copy(io.Discard, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to read upload"})
	}

	uploadNo := uuid.NewString()
	s.mu.Lock()
	s.uploads[uploadNo] = uploadRecord{Name: fh.Filename, Size: size}
	s.mu.Unlock()

	s.log.Info(c.Request().Context(), "stored document", "upload_no", uploadNo, "name", fh.Filename, "size", size)
	return c.JSON(http.StatusOK, map[string]string{"upload_no": uploadNo})
}

type youtubeRequest struct {
	URL string `json:"url"`
}

// UploadYouTube registers a video link and returns a fresh upload number.
// POST /upload/youtube
func (s *Server) UploadYouTube(c echo.Context) error {
	var req youtubeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.URL) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "url is required"})
	}

	uploadNo := uuid.NewString()
	s.mu.Lock()
	s.uploads[uploadNo] = uploadRecord{URL: req.URL}
	s.mu.Unlock()

	s.log.Info(c.Request().Context(), "stored video link", "upload_no", uploadNo, "url", req.URL)
	return c.JSON(http.StatusOK, map[string]string{"upload_no": uploadNo})
}

type askRequest struct {
	Question string `json:"question"`
	UploadNo string `json:"upload_no"`
}

// Ask answers a question about a registered upload with a rotating canned
// response. The clarified question echoes the original with a question mark,
// like the real service tends to.
// POST /ask
func (s *Server) Ask(c echo.Context) error {
	var req askRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "question is required"})
	}

	s.mu.Lock()
	_, known := s.uploads[req.UploadNo]
	answer := cannedAnswers[s.asked%len(cannedAnswers)]
	if known {
		s.asked++
	}
	s.mu.Unlock()

	if !known {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown upload"})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"answer":             answer,
		"clarified_question": clarify(question),
	})
}

// clarify normalizes a question the way the real service restates it.
func clarify(question string) string {
	if strings.HasSuffix(question, "?") {
		return question
	}
	return fmt.Sprintf("%s?", question)
}
