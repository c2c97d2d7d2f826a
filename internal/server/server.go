// Package server exposes the screener over HTTP: an upload form, an HTML
// report endpoint and a JSON endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/jobdesc"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/report"
)

const (
	DefaultAddress        = "127.0.0.1:8080"
	DefaultMaxUploadBytes = 10 << 20

	resumeField  = "resume"
	jobDescField = "jobdesc"

	shutdownTimeout = 10 * time.Second
)

const uploadForm = `<h2>Smart Resume Screener (Report Format)</h2>
<form action="/match" method="post" enctype="multipart/form-data">
    <label>Upload Resume (PDF/DOCX/TXT):</label><br>
    <input type="file" name="resume"><br><br>
    <label>Job Description:</label><br>
    <textarea name="jobdesc" rows="6" cols="60"></textarea><br><br>
    <input type="submit" value="Analyze Resume">
</form>
`

var (
	errTooLarge     = errors.New("resume upload is too large")
	errMissingFile  = errors.New("resume file is required")
	errUnreadableUp = errors.New("resume upload could not be read")
)

type Config struct {
	Address        string
	MaxUploadBytes int64
}

type Server struct {
	cfg       Config
	assembler *report.Assembler
	logger    *zap.Logger
	engine    *gin.Engine
}

// MatchResponse is the body of the JSON endpoint.
type MatchResponse struct {
	ID       string            `json:"id"`
	Document *extract.Document `json:"document"`
	Report   *report.Report    `json:"report"`
}

type errorResponse struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

func New(cfg Config, assembler *report.Assembler, log *zap.Logger) *Server {
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	s := &Server{
		cfg:       cfg,
		assembler: assembler,
		logger:    logger.WithFields(log),
	}

	engine := gin.New()
	engine.MaxMultipartMemory = cfg.MaxUploadBytes
	engine.Use(gin.Recovery(), s.requestLogger())

	engine.GET("/", s.handleForm)
	engine.POST("/match", s.handleMatchHTML)
	engine.POST("/api/match", s.handleMatchJSON)

	s.engine = engine
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("address", s.cfg.Address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down", zap.String("reason", ctx.Err().Error()))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func (s *Server) handleForm(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(uploadForm))
}

func (s *Server) handleMatchHTML(c *gin.Context) {
	resp, status, err := s.match(c)
	if err != nil {
		c.Data(status, "text/html; charset=utf-8", []byte("<p>"+html.EscapeString(err.Error())+"</p>"))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<pre>"+html.EscapeString(resp.Report.Text())+"</pre>"))
}

func (s *Server) handleMatchJSON(c *gin.Context) {
	resp, status, err := s.match(c)
	if err != nil {
		c.JSON(status, errorResponse{ID: resp.ID, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// match reads the upload, screens it and returns the response with the HTTP
// status to use on error.
func (s *Server) match(c *gin.Context) (*MatchResponse, int, error) {
	resp := &MatchResponse{ID: uuid.NewString()}

	if c.Request.ContentLength > s.cfg.MaxUploadBytes {
		return resp, http.StatusRequestEntityTooLarge, errTooLarge
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)

	header, err := c.FormFile(resumeField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return resp, http.StatusRequestEntityTooLarge, errTooLarge
		}
		return resp, http.StatusBadRequest, errMissingFile
	}
	if header.Size > s.cfg.MaxUploadBytes {
		return resp, http.StatusRequestEntityTooLarge, errTooLarge
	}

	log := logger.WithRequest(s.logger, resp.ID, header.Filename)

	file, err := header.Open()
	if err != nil {
		log.Warn("opening upload", zap.Error(err))
		return resp, http.StatusBadRequest, errUnreadableUp
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Warn("reading upload", zap.Error(err))
		return resp, http.StatusBadRequest, errUnreadableUp
	}

	jd, err := jobdesc.Load(jobdesc.Source{Value: c.PostForm(jobDescField)})
	if err != nil {
		return resp, http.StatusBadRequest, err
	}

	resp.Document = extract.Extract(data)
	if resp.Document.Fallback != "" {
		log.Warn("document decoded as plain text",
			zap.String("mime", resp.Document.MIME),
			zap.String("reason", resp.Document.Fallback),
		)
	}

	resp.Report = s.assembler.AssembleWithLogger(log, resp.Document.Text, jd)

	log.Info("resume screened",
		zap.String("kind", string(resp.Document.Kind)),
		zap.Int("score", resp.Report.Score),
		zap.Bool("fallback_score", resp.Report.Fallback),
	)

	return resp, http.StatusOK, nil
}
