// Package server provides the HTTP server and live editor for plantgo.
package server

import (
	"embed"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/plantgo/plantgo/internal/encoding"
	"github.com/plantgo/plantgo/pkg/plantgo"
)

//go:embed static/*
var staticFS embed.FS

// Config holds server configuration.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         8080,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server is the HTTP server for plantgo.
type Server struct {
	config Config
	echo   *echo.Echo
}

// New creates a new Server with the given config.
func New(cfg Config) *Server {
	s := &Server{config: cfg, echo: echo.New()}
	s.echo.HideBanner = true
	s.echo.POST("/render", s.handleRender)
	s.echo.GET("/svg/:encoded", s.handleSVG)
	s.echo.GET("/", s.handleEditor)
	return s
}

// ListenAndServe starts the server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.echo.Server.ReadTimeout = s.config.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.WriteTimeout
	return s.echo.Start(addr)
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) handleRender(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.String(http.StatusBadRequest, "failed to read body")
	}
	errs := plantgo.Validate(strings.NewReader(string(body)))
	if len(errs) > 0 {
		resp := errorResponse{Errors: make([]errorDetail, len(errs))}
		for i, e := range errs {
			resp.Errors[i] = errorDetail{Line: e.Line, Column: e.Column, Message: e.Message}
		}
		return c.JSON(http.StatusBadRequest, resp)
	}
	c.Response().Header().Set(echo.HeaderContentType, "image/svg+xml")
	c.Response().WriteHeader(http.StatusOK)
	if err := plantgo.Render(strings.NewReader(string(body)), c.Response()); err != nil {
		return c.String(http.StatusInternalServerError, fmt.Sprintf("render error: %s", err))
	}
	return nil
}

func (s *Server) handleSVG(c echo.Context) error {
	encoded := c.Param("encoded")
	if encoded == "" {
		return c.String(http.StatusBadRequest, "missing encoded diagram")
	}
	text, err := encoding.Decode(encoded)
	if err != nil {
		return c.String(http.StatusBadRequest, fmt.Sprintf("decode error: %s", err))
	}
	c.Response().Header().Set(echo.HeaderContentType, "image/svg+xml")
	c.Response().WriteHeader(http.StatusOK)
	if err := plantgo.Render(strings.NewReader(text), c.Response()); err != nil {
		return c.String(http.StatusInternalServerError, fmt.Sprintf("render error: %s", err))
	}
	return nil
}

func (s *Server) handleEditor(c echo.Context) error {
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		return c.String(http.StatusInternalServerError, "editor not found")
	}
	return c.Blob(http.StatusOK, "text/html; charset=utf-8", data)
}

type errorResponse struct {
	Errors []errorDetail `json:"errors"`
}

type errorDetail struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}
