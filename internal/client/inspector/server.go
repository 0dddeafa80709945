package inspector

import (
	"context"
	_ "embed"
	"net/http"
	"strconv"
	"time"

	"github.com/ezeqja22/sciencepioneers-cli/internal/client/logger"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

//go:embed index.html
var indexHTML []byte

// HTTPExchange represents a complete request/response pair against the
// backend, as seen from the API client.
type HTTPExchange struct {
	ID        int64         `json:"id"`
	Request   *HTTPRequest  `json:"request"`
	Response  *HTTPResponse `json:"response,omitempty"`
	Duration  int64         `json:"duration_ms"`
	Timestamp time.Time     `json:"timestamp"`
}

// HTTPRequest captures request details.
type HTTPRequest struct {
	Method  string              `json:"method"`
	URL     string              `json:"url"`
	Headers map[string][]string `json:"headers"`
	Body    string              `json:"body"`
	Size    int64               `json:"size"`
}

// HTTPResponse captures response details.
type HTTPResponse struct {
	Status  int                 `json:"status"`
	Headers map[string][]string `json:"headers"`
	Body    string              `json:"body"`
	Size    int64               `json:"size"`
}

const maxBodySize int64 = 1024 * 1024 // 1MB max body capture

// Server is the local web UI over the API client's recent traffic. It
// implements the API client's Recorder interface; wiring it up is a
// single SetRecorder call.
type Server struct {
	store   Store
	httpSrv *http.Server
	addr    string
}

// NewServer creates an inspector listening on the given port.
func NewServer(port string, store Store) *Server {
	if store == nil {
		store = NewInMemoryStore(100)
	}
	return &Server{
		store: store,
		addr:  "127.0.0.1:" + port,
	}
}

// Record implements the API client's Recorder. The bearer token is
// redacted before storage; the inspector must never display it.
func (s *Server) Record(req *http.Request, reqBody []byte, resp *http.Response, respBody []byte, duration time.Duration) {
	headers := make(map[string][]string, len(req.Header))
	for k, vv := range req.Header {
		if k == "Authorization" {
			headers[k] = []string{"Bearer [redacted]"}
			continue
		}
		headers[k] = vv
	}

	exchange := HTTPExchange{
		Timestamp: time.Now(),
		Duration:  duration.Milliseconds(),
		Request: &HTTPRequest{
			Method:  req.Method,
			URL:     req.URL.String(),
			Headers: headers,
			Body:    truncateBody(reqBody),
			Size:    int64(len(reqBody)),
		},
	}

	if resp != nil {
		exchange.Response = &HTTPResponse{
			Status:  resp.StatusCode,
			Headers: resp.Header,
			Body:    truncateBody(respBody),
			Size:    int64(len(respBody)),
		}
	}

	s.store.Add(exchange)
}

// Start starts the inspector server and blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	s.setupRoutes(router)

	s.httpSrv = &http.Server{
		Addr:    s.addr,
		Handler: router,
	}

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpSrv.Shutdown(shutdownCtx)
	}()

	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// StartAsync starts the inspector server in a goroutine.
func (s *Server) StartAsync(ctx context.Context) {
	go func() {
		if err := s.Start(ctx); err != nil {
			logger.Warn("inspector stopped: %v", err)
		}
	}()
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

func (s *Server) setupRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})

	router.GET("/api/exchanges", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.store.List())
	})

	router.GET("/api/exchanges/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		exchange, ok := s.store.Get(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, exchange)
	})

	router.POST("/api/clear", func(c *gin.Context) {
		s.store.Clear()
		c.Status(http.StatusOK)
	})
}

// truncateBody limits body size for storage
func truncateBody(body []byte) string {
	if int64(len(body)) > maxBodySize {
		return string(body[:maxBodySize]) + "\n... (truncated)"
	}
	return string(body)
}
