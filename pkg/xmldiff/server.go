// server.go - HTTP diff API.
//
// Exposes the diff engine over HTTP using github.com/gin-gonic/gin for
// routing, github.com/prometheus/client_golang for a /metrics endpoint, and
// github.com/google/uuid to stamp every request with a request ID.
package xmldiff

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xmldiff_requests_total",
		Help: "Total number of /v1/diff requests, by status.",
	}, []string{"status"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "xmldiff_request_duration_seconds",
		Help: "Latency of /v1/diff requests.",
	})
)

// diffRequest is the JSON body of a POST /v1/diff request.
type diffRequest struct {
	Expected     string   `json:"expected"`
	Actual       string   `json:"actual"`
	Include      []string `json:"include"`
	Exclude      []string `json:"exclude"`
	ExcludeEmpty bool     `json:"exclude_empty_nodes"`
	Format       string   `json:"format"`
}

// diffResponse is the JSON body returned from a successful /v1/diff request.
type diffResponse struct {
	RequestID string `json:"request_id"`
	Report    string `json:"report"`
	Count     int    `json:"count"`
}

// requestIDMiddleware stamps every request with a UUID, available to
// handlers via the "request_id" gin context key and echoed in the
// X-Request-Id response header.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

func loggingMiddleware(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request handled",
			F("path", c.Request.URL.Path),
			F("status", c.Writer.Status()),
			F("duration_ms", time.Since(start).Milliseconds()),
			F("request_id", c.GetString("request_id")),
		)
	}
}

// NewEngine builds the gin engine serving the diff API: POST /v1/diff,
// GET /healthz, and GET /metrics.
func NewEngine(logger Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestIDMiddleware(), loggingMiddleware(logger))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.POST("/v1/diff", handleDiff(logger))

	return engine
}

func handleDiff(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() { requestDuration.Observe(time.Since(start).Seconds()) }()

		var req diffRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			requestsTotal.WithLabelValues("bad_request").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		predOpts := PredicateOptions{Include: req.Include, Exclude: req.Exclude}
		opts := Options{ExcludeEmptyNodes: req.ExcludeEmpty, Predicate: BuildPredicate(predOpts), Logger: logger}

		edits, err := Diff([]byte(req.Expected), []byte(req.Actual), opts)
		if err != nil {
			requestsTotal.WithLabelValues("diff_error").Inc()
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		formatter, err := GetFormatter(req.Format)
		if err != nil {
			requestsTotal.WithLabelValues("bad_request").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		requestsTotal.WithLabelValues("ok").Inc()
		c.JSON(http.StatusOK, diffResponse{
			RequestID: c.GetString("request_id"),
			Report:    formatter.Format(edits, DefaultFormatOptions()),
			Count:     len(edits),
		})
	}
}

// RunServer starts the HTTP diff API on addr and blocks until ctx is
// cancelled, then shuts down gracefully.
func RunServer(ctx context.Context, addr string, logger Logger) error {
	engine := NewEngine(logger)
	srv := &http.Server{Addr: addr, Handler: engine}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", F("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
