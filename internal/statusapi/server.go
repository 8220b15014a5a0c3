// Package statusapi is the server's read-only HTTP introspection surface:
// a health check and a runtime/DNS-statistics endpoint, documented with
// swaggo annotations and served on a separate port from the DNS reactor.
package statusapi

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/hydradns/internal/logging"
	"github.com/jroosing/hydradns/internal/reactor"
)

// Server is the management HTTP server exposing /healthz and /stats.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
}

// New builds a status API server bound to host:port, reading counters
// from r. It does not start listening; call ListenAndServe.
func New(host string, port int, r *reactor.Reactor, log logging.Sink) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	if log != nil {
		engine.Use(func(c *gin.Context) {
			c.Next()
			log.Log("status api request", "path", c.Request.URL.Path, "status", c.Writer.Status())
		})
	}

	h := &handler{instanceID: r.InstanceID, startTime: time.Now(), stats: reactorStats{r: r}}
	engine.GET("/healthz", h.Health)
	engine.GET("/stats", h.Stats)

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	srv := &Server{engine: engine, httpServer: httpServer}
	srv.mountSwagger()
	return srv
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
