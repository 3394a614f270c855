package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bioscan/internal/graph"
	"bioscan/internal/scan"
)

// Server exposes the three core operations over HTTP: scan (streaming),
// graph neighborhood and interaction data, plus health and metrics.
type Server struct {
	Store        *graph.Store
	Orchestrator *scan.Orchestrator
	Logger       *zap.Logger
	DefaultLimit int
}

func New(store *graph.Store, orchestrator *scan.Orchestrator, logger *zap.Logger, defaultLimit int) *Server {
	return &Server{
		Store:        store,
		Orchestrator: orchestrator,
		Logger:       logger,
		DefaultLimit: defaultLimit,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"*"},
	}))

	r.GET("/", s.Health)
	r.GET("/scan/:virus", s.Scan)
	r.GET("/graph/:virus", s.Graph)
	r.GET("/data/:virus", s.Data)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "BioScan Engine Online",
		"graph_connection": s.Store.Connected(),
	})
}

// Scan streams the scan's progress events as newline-delimited JSON, flushed
// per event so the client can render them as they arrive.
func (s *Server) Scan(c *gin.Context) {
	target := c.Param("virus")

	limit := s.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	c.Writer.Header().Set("Content-Type", "application/x-ndjson")
	c.Writer.WriteHeader(http.StatusOK)

	encoder := json.NewEncoder(c.Writer)
	for event := range s.Orchestrator.Run(c.Request.Context(), target, limit) {
		if err := encoder.Encode(event); err != nil {
			s.Logger.Warn("Client disconnected during scan stream", zap.Error(err))
			return
		}
		c.Writer.Flush()
	}
}

func (s *Server) Graph(c *gin.Context) {
	c.JSON(http.StatusOK, s.Store.FetchNeighborhood(c.Request.Context(), c.Param("virus")))
}

func (s *Server) Data(c *gin.Context) {
	c.JSON(http.StatusOK, s.Store.FetchInteractions(c.Request.Context(), c.Param("virus")))
}
