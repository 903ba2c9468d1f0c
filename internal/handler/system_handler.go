package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/kinderbook/internal/response"
	"github.com/stemsi/kinderbook/internal/service"
	ws "github.com/stemsi/kinderbook/internal/websocket"
)

const pingTimeout = 2 * time.Second

// SystemHandler reports process health.
type SystemHandler struct {
	bookService *service.BookService
	hub         *ws.Hub
	rdb         *redis.Client
	startTime   time.Time
	log         zerolog.Logger
}

// NewSystemHandler creates a SystemHandler. rdb may be nil when the Redis
// fan-out is disabled.
func NewSystemHandler(bookService *service.BookService, hub *ws.Hub, rdb *redis.Client, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		bookService: bookService,
		hub:         hub,
		rdb:         rdb,
		startTime:   time.Now(),
		log:         log.With().Str("component", "system_handler").Logger(),
	}
}

type healthStatus struct {
	Status     string `json:"status"`
	Uptime     string `json:"uptime"`
	Persons    int    `json:"persons"`
	WSClients  int    `json:"ws_clients"`
	Redis      string `json:"redis"`
	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heap_alloc"`
	GoVersion  string `json:"go_version"`
}

// Health godoc
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	status := healthStatus{
		Status:     "ok",
		Uptime:     formatDuration(time.Since(h.startTime)),
		Persons:    len(h.bookService.Persons()),
		WSClients:  h.hub.Clients(),
		Redis:      h.redisStatus(c.Request.Context()),
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  ms.HeapAlloc,
		GoVersion:  runtime.Version(),
	}
	if status.Redis == "down" {
		status.Status = "degraded"
	}
	response.Success(c, http.StatusOK, status)
}

func (h *SystemHandler) redisStatus(ctx context.Context) string {
	if h.rdb == nil {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := h.rdb.Ping(ctx).Err(); err != nil {
		h.log.Warn().Err(err).Msg("Redis ping failed")
		return "down"
	}
	return "up"
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
