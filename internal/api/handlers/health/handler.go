package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-EstateBookingService/internal/api/handlers"
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"

	checkTimeout = 2 * time.Second
)

// Response состояние сервиса и его зависимостей
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type Handler struct {
	checkers []Checker
	logger   Logger
}

func NewHandler(logger Logger, checkers ...Checker) *Handler {
	return &Handler{
		checkers: checkers,
		logger:   logger,
	}
}

// Handle GET /health
// 200, если все зависимости доступны, иначе 503
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	resp := Response{Status: statusOK, Checks: make(map[string]string, len(h.checkers))}
	for _, c := range h.checkers {
		if err := c.Check(ctx); err != nil {
			h.logger.Warn("GET /health - Dependency unavailable: name=%s, error=%v", c.Name(), err)
			resp.Status = statusDegraded
			resp.Checks[c.Name()] = err.Error()
			continue
		}
		resp.Checks[c.Name()] = statusOK
	}

	code := http.StatusOK
	if resp.Status != statusOK {
		code = http.StatusServiceUnavailable
	}
	handlers.RespondJSON(w, code, resp)
}

// CheckFunc адаптирует функцию к Checker
type CheckFunc struct {
	CheckName string
	Fn        func(ctx context.Context) error
}

func (c CheckFunc) Name() string { return c.CheckName }

func (c CheckFunc) Check(ctx context.Context) error { return c.Fn(ctx) }
