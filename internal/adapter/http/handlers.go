package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	nowFn func() time.Time
}

func NewHandler() *Handler {
	return &Handler{nowFn: func() time.Time { return time.Now().UTC() }}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   h.nowFn().Format(time.RFC3339Nano),
	})
}
