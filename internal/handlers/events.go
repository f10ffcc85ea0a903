package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/finance-tracker/backend/internal/notifications"
)

type EventHandler struct {
	Hub *notifications.Hub
}

// NewEventHandler создает SSE-обработчик событий об изменении данных.
func NewEventHandler(hub *notifications.Hub) *EventHandler {
	return &EventHandler{Hub: hub}
}

// Stream открывает SSE-поток событий для вкладки.
func (h *EventHandler) Stream(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return serverError(c)
	}

	ch, unsubscribe := h.Hub.Subscribe()
	defer unsubscribe()

	_ = writeSSE(c, notifications.Event{Type: "connected"})
	flusher.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			if err := writeSSE(c, event); err != nil {
				return nil
			}
			flusher.Flush()
		}
	}
}

func writeSSE(c echo.Context, event notifications.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := c.Response().Write([]byte("event: " + event.Type + "\n")); err != nil {
		return err
	}
	if _, err := c.Response().Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
		return err
	}

	return nil
}
