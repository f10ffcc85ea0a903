package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/finance-tracker/backend/internal/notifications"
	"example.com/finance-tracker/backend/internal/store"
)

// Документ коллекции не должен разрастаться бесконечно:
// самое тяжелое содержимое — фото золота в base64.
const maxDocumentBytes = 4 << 20

type DataHandler struct {
	Store    store.Store
	Notifier *notifications.Hub
}

// NewDataHandler создает обработчик документов коллекций.
func NewDataHandler(st store.Store, notifier *notifications.Hub) *DataHandler {
	return &DataHandler{Store: st, Notifier: notifier}
}

// Get возвращает документ коллекции целиком; для незаполненной
// коллекции отдается пустой массив или объект.
func (h *DataHandler) Get(c echo.Context) error {
	key := c.Param("collection")
	if !store.KnownKey(key) {
		return notFound(c, "unknown collection")
	}

	doc, err := h.Store.Get(c.Request().Context(), key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			doc = store.EmptyDocument(key)
		} else {
			return serverError(c)
		}
	}

	return c.JSONBlob(http.StatusOK, doc)
}

// Set заменяет документ коллекции целиком. Совместной записи нет:
// из двух вкладок побеждает последняя.
func (h *DataHandler) Set(c echo.Context) error {
	key := c.Param("collection")
	if !store.KnownKey(key) {
		return notFound(c, "unknown collection")
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxDocumentBytes+1))
	if err != nil {
		return badRequest(c, "invalid payload")
	}
	if len(body) > maxDocumentBytes {
		return badRequest(c, "document too large")
	}

	if !json.Valid(body) {
		return badRequest(c, "invalid json")
	}

	if err := validateShape(key, body); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.Store.Set(c.Request().Context(), key, body); err != nil {
		return serverError(c)
	}

	h.Notifier.PublishCollectionChanged(key)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func validateShape(key string, doc []byte) error {
	trimmed := firstByte(doc)

	if store.IsSingleton(key) {
		if trimmed != '{' {
			return errors.New("expected a json object")
		}
		return nil
	}

	if trimmed != '[' {
		return errors.New("expected a json array")
	}
	return nil
}

func firstByte(doc []byte) byte {
	for _, b := range doc {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b
		}
	}
	return 0
}
