package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gudang/internal/logger"
	"gudang/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "debug", "json")

	app := fiber.New()
	app.Use(middleware.RequestLogger(log))
	app.Get("/ping", func(c *fiber.Ctx) error {
		assert.Equal(t, "req-7", logger.RequestID(c.UserContext()))
		return c.SendString("pong")
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-7")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-7", resp.Header.Get(middleware.HeaderRequestID))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "request completed", record["msg"])
	assert.Equal(t, "req-7", record["request_id"])
	assert.Equal(t, "/ping", record["path"])
	assert.EqualValues(t, http.StatusOK, record["status"])

	buf.Reset()
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID), "a request id is generated when none is sent")

	line := strings.TrimSpace(buf.String())
	require.NoError(t, json.Unmarshal([]byte(line), &record))
	assert.EqualValues(t, http.StatusNotFound, record["status"])
	assert.Equal(t, "WARN", record["level"])
}
