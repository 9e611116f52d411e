package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"licenseadmin/internal/logging"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey).(string)
		fromCtx := logging.RequestIDFromContext(c.UserContext())
		return c.SendString(rid + "|" + fromCtx)
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader+"|"+ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID+"|"+existingID, buf.String())
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	app.Use(RequestID())
	app.Use(Logger(logging.New(&buf, time.UTC)))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadGateway, "upstream")
	})

	t.Run("success", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest("GET", "/test?x=1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

		var logData map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))

		assert.NotEmpty(t, logData["request_id"])
		assert.Equal(t, "info", logData["level"])
		assert.Equal(t, "http_request", logData["msg"])
		assert.Equal(t, "GET", logData["method"])
		assert.Equal(t, "/test", logData["path"])
		assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
		assert.NotNil(t, logData["latency"])
		assert.NotEmpty(t, logData["ts"])
	})

	t.Run("error status", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest("GET", "/boom", nil)
		app.Test(req)

		line := strings.TrimSpace(buf.String())
		var logData map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &logData))

		assert.Equal(t, "error", logData["level"])
		assert.Equal(t, float64(fiber.StatusBadGateway), logData["status"])
	})
}
