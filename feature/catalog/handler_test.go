package catalog

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	table := buildTable(t,
		block(hashA, "CRC=00000001 00000002", "Status=3", "SaveType=Sram", "Cheat0=8133B1BC 4100")+
			block(hashB, "CRC=00000005 00000006", "RefMD5="+hashA))
	app := fiber.New()
	NewHandler(table, zap.NewNop()).RegisterRoutes(app)
	return app
}

func TestHandleGetRecord(t *testing.T) {
	app := newTestApp(t)

	t.Run("Direct Hit", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/records/0000000100000002", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body recordResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "100000002", body.CRC)
		assert.Equal(t, "Sram", body.SaveType)
		assert.Equal(t, uint8(3), body.Status)
		assert.Equal(t, "8133B1BC 4100", body.Patch)
	})

	t.Run("Reference Resolved To Target Config", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/records/0000000500000006", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body recordResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Sram", body.SaveType)
		assert.Equal(t, uint8(3), body.Status)
	})

	t.Run("Unknown Checksum", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/records/DEADBEEF00000000", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "defaults apply")
	})

	t.Run("Malformed Checksum", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/records/not-a-crc", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandleGetPatch(t *testing.T) {
	app := newTestApp(t)

	t.Run("Interned Payload", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/patches/1", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "8133B1BC 4100")
	})

	t.Run("Reserved Index", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/patches/0", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("Out Of Range Index", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/patches/30", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
