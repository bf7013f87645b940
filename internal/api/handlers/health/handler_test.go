package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EstateBookingService/pkg/logger"
)

func TestHandle(t *testing.T) {
	ok := CheckFunc{CheckName: "postgres", Fn: func(context.Context) error { return nil }}
	down := CheckFunc{CheckName: "redis", Fn: func(context.Context) error { return errors.New("connection refused") }}

	t.Run("all healthy", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(logger.NewNop(), ok).Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, map[string]string{"postgres": "ok"}, resp.Checks)
	})

	t.Run("dependency down", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(logger.NewNop(), ok, down).Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "degraded", resp.Status)
		assert.Equal(t, "connection refused", resp.Checks["redis"])
	})

	t.Run("no dependencies", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
