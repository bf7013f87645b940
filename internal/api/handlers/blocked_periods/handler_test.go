package blocked_periods

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/schedule"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-EstateBookingService/pkg/logger"
)

func newRouter() *mux.Router {
	store := memory.NewStore(time.UTC)
	svc := schedule.NewService(store.Rules(), store.Properties(), memory.NewTransactionManager(), logger.NewNop())
	h := NewHandler(svc, logger.NewNop())

	r := mux.NewRouter()
	r.HandleFunc("/properties/{propertyId}/blocked-periods", h.HandleList).Methods(http.MethodGet)
	r.HandleFunc("/properties/{propertyId}/blocked-periods", h.HandleCreate).Methods(http.MethodPost)
	r.HandleFunc("/properties/{propertyId}/blocked-periods/{periodId}", h.HandleDelete).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, url, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, url, strings.NewReader(body)))
	return rec
}

func TestPeriodsLifecycle(t *testing.T) {
	r := newRouter()

	// 1. Создаем закрытый период
	rec := do(r, http.MethodPost, "/properties/3/blocked-periods",
		`{"startDate": "2024-08-01", "endDate": "2024-08-15", "reason": "ремонт"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.PeriodResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, int64(3), created.PropertyID)
	assert.True(t, created.Blocked)
	require.NotNil(t, created.Reason)
	assert.Equal(t, "ремонт", *created.Reason)

	// 2. Период виден в списке с пересекающимся фильтром и не виден с непересекающимся
	rec = do(r, http.MethodGet, "/properties/3/blocked-periods?from=2024-08-10&to=2024-08-20", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list models.PeriodListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Len(t, list.Periods, 1)

	rec = do(r, http.MethodGet, "/properties/3/blocked-periods?from=2024-09-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list = models.PeriodListResponse{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Empty(t, list.Periods)

	// 3. Чужой объект не может удалить период
	rec = do(r, http.MethodDelete, "/properties/4/blocked-periods/"+itoa(created.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// 4. Удаление
	rec = do(r, http.MethodDelete, "/properties/3/blocked-periods/"+itoa(created.ID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(r, http.MethodDelete, "/properties/3/blocked-periods/"+itoa(created.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateValidation(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name string
		url  string
		body string
	}{
		{"end before start", "/properties/3/blocked-periods", `{"startDate": "2024-08-15", "endDate": "2024-08-01"}`},
		{"missing dates", "/properties/3/blocked-periods", `{}`},
		{"bad date", "/properties/3/blocked-periods", `{"startDate": "2024-13-01", "endDate": "2024-08-01"}`},
		{"bad property", "/properties/0/blocked-periods", `{"startDate": "2024-08-01", "endDate": "2024-08-02"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, http.MethodPost, tt.url, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListInvalidQuery(t *testing.T) {
	rec := do(newRouter(), http.MethodGet, "/properties/3/blocked-periods?from=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
