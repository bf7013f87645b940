package cancel_request

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-EstateBookingService/pkg/logger"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

type noopNotifier struct{}

func (noopNotifier) NotifyStatusChange(context.Context, domain.StatusChange) error { return nil }

func TestHandle(t *testing.T) {
	store := memory.NewStore(time.UTC)
	svc := reservations.NewService(
		store.StayRequests(),
		store.Appointments(),
		memory.NewTransactionManager(),
		noopNotifier{},
		logger.NewNop(),
	)

	checkIn, err := types.ParseDate("2030-07-01")
	require.NoError(t, err)

	newStay := func() int64 {
		created, err := store.StayRequests().Create(context.Background(), &domain.StayRequest{
			PropertyID: 1,
			CheckIn:    checkIn,
			CheckOut:   checkIn.AddDays(3),
			NumGuests:  2,
			Status:     domain.StatusPending,
			Guest:      domain.Contact{Name: "Marie", Email: "marie@example.com"},
		})
		require.NoError(t, err)
		return created.ID
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/{kind}-requests/{id}/cancel", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPost)

	call := func(url, body string) int {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, url, strings.NewReader(body)))
		return rec.Code
	}

	t.Run("without body", func(t *testing.T) {
		id := newStay()
		assert.Equal(t, http.StatusOK, call("/api/v1/stay-requests/"+itoa(id)+"/cancel", ""))

		got, err := store.StayRequests().GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, got.Status)
	})

	t.Run("with reason", func(t *testing.T) {
		id := newStay()
		assert.Equal(t, http.StatusOK, call("/api/v1/stay-requests/"+itoa(id)+"/cancel", `{"reason": "планы изменились"}`))
	})

	t.Run("twice", func(t *testing.T) {
		id := newStay()
		require.Equal(t, http.StatusOK, call("/api/v1/stay-requests/"+itoa(id)+"/cancel", ""))
		assert.Equal(t, http.StatusConflict, call("/api/v1/stay-requests/"+itoa(id)+"/cancel", ""))
	})

	t.Run("unknown request", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, call("/api/v1/visit-requests/999/cancel", ""))
	})

	t.Run("malformed body", func(t *testing.T) {
		id := newStay()
		assert.Equal(t, http.StatusBadRequest, call("/api/v1/stay-requests/"+itoa(id)+"/cancel", `{"reason":`))
	})
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
