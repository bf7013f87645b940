package create_visit_request

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/slots"
	"github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-EstateBookingService/pkg/locker"
	"github.com/m04kA/SMC-EstateBookingService/pkg/logger"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

// 2024-07-01 - понедельник
var monday = types.NewDate(2024, time.July, 1)

func setup(t *testing.T, now time.Time) (*UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore(time.UTC)

	_, err := store.Rules().ReplaceForResource(context.Background(), 10, []*domain.AvailabilityRule{{
		Weekday:              domain.Monday,
		WindowStart:          "09:00",
		WindowEnd:            "12:00",
		VisitDurationMinutes: 45,
		SafetyMarginMinutes:  15,
		SlotIntervalMinutes:  30,
		Active:               true,
	}})
	require.NoError(t, err)

	uc := NewUseCase(
		store.Appointments(),
		store.Rules(),
		slots.NewGenerator(slots.Options{MinNoticeMinutes: 60}),
		locker.NewKeyedMutex(),
		memory.NewTransactionManager(),
		0,
		logger.NewNop(),
	).WithTimeProvider(fixedTime(now))

	return uc, store
}

func request(start types.TimeString) *Request {
	return &Request{
		ResourceID:   10,
		Date:         monday,
		StartTime:    start,
		VisitorName:  "Jean Valjean",
		VisitorEmail: "jean@example.com",
	}
}

func TestExecute_BooksAvailableSlot(t *testing.T) {
	uc, store := setup(t, time.Date(2024, time.June, 28, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), request("10:00"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, 15, resp.SafetyMarginMinutes)

	active, err := store.Appointments().ListActiveByDate(context.Background(), 10, monday)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, types.TimeString("10:00"), active[0].StartTime)
}

func TestExecute_SlotUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		now   time.Time
		first types.TimeString
		start types.TimeString
	}{
		{
			name:  "taken by pending appointment",
			now:   time.Date(2024, time.June, 28, 12, 0, 0, 0, time.UTC),
			first: "10:00",
			start: "10:30",
		},
		{
			name:  "not on the grid",
			now:   time.Date(2024, time.June, 28, 12, 0, 0, 0, time.UTC),
			start: "10:15",
		},
		{
			name:  "outside the window",
			now:   time.Date(2024, time.June, 28, 12, 0, 0, 0, time.UTC),
			start: "11:30",
		},
		{
			name:  "inside minimum notice",
			now:   time.Date(2024, time.July, 1, 9, 10, 0, 0, time.UTC),
			start: "10:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := setup(t, tt.now)
			if tt.first != "" {
				_, err := uc.Execute(context.Background(), request(tt.first))
				require.NoError(t, err)
			}

			_, err := uc.Execute(context.Background(), request(tt.start))
			assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
		})
	}
}

func TestExecute_InputErrors(t *testing.T) {
	uc, _ := setup(t, time.Date(2024, time.July, 2, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), request("10:00"))
	assert.ErrorIs(t, err, ErrInvalidDate)

	bad := request("25:00")
	_, err = uc.Execute(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = request("10:00")
	bad.VisitorEmail = "nope"
	_, err = uc.Execute(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ConcurrentRequestsForSameSlot(t *testing.T) {
	uc, store := setup(t, time.Date(2024, time.June, 28, 12, 0, 0, 0, time.UTC))

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.Execute(context.Background(), request("09:00")); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)

	active, err := store.Appointments().ListActiveByDate(context.Background(), 10, monday)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
