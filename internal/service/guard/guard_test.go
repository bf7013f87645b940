package guard_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/interval"
	"github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/guard"
	"github.com/m04kA/SMC-EstateBookingService/pkg/locker"
	"github.com/m04kA/SMC-EstateBookingService/pkg/logger"
	"github.com/m04kA/SMC-EstateBookingService/pkg/metrics"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

type fixture struct {
	stays *memory.StayRequests
	guard *guard.Guard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	stays := memory.NewStore(time.UTC).StayRequests()
	g := guard.NewGuard(
		domain.KindStay,
		stays,
		memory.NewTransactionManager(),
		locker.NewKeyedMutex(),
		metrics.NewWithRegistry("test", prometheus.NewRegistry()),
		logger.NewNop(),
	)
	return &fixture{stays: stays, guard: g}
}

func (f *fixture) pending(t *testing.T, propertyID int64, in, out types.Date) guard.Candidate {
	t.Helper()
	req, err := f.stays.Create(context.Background(), &domain.StayRequest{
		PropertyID: propertyID,
		CheckIn:    in,
		CheckOut:   out,
		NumGuests:  2,
		Status:     domain.StatusPending,
		Guest:      domain.Contact{Name: "Guest", Email: "guest@example.com"},
	})
	require.NoError(t, err)

	iv, err := interval.FromDates(in, out)
	require.NoError(t, err)

	return guard.Candidate{ResourceID: propertyID, ID: req.ID, Interval: iv}
}

func (f *fixture) status(t *testing.T, id int64) domain.ReservationStatus {
	t.Helper()
	req, err := f.stays.GetByID(context.Background(), id)
	require.NoError(t, err)
	return req.Status
}

func TestTryConfirm_ConcurrentOverlappingStays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// [01.07, 05.07) и [03.07, 06.07)
	first := f.pending(t, 1, types.NewDate(2024, 7, 1), types.NewDate(2024, 7, 5))
	second := f.pending(t, 1, types.NewDate(2024, 7, 3), types.NewDate(2024, 7, 6))

	decisions := make([]*guard.Decision, 2)
	var wg sync.WaitGroup
	for i, c := range []guard.Candidate{first, second} {
		wg.Add(1)
		go func(i int, c guard.Candidate) {
			defer wg.Done()
			d, err := f.guard.TryConfirm(ctx, c, nil)
			if !assert.NoError(t, err) {
				return
			}
			decisions[i] = d
		}(i, c)
	}
	wg.Wait()

	require.NotNil(t, decisions[0])
	require.NotNil(t, decisions[1])

	confirmed, refused := 0, 0
	for _, d := range decisions {
		if d.Confirmed() {
			confirmed++
			continue
		}
		refused++
		assert.Equal(t, domain.ReasonOverlapAtConfirmation, d.Reason)
		assert.ErrorIs(t, d.Cause, domain.ErrOverlapAtConfirmation)
	}
	assert.Equal(t, 1, confirmed)
	assert.Equal(t, 1, refused)

	statuses := []domain.ReservationStatus{f.status(t, first.ID), f.status(t, second.ID)}
	assert.ElementsMatch(t, []domain.ReservationStatus{domain.StatusConfirmed, domain.StatusRefused}, statuses)
}

func TestTryConfirm_ManyConcurrentCandidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	candidates := make([]guard.Candidate, 0, 10)
	for i := 0; i < 10; i++ {
		in := types.NewDate(2024, 7, 1).AddDays(i % 3)
		candidates = append(candidates, f.pending(t, 7, in, in.AddDays(4)))
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		confirmed []interval.Interval
	)
	for _, c := range candidates {
		wg.Add(1)
		go func(c guard.Candidate) {
			defer wg.Done()
			d, err := f.guard.TryConfirm(ctx, c, nil)
			if !assert.NoError(t, err) {
				return
			}
			if d.Confirmed() {
				mu.Lock()
				confirmed = append(confirmed, c.Interval)
				mu.Unlock()
			}
		}(c)
	}
	wg.Wait()

	// Все кандидаты попарно пересекаются
	assert.Len(t, confirmed, 1)
}

func TestTryConfirm_AdjacentStaysBothConfirmed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.pending(t, 1, types.NewDate(2024, 7, 1), types.NewDate(2024, 7, 5))
	second := f.pending(t, 1, types.NewDate(2024, 7, 5), types.NewDate(2024, 7, 8))
	other := f.pending(t, 2, types.NewDate(2024, 7, 1), types.NewDate(2024, 7, 5))

	for _, c := range []guard.Candidate{first, second, other} {
		d, err := f.guard.TryConfirm(ctx, c, nil)
		require.NoError(t, err)
		assert.True(t, d.Confirmed(), "candidate %d", c.ID)
	}
}

func TestTryConfirm_Revalidate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		revalidate guard.RevalidateFunc
		wantErr    bool
		wantReason string
		wantStatus domain.ReservationStatus
	}{
		{
			name:       "passes",
			revalidate: func(context.Context) error { return nil },
			wantStatus: domain.StatusConfirmed,
		},
		{
			name: "rule violation refuses",
			revalidate: func(context.Context) error {
				return fmt.Errorf("%w: 2024-07-02..2024-07-03", domain.ErrPeriodBlocked)
			},
			wantReason: domain.ReasonPeriodBlocked,
			wantStatus: domain.StatusRefused,
		},
		{
			name:       "infrastructure error aborts",
			revalidate: func(context.Context) error { return errors.New("connection reset") },
			wantErr:    true,
			wantStatus: domain.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			c := f.pending(t, 1, types.NewDate(2024, 7, 1), types.NewDate(2024, 7, 5))

			d, err := f.guard.TryConfirm(ctx, c, tt.revalidate)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, d)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantReason, d.Reason)
			}
			assert.Equal(t, tt.wantStatus, f.status(t, c.ID))
		})
	}
}

func TestTryConfirm_NotPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.pending(t, 1, types.NewDate(2024, 7, 1), types.NewDate(2024, 7, 5))
	require.NoError(t, f.stays.SetStatus(ctx, c.ID, domain.StatusPending, domain.StatusCancelled, nil))

	_, err := f.guard.TryConfirm(ctx, c, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.StatusCancelled, f.status(t, c.ID))
}

func TestTryConfirm_InvalidCandidate(t *testing.T) {
	f := newFixture(t)

	start := time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC)
	_, err := f.guard.TryConfirm(context.Background(), guard.Candidate{
		ResourceID: 1,
		ID:         1,
		Interval:   interval.Interval{Start: start, End: start.Add(-time.Hour)},
	}, nil)
	assert.ErrorIs(t, err, guard.ErrInvalidCandidate)
}

// exclusionStore имитирует срабатывание ограничения исключения в БД при подтверждении
type exclusionStore struct {
	mu       sync.Mutex
	statuses map[int64]domain.ReservationStatus
}

func (s *exclusionStore) ConfirmedIntervals(context.Context, int64, interval.Interval, int64) ([]interval.Interval, error) {
	return nil, nil
}

func (s *exclusionStore) SetStatus(_ context.Context, id int64, from, to domain.ReservationStatus, _ *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statuses[id] != from {
		return domain.ErrInvalidTransition
	}
	if to == domain.StatusConfirmed {
		return fmt.Errorf("%w: exclusion constraint", domain.ErrOverlapAtConfirmation)
	}
	s.statuses[id] = to
	return nil
}

func TestTryConfirm_StorageRejectsOverlap(t *testing.T) {
	store := &exclusionStore{statuses: map[int64]domain.ReservationStatus{1: domain.StatusPending}}
	g := guard.NewGuard(
		domain.KindStay,
		store,
		memory.NewTransactionManager(),
		locker.NewKeyedMutex(),
		metrics.NewWithRegistry("test", prometheus.NewRegistry()),
		logger.NewNop(),
	)

	iv, err := interval.FromDates(types.NewDate(2024, 7, 1), types.NewDate(2024, 7, 5))
	require.NoError(t, err)

	d, err := g.TryConfirm(context.Background(), guard.Candidate{ResourceID: 1, ID: 1, Interval: iv}, nil)
	require.NoError(t, err)
	assert.False(t, d.Confirmed())
	assert.Equal(t, domain.ReasonOverlapAtConfirmation, d.Reason)
	assert.Equal(t, domain.StatusRefused, store.statuses[1])
}

type failingLocker struct{}

func (failingLocker) Lock(context.Context, string) (locker.UnlockFunc, error) {
	return nil, locker.ErrLockTimeout
}

func TestTryConfirm_LockFailure(t *testing.T) {
	f := newFixture(t)
	g := guard.NewGuard(
		domain.KindStay,
		f.stays,
		memory.NewTransactionManager(),
		failingLocker{},
		metrics.NewWithRegistry("test", prometheus.NewRegistry()),
		logger.NewNop(),
	)
	c := f.pending(t, 1, types.NewDate(2024, 7, 1), types.NewDate(2024, 7, 5))

	_, err := g.TryConfirm(context.Background(), c, nil)
	assert.ErrorIs(t, err, guard.ErrLock)
	assert.Equal(t, domain.StatusPending, f.status(t, c.ID))
}

func TestLockKey(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "stay:42", f.guard.LockKey(42))
}
