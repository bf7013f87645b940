package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/interval"
	"github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/property"
	"github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/stayrequest"
	"github.com/m04kA/SMC-EstateBookingService/pkg/ptr"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

func newStay(propertyID int64, in, out types.Date, status domain.ReservationStatus) *domain.StayRequest {
	return &domain.StayRequest{
		PropertyID: propertyID,
		CheckIn:    in,
		CheckOut:   out,
		NumGuests:  2,
		Status:     status,
		Guest:      domain.Contact{Name: "Guest", Email: "guest@example.com"},
	}
}

func TestStayRequests_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewStore(time.UTC).StayRequests()

	created, err := repo.Create(ctx, newStay(1, types.NewDate(2024, 7, 1), types.NewDate(2024, 7, 5), domain.StatusPending))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	// Изменение возвращенного значения не затрагивает хранилище
	created.NumGuests = 99

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.NumGuests)

	_, err = repo.GetByID(ctx, 404)
	assert.ErrorIs(t, err, stayrequest.ErrRequestNotFound)
}

func TestStayRequests_ConfirmedIntervals(t *testing.T) {
	ctx := context.Background()
	repo := NewStore(time.UTC).StayRequests()

	confirmed, err := repo.Create(ctx, newStay(1, types.NewDate(2024, 7, 1), types.NewDate(2024, 7, 5), domain.StatusConfirmed))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newStay(1, types.NewDate(2024, 7, 3), types.NewDate(2024, 7, 6), domain.StatusPending))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newStay(2, types.NewDate(2024, 7, 3), types.NewDate(2024, 7, 6), domain.StatusConfirmed))
	require.NoError(t, err)

	window, err := interval.FromDates(types.NewDate(2024, 7, 4), types.NewDate(2024, 7, 8))
	require.NoError(t, err)

	got, err := repo.ConfirmedIntervals(ctx, 1, window, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, types.NewDate(2024, 7, 1).Time(), got[0].Start)

	got, err = repo.ConfirmedIntervals(ctx, 1, window, confirmed.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Выезд в день заезда не пересекается
	touching, err := interval.FromDates(types.NewDate(2024, 7, 5), types.NewDate(2024, 7, 7))
	require.NoError(t, err)
	got, err = repo.ConfirmedIntervals(ctx, 1, touching, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStayRequests_SetStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewStore(time.UTC).StayRequests()

	req, err := repo.Create(ctx, newStay(1, types.NewDate(2024, 7, 1), types.NewDate(2024, 7, 5), domain.StatusPending))
	require.NoError(t, err)

	require.NoError(t, repo.SetStatus(ctx, req.ID, domain.StatusPending, domain.StatusRefused, ptr.Ptr("period_blocked")))

	got, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRefused, got.Status)
	require.NotNil(t, got.RefusalReason)
	assert.Equal(t, "period_blocked", *got.RefusalReason)

	err = repo.SetStatus(ctx, req.ID, domain.StatusPending, domain.StatusConfirmed, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	err = repo.SetStatus(ctx, 404, domain.StatusPending, domain.StatusConfirmed, nil)
	assert.ErrorIs(t, err, stayrequest.ErrRequestNotFound)
}

func TestStayRequests_List(t *testing.T) {
	ctx := context.Background()
	repo := NewStore(time.UTC).StayRequests()

	_, err := repo.Create(ctx, newStay(1, types.NewDate(2024, 7, 10), types.NewDate(2024, 7, 12), domain.StatusPending))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newStay(1, types.NewDate(2024, 7, 1), types.NewDate(2024, 7, 3), domain.StatusConfirmed))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newStay(2, types.NewDate(2024, 7, 1), types.NewDate(2024, 7, 3), domain.StatusConfirmed))
	require.NoError(t, err)

	all, err := repo.List(ctx, domain.StayRequestFilter{PropertyID: 1})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, types.NewDate(2024, 7, 1), all[0].CheckIn)

	status := domain.StatusPending
	pending, err := repo.List(ctx, domain.StayRequestFilter{PropertyID: 1, Status: &status})
	require.NoError(t, err)
	require.Len(t, pending, 1)

	from := types.NewDate(2024, 7, 3)
	later, err := repo.List(ctx, domain.StayRequestFilter{PropertyID: 1, From: &from})
	require.NoError(t, err)
	require.Len(t, later, 1)
	assert.Equal(t, types.NewDate(2024, 7, 10), later[0].CheckIn)
}

func TestAppointments_ActiveAndConfirmed(t *testing.T) {
	ctx := context.Background()
	repo := NewStore(time.UTC).Appointments()
	date := types.NewDate(2024, 7, 1)

	newAppt := func(start types.TimeString, status domain.ReservationStatus) *domain.Appointment {
		return &domain.Appointment{
			ResourceID:          10,
			Date:                date,
			StartTime:           start,
			DurationMinutes:     45,
			SafetyMarginMinutes: 15,
			Status:              status,
			Visitor:             domain.Contact{Name: "Visitor", Email: "v@example.com"},
		}
	}

	_, err := repo.Create(ctx, newAppt("10:00", domain.StatusConfirmed))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newAppt("09:00", domain.StatusPending))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newAppt("11:00", domain.StatusCancelled))
	require.NoError(t, err)

	active, err := repo.ListActiveByDate(ctx, 10, date)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, types.TimeString("09:00"), active[0].StartTime)

	start, err := date.At("10:30", time.UTC)
	require.NoError(t, err)
	window, err := interval.Occupied(start, 45*time.Minute, 15*time.Minute)
	require.NoError(t, err)

	confirmed, err := repo.ConfirmedIntervals(ctx, 10, window, 0)
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, time.Date(2024, 7, 1, 9, 45, 0, 0, time.UTC), confirmed[0].Start)
	assert.Equal(t, time.Date(2024, 7, 1, 11, 0, 0, 0, time.UTC), confirmed[0].End)

	_, err = repo.GetByID(ctx, 404)
	assert.ErrorIs(t, err, appointment.ErrAppointmentNotFound)
}

func TestRules_ReplaceForResource(t *testing.T) {
	ctx := context.Background()
	repo := NewStore(time.UTC).Rules()

	_, err := repo.ReplaceForResource(ctx, 10, []*domain.AvailabilityRule{
		{Weekday: domain.Tuesday, WindowStart: "09:00", WindowEnd: "12:00", Active: true},
		{Weekday: domain.Monday, WindowStart: "14:00", WindowEnd: "18:00", Active: true},
		{Weekday: domain.Monday, WindowStart: "09:00", WindowEnd: "12:00", Active: true},
	})
	require.NoError(t, err)

	rules, err := repo.ListByResource(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, domain.Monday, rules[0].Weekday)
	assert.Equal(t, types.TimeString("09:00"), rules[0].WindowStart)
	assert.Equal(t, domain.Tuesday, rules[2].Weekday)
	assert.Equal(t, int64(10), rules[0].ResourceID)

	_, err = repo.ReplaceForResource(ctx, 10, nil)
	require.NoError(t, err)

	rules, err = repo.ListByResource(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestProperties(t *testing.T) {
	ctx := context.Background()
	repo := NewStore(time.UTC).Properties()

	_, err := repo.GetConstraints(ctx, 1)
	assert.ErrorIs(t, err, property.ErrConstraintsNotFound)

	_, err = repo.UpsertConstraints(ctx, &domain.StayConstraints{
		PropertyID:             1,
		MinStayNights:          3,
		AllowedArrivalWeekdays: []domain.Weekday{domain.Saturday},
	})
	require.NoError(t, err)

	c, err := repo.GetConstraints(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, c.MinStayNights)
	assert.Equal(t, []domain.Weekday{domain.Saturday}, c.AllowedArrivalWeekdays)

	p, err := repo.CreatePeriod(ctx, &domain.BlockedPeriod{
		PropertyID: 1,
		StartDate:  types.NewDate(2024, 8, 1),
		EndDate:    types.NewDate(2024, 8, 10),
		Blocked:    true,
	})
	require.NoError(t, err)

	from := types.NewDate(2024, 8, 10)
	periods, err := repo.ListPeriods(ctx, 1, &from, nil)
	require.NoError(t, err)
	assert.Len(t, periods, 1)

	from = types.NewDate(2024, 8, 11)
	periods, err = repo.ListPeriods(ctx, 1, &from, nil)
	require.NoError(t, err)
	assert.Empty(t, periods)

	assert.ErrorIs(t, repo.DeletePeriod(ctx, 2, p.ID), property.ErrPeriodNotFound)
	require.NoError(t, repo.DeletePeriod(ctx, 1, p.ID))
	assert.ErrorIs(t, repo.DeletePeriod(ctx, 1, p.ID), property.ErrPeriodNotFound)
}
