package validate_stay

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-EstateBookingService/pkg/logger"
	"github.com/m04kA/SMC-EstateBookingService/pkg/metrics"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

func TestExecute(t *testing.T) {
	ctx := context.Background()
	properties := memory.NewStore(time.UTC).Properties()

	_, err := properties.UpsertConstraints(ctx, &domain.StayConstraints{PropertyID: 1, MinStayNights: 3, MaxGuests: 4})
	require.NoError(t, err)
	_, err = properties.CreatePeriod(ctx, &domain.BlockedPeriod{
		PropertyID: 1,
		StartDate:  types.NewDate(2024, time.August, 1),
		EndDate:    types.NewDate(2024, time.August, 15),
		Blocked:    true,
	})
	require.NoError(t, err)

	uc := NewUseCase(properties, metrics.NewWithRegistry("test", prometheus.NewRegistry()), logger.NewNop())

	tests := []struct {
		name       string
		req        *Request
		wantValid  bool
		wantReason string
		wantNights int
	}{
		{
			name:       "valid stay",
			req:        &Request{PropertyID: 1, CheckIn: types.NewDate(2024, time.July, 5), CheckOut: types.NewDate(2024, time.July, 9), NumGuests: 2},
			wantValid:  true,
			wantNights: 4,
		},
		{
			name:       "too short",
			req:        &Request{PropertyID: 1, CheckIn: types.NewDate(2024, time.July, 5), CheckOut: types.NewDate(2024, time.July, 7), NumGuests: 2},
			wantReason: domain.ReasonStayTooShort,
		},
		{
			name:       "blocked",
			req:        &Request{PropertyID: 1, CheckIn: types.NewDate(2024, time.August, 10), CheckOut: types.NewDate(2024, time.August, 12), NumGuests: 2},
			wantReason: domain.ReasonPeriodBlocked,
		},
		{
			name:       "too many guests",
			req:        &Request{PropertyID: 1, CheckIn: types.NewDate(2024, time.July, 5), CheckOut: types.NewDate(2024, time.July, 9), NumGuests: 5},
			wantReason: domain.ReasonCapacityExceeded,
		},
		{
			name:       "inverted range",
			req:        &Request{PropertyID: 1, CheckIn: types.NewDate(2024, time.July, 9), CheckOut: types.NewDate(2024, time.July, 5), NumGuests: 2},
			wantReason: domain.ReasonInvalidRange,
		},
		{
			name:       "property without constraints uses defaults",
			req:        &Request{PropertyID: 2, CheckIn: types.NewDate(2024, time.July, 5), CheckOut: types.NewDate(2024, time.July, 6), NumGuests: 8},
			wantValid:  true,
			wantNights: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, resp.Valid)
			assert.Equal(t, tt.wantReason, resp.Reason)
			assert.Equal(t, tt.wantNights, resp.Nights)
			if !tt.wantValid {
				assert.NotEmpty(t, resp.Message)
			}
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(memory.NewStore(time.UTC).Properties(), metrics.NewWithRegistry("test", prometheus.NewRegistry()), logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{PropertyID: 1, NumGuests: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		PropertyID: 1,
		CheckIn:    types.NewDate(2024, time.July, 5),
		CheckOut:   types.NewDate(2024, time.July, 6),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
