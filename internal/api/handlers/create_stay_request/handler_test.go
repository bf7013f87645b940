package create_stay_request

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EstateBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	createStayRequest "github.com/m04kA/SMC-EstateBookingService/internal/usecase/create_stay_request"
	"github.com/m04kA/SMC-EstateBookingService/pkg/logger"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createStayRequest.Request) (*createStayRequest.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*createStayRequest.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

const validBody = `{
	"propertyId": 7,
	"checkIn": "2030-07-05",
	"checkOut": "2030-07-10",
	"numGuests": 2,
	"guest": {"name": "Анна", "email": "anna@example.com"}
}`

func TestHandle(t *testing.T) {
	checkIn, err := types.ParseDate("2030-07-05")
	require.NoError(t, err)

	tests := []struct {
		name       string
		body       string
		result     *createStayRequest.Response
		err        error
		wantStatus int
		wantReason string
	}{
		{
			name: "created",
			body: validBody,
			result: &createStayRequest.Response{
				ID:         1,
				PropertyID: 7,
				CheckIn:    checkIn,
				CheckOut:   checkIn.AddDays(5),
				Nights:     5,
				NumGuests:  2,
				Status:     string(domain.StatusPending),
				GuestName:  "Анна",
				GuestEmail: "anna@example.com",
				CreatedAt:  time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "rule violation",
			body:       validBody,
			err:        fmt.Errorf("%w: 1 < 3", domain.ErrStayTooShort),
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: domain.ReasonStayTooShort,
		},
		{
			name:       "check-in in the past",
			body:       validBody,
			err:        createStayRequest.ErrInvalidDate,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid input",
			body:       validBody,
			err:        fmt.Errorf("%w: guest email", createStayRequest.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "internal",
			body:       validBody,
			err:        createStayRequest.ErrInternal,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "malformed date",
			body:       `{"propertyId": 7, "checkIn": "05.07.2030"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			body:       `{"propertyId": 7, "rooms": 3}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.result != nil || tt.err != nil {
				uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createStayRequest.Request) bool {
					return req.PropertyID == 7 && req.NumGuests == 2 && req.GuestEmail == "anna@example.com"
				})).Return(tt.result, tt.err).Once()
			}

			h := NewHandler(uc, logger.NewNop())
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/stay-requests", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			uc.AssertExpectations(t)

			if tt.wantReason != "" {
				var body handlers.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, tt.wantReason, body.Reason)
				assert.Equal(t, handlers.ReasonMessage(tt.wantReason), body.Message)
			}
			if tt.wantStatus == http.StatusCreated {
				var body StayRequestResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, int64(1), body.ID)
				assert.Equal(t, 5, body.Nights)
				assert.Equal(t, "pending", body.Status)
			}
		})
	}
}
