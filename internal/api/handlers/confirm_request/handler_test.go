package confirm_request

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	confirmRequest "github.com/m04kA/SMC-EstateBookingService/internal/usecase/confirm_request"
	"github.com/m04kA/SMC-EstateBookingService/pkg/logger"
	"github.com/m04kA/SMC-EstateBookingService/pkg/ptr"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *confirmRequest.Request) (*confirmRequest.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*confirmRequest.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func newRouter(uc ConfirmRequestUseCase) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/{kind}-requests/{id}/confirm", NewHandler(uc, logger.NewNop()).Handle).
		Methods(http.MethodPost)
	return r
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		result     *confirmRequest.Response
		err        error
		call       *confirmRequest.Request
		wantStatus int
		wantBody   *ConfirmResponse
	}{
		{
			name:       "confirmed",
			url:        "/api/v1/stay-requests/5/confirm",
			call:       &confirmRequest.Request{Kind: domain.KindStay, ID: 5},
			result:     &confirmRequest.Response{Kind: domain.KindStay, ID: 5, Status: domain.StatusConfirmed},
			wantStatus: http.StatusOK,
			wantBody:   &ConfirmResponse{Kind: "stay", ID: 5, Status: "confirmed"},
		},
		{
			name: "refused on overlap",
			url:  "/api/v1/stay-requests/6/confirm",
			call: &confirmRequest.Request{Kind: domain.KindStay, ID: 6},
			result: &confirmRequest.Response{
				Kind:   domain.KindStay,
				ID:     6,
				Status: domain.StatusRefused,
				Reason: ptr.Ptr(domain.ReasonOverlapAtConfirmation),
			},
			wantStatus: http.StatusOK,
			wantBody: &ConfirmResponse{
				Kind:    "stay",
				ID:      6,
				Status:  "refused",
				Reason:  ptr.Ptr(domain.ReasonOverlapAtConfirmation),
				Message: "даты уже заняты подтвержденной заявкой",
			},
		},
		{
			name:       "already processed",
			url:        "/api/v1/visit-requests/7/confirm",
			call:       &confirmRequest.Request{Kind: domain.KindVisit, ID: 7},
			err:        fmt.Errorf("%w: refused -> confirmed", domain.ErrInvalidTransition),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "not found",
			url:        "/api/v1/visit-requests/8/confirm",
			call:       &confirmRequest.Request{Kind: domain.KindVisit, ID: 8},
			err:        confirmRequest.ErrRequestNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "internal",
			url:        "/api/v1/visit-requests/9/confirm",
			call:       &confirmRequest.Request{Kind: domain.KindVisit, ID: 9},
			err:        confirmRequest.ErrInternal,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "unknown kind",
			url:        "/api/v1/parking-requests/1/confirm",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid id",
			url:        "/api/v1/stay-requests/abc/confirm",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.call != nil {
				uc.On("Execute", mock.Anything, tt.call).Return(tt.result, tt.err).Once()
			}

			rec := httptest.NewRecorder()
			newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.url, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			uc.AssertExpectations(t)

			if tt.wantBody != nil {
				var body ConfirmResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, *tt.wantBody, body)
			}
		})
	}
}
