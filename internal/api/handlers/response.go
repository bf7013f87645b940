package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// maxBodyBytes ограничивает размер тела запроса
const maxBodyBytes = 1 << 20

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgRuleViolation = "запрос нарушает правила бронирования"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"` // стабильный код нарушенного правила
}

// Сообщения для пользователя по кодам нарушенных правил
var reasonMessages = map[string]string{
	domain.ReasonInvalidRange:           "дата выезда должна быть позже даты заезда",
	domain.ReasonCapacityExceeded:       "количество гостей превышает вместимость объекта",
	domain.ReasonOutsideAvailability:    "выбранные даты вне периодов доступности объекта",
	domain.ReasonPeriodBlocked:          "выбранные даты пересекаются с закрытым периодом",
	domain.ReasonArrivalDayNotAllowed:   "заезд в этот день недели невозможен",
	domain.ReasonDepartureDayNotAllowed: "выезд в этот день недели невозможен",
	domain.ReasonStayTooShort:           "проживание короче минимального количества ночей",
	domain.ReasonSlotUnavailable:        "выбранный слот недоступен",
	domain.ReasonOverlapAtConfirmation:  "даты уже заняты подтвержденной заявкой",
}

// ReasonMessage возвращает сообщение для пользователя по коду правила
func ReasonMessage(reason string) string {
	if msg, ok := reasonMessages[reason]; ok {
		return msg
	}
	return msgRuleViolation
}

// RespondJSON пишет data как JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict 409
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondTooManyRequests 429
func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

// RespondRuleViolation 422 со стабильным кодом нарушенного правила
func RespondRuleViolation(w http.ResponseWriter, err error) {
	reason := domain.ReasonCode(err)
	RespondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Code:    http.StatusUnprocessableEntity,
		Message: ReasonMessage(reason),
		Reason:  reason,
	})
}

// RespondInternalError 500 без подробностей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// DecodeJSON декодирует тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body: %w", io.EOF)
	}
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// PathID извлекает положительный int64 из переменной пути
func PathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", name, raw)
	}
	return id, nil
}

// PathKind извлекает вид заявки (stay или visit) из переменной пути "kind"
func PathKind(r *http.Request) (domain.ReservationKind, error) {
	return domain.ParseReservationKind(mux.Vars(r)["kind"])
}

// QueryDate разбирает необязательный параметр даты YYYY-MM-DD
func QueryDate(r *http.Request, name string) (*types.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := types.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &d, nil
}

// QueryString возвращает необязательный строковый параметр
func QueryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}
