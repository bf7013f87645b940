package create_visit_request

import (
	"time"

	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// Request модель запроса на запись на визит
type Request struct {
	ResourceID   int64            // ID ресурса (агент или объект)
	PropertyID   *int64           // Объект, который показывают (опционально)
	Date         types.Date       // Дата визита
	StartTime    types.TimeString // Время начала слота, например "10:00"
	VisitorName  string
	VisitorEmail string
	VisitorPhone *string
}

// Response модель ответа с созданным визитом
type Response struct {
	ID                  int64
	ResourceID          int64
	PropertyID          *int64
	Date                types.Date
	StartTime           types.TimeString
	DurationMinutes     int
	SafetyMarginMinutes int
	Status              string // Всегда pending
	VisitorName         string
	VisitorEmail        string
	VisitorPhone        *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
