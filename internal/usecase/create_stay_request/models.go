package create_stay_request

import (
	"time"

	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// Request модель запроса на создание заявки на проживание
type Request struct {
	PropertyID int64      // ID объекта
	CheckIn    types.Date // Дата заезда
	CheckOut   types.Date // Дата выезда (ночь выезда не входит)
	NumGuests  int        // Количество гостей
	GuestName  string
	GuestEmail string
	GuestPhone *string
	Message    *string // Сообщение владельцу (опционально)
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID         int64
	PropertyID int64
	CheckIn    types.Date
	CheckOut   types.Date
	Nights     int
	NumGuests  int
	Status     string // Всегда pending
	GuestName  string
	GuestEmail string
	GuestPhone *string
	Message    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
