package validate_stay

import "github.com/m04kA/SMC-EstateBookingService/pkg/types"

// Request модель запроса на проверку проживания
type Request struct {
	PropertyID int64
	CheckIn    types.Date
	CheckOut   types.Date
	NumGuests  int
}

// Response результат проверки. При отказе Reason содержит стабильный код правила
type Response struct {
	Valid   bool
	Reason  string
	Message string
	Nights  int
}
