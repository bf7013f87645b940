package list_slots

import (
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// Request модель запроса на получение слотов визитов
type Request struct {
	ResourceID int64      // ID ресурса (агент или объект)
	Date       types.Date // Дата визита
}

// Response модель ответа со слотами дня
type Response struct {
	ResourceID int64
	Date       types.Date
	Slots      []Slot // Все слоты дня по возрастанию времени, включая занятые
}

// Slot модель временного слота
type Slot struct {
	Time      types.TimeString // Время начала визита, например "10:00"
	Available bool             // Слот можно забронировать
	Priority  int              // 1 для рекомендованных слотов, иначе 0
}
