package get_availability

import (
	"time"

	"github.com/intunemindset/IM-BookingService/pkg/types"
)

// Request модель запроса на получение доступности слотов
type Request struct {
	PractitionerID string    // ID практикующего
	Date           time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа с полным упорядоченным множеством слотов
type Response struct {
	PractitionerID string    // ID практикующего
	Date           time.Time // Дата, на которую запрашивались слоты
	Slots          []Slot    // Все дневные слоты с флагом занятости
}

// Slot модель временного слота
type Slot struct {
	Label types.TimeLabel // Подпись слота (например, "10:00 AM")
	Taken bool            // Занят ли слот неотмененным бронированием
}
