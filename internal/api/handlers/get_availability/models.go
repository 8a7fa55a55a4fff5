package get_availability

import (
	"time"

	"github.com/intunemindset/IM-BookingService/internal/domain"
	getAvailability "github.com/intunemindset/IM-BookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	PractitionerID string          `json:"practitionerId"`
	Date           string          `json:"date"`
	Slots          []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time  string `json:"time"`
	Taken bool   `json:"taken"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:  slot.Label.String(),
			Taken: slot.Taken,
		}
	}

	return &AvailabilityResponse{
		PractitionerID: resp.PractitionerID,
		Date:           resp.Date.Format(domain.DateFormat),
		Slots:          slots,
	}
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(practitionerID, dateStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		PractitionerID: practitionerID,
		Date:           date,
	}, nil
}
