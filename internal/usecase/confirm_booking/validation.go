package confirm_booking

import (
	"fmt"
	"strings"

	"github.com/intunemindset/IM-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Полевая валидация контактов принадлежит state machine (internal/flow);
// здесь - последний рубеж перед записью в хранилище
func validateRequest(req *Request) error {
	if req.PractitionerID == "" {
		return fmt.Errorf("%w: practitionerID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if !domain.IsValidSlotLabel(req.Time) {
		return fmt.Errorf("%w: unknown time slot %q", ErrInvalidInput, req.Time)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerEmail) == "" {
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}

	if len(strings.TrimSpace(req.CustomerPhone)) < domain.MinPhoneLength {
		return fmt.Errorf("%w: customer phone is too short", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerAddress) == "" {
		return fmt.Errorf("%w: customer address is required", ErrInvalidInput)
	}

	return nil
}
