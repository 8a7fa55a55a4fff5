package flow

import (
	"regexp"
	"strings"

	"github.com/intunemindset/IM-BookingService/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateDetails выполняет полевую валидацию контактных данных
// Возвращает ошибки по каждому невалидному полю, а не только первую:
// клиент исправляет всё за один заход
func validateDetails(d ContactDetails) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(d.Name) == "" {
		errs["name"] = "Please enter your full name"
	}

	if !emailPattern.MatchString(strings.TrimSpace(d.Email)) {
		errs["email"] = "Please enter a valid email address"
	}

	if len(strings.TrimSpace(d.Phone)) < domain.MinPhoneLength {
		errs["phone"] = "Please enter a valid phone number"
	}

	if strings.TrimSpace(d.Address) == "" {
		errs["address"] = "Please enter your address"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
