package flow

import "errors"

var (
	// ErrInvalidTransition возвращается, когда событие недопустимо в текущем шаге
	ErrInvalidTransition = errors.New("flow: invalid transition for current step")

	// ErrInvalidSlotLabel возвращается при выборе неизвестной подписи слота
	ErrInvalidSlotLabel = errors.New("flow: invalid slot label")

	// ErrNoDateSelected возвращается при выборе времени без даты
	ErrNoDateSelected = errors.New("flow: no date selected")

	// ErrValidationFailed возвращается, когда контактные данные не прошли
	// полевую валидацию; детали - в FieldErrors
	ErrValidationFailed = errors.New("flow: contact details validation failed")

	// ErrNoPractitioner возвращается, когда шаг требует выбранного практикующего
	ErrNoPractitioner = errors.New("flow: no practitioner selected")
)
