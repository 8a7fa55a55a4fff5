package get_availability

import "errors"

var (
	// ErrPractitionerNotFound возвращается, когда практикующий не найден
	ErrPractitionerNotFound = errors.New("get_availability: practitioner not found")

	// ErrDateNotSelectable возвращается для выходных и прошедших дат
	// Отклоняется на границе запроса, а не как ошибка хранилища
	ErrDateNotSelectable = errors.New("get_availability: date is not selectable")

	// ErrAvailabilityUnknown возвращается, когда хранилище недоступно
	// Занятость неизвестна - нельзя ложно сообщать, что все слоты свободны
	ErrAvailabilityUnknown = errors.New("get_availability: availability unknown")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")
)
