package paypal

import "errors"

var (
	// ErrNotConfigured возвращается, когда креденшелы процессора не заданы
	// Это валидное состояние: вызывающий код уходит в fallback-подтверждение
	ErrNotConfigured = errors.New("paypal client: credentials not configured")

	// ErrUnavailable возвращается, когда процессор недоступен
	// (сетевая ошибка, timeout, неожиданный статус-код)
	ErrUnavailable = errors.New("paypal client: processor unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе процессора
	ErrInvalidResponse = errors.New("paypal client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paypal client: internal error")
)
