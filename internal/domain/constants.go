package domain

// Default reference data values
const (
	DefaultSessionPrice           = 110.00
	DefaultCurrency               = "AUD"
	DefaultSessionDurationMinutes = 60
)

// Business validation constants
const (
	MinPhoneLength = 8
	MaxFieldLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultTimezone таймзона практики
// Выбор даты (прошлое/выходные) оценивается в ней, а не в UTC
const DefaultTimezone = "Australia/Sydney"

// InactiveStatuses список статусов, не занимающих слот
// Используется при подсчете занятости слотов
var InactiveStatuses = []PaymentStatus{
	StatusCancelled,
}

// ActiveStatuses список статусов, занимающих слот
var ActiveStatuses = []PaymentStatus{
	StatusPending,
	StatusConfirmed,
}
