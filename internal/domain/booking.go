package domain

import (
	"time"

	"github.com/intunemindset/IM-BookingService/pkg/types"
)

// PaymentStatus represents the payment status of a booking
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusConfirmed PaymentStatus = "confirmed"
	StatusCancelled PaymentStatus = "cancelled"
)

// Booking represents a persisted appointment booking
// Триплет (Practitioner, BookingDate, BookingTime) уникален среди
// неотмененных записей - это базовый инвариант расписания
type Booking struct {
	ID           string // UUID
	Practitioner string
	BookingDate  time.Time
	BookingTime  types.TimeLabel

	// Контактные данные клиента
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string

	Amount   float64
	Currency string
	Status   PaymentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot (not cancelled)
func (b *Booking) IsActive() bool {
	for _, s := range ActiveStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// IsPending returns true if the booking awaits payment reconciliation
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// IsConfirmed returns true if the booking has been confirmed
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled by an operator
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// PractitionerBookingsFilter фильтр для получения бронирований практикующего
type PractitionerBookingsFilter struct {
	PractitionerID   string         // Обязательный параметр
	Date             *time.Time     // Фильтр по дате (опционально)
	Status           *PaymentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отмененные записи
}

// IsValidStatus проверяет, что строка является допустимым статусом оплаты
func IsValidStatus(s string) bool {
	switch PaymentStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}
