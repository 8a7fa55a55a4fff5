package models

import (
	"errors"
	"time"

	"github.com/intunemindset/IM-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid payment status")
)

// Request модели

// GetPractitionerBookingsRequest запрос на получение бронирований практикующего
type GetPractitionerBookingsRequest struct {
	PractitionerID   string     `json:"practitionerId"`
	Date             *time.Time `json:"date,omitempty"`             // Фильтр по дате (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetPractitionerBookingsRequest) ToDomainFilter() (domain.PractitionerBookingsFilter, error) {
	filter := domain.PractitionerBookingsFilter{
		PractitionerID:   r.PractitionerID,
		Date:             r.Date,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainPaymentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           string `json:"id"`
	Practitioner string `json:"practitioner"`
	BookingDate  string `json:"bookingDate"` // "2026-03-09"
	BookingTime  string `json:"bookingTime"` // "10:00 AM"

	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerAddress string `json:"customerAddress"`

	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Status   string  `json:"paymentStatus"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		Practitioner:    b.Practitioner,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		BookingTime:     b.BookingTime.String(),
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		CustomerAddress: b.CustomerAddress,
		Amount:          b.Amount,
		Currency:        b.Currency,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus с валидацией
func ToDomainPaymentStatus(status string) (domain.PaymentStatus, error) {
	if !domain.IsValidStatus(status) {
		return "", ErrInvalidStatus
	}

	return domain.PaymentStatus(status), nil
}
