package create_booking

import (
	"time"

	"github.com/intunemindset/IM-BookingService/internal/domain"
	confirmBooking "github.com/intunemindset/IM-BookingService/internal/usecase/confirm_booking"
	"github.com/intunemindset/IM-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PractitionerID string `json:"practitionerId"`
	Date           string `json:"date"` // "2026-03-09"
	Time           string `json:"time"` // "10:00 AM"

	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerAddress string `json:"customerAddress"`

	// BookingID ID существующей записи при повторной оплате
	BookingID string `json:"bookingId,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	BookingID   string `json:"bookingId"`
	Status      string `json:"status"` // "approved" или "confirmed"
	ApprovalURL string `json:"approvalUrl,omitempty"`
}

// PaymentRetryResponse тело ответа 502: оплата не прошла, но pending-запись
// сохранена - клиент повторяет запрос с этим bookingId, не выбирая время заново
type PaymentRetryResponse struct {
	Error     string `json:"error"`
	BookingID string `json:"bookingId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*confirmBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &confirmBooking.Request{
		PractitionerID:  r.PractitionerID,
		Date:            date,
		Time:            types.TimeLabel(r.Time),
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		CustomerAddress: r.CustomerAddress,
		BookingID:       r.BookingID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingID:   resp.BookingID,
		Status:      string(resp.Outcome),
		ApprovalURL: resp.ApprovalURL,
	}
}
