package get_practitioner_bookings

import (
	"context"

	"github.com/intunemindset/IM-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetPractitionerBookings(ctx context.Context, req *models.GetPractitionerBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
