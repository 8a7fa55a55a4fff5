package payment_return

import (
	"context"

	bookingsService "github.com/intunemindset/IM-BookingService/internal/service/bookings"
	"github.com/intunemindset/IM-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	FinishPaymentReturn(ctx context.Context, bookingID string, kind bookingsService.PaymentReturnKind) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
