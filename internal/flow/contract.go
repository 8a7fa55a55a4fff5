package flow

import (
	"context"

	"github.com/intunemindset/IM-BookingService/internal/usecase/confirm_booking"
)

// PaymentOrchestrator интерфейс оркестратора создания и оплаты бронирования
type PaymentOrchestrator interface {
	Execute(ctx context.Context, req *confirm_booking.Request) (*confirm_booking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
