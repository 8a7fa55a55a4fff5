package bookings

import (
	"context"
	"time"

	"github.com/intunemindset/IM-BookingService/internal/domain"
	"github.com/intunemindset/IM-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetTakenTimes(ctx context.Context, practitionerID string, date time.Time) ([]types.TimeLabel, error)
	GetByPractitionerWithFilter(ctx context.Context, filter domain.PractitionerBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
