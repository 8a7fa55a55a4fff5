package confirm_booking

import (
	"context"
	"time"

	"github.com/intunemindset/IM-BookingService/internal/domain"
	"github.com/intunemindset/IM-BookingService/internal/integrations/paypal"
	"github.com/intunemindset/IM-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetTakenTimes(ctx context.Context, practitionerID string, date time.Time) ([]types.TimeLabel, error)
	UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error
}

// PaymentGateway интерфейс платежного шлюза
// Создает ордер на точную сумму, тегированный ID бронирования
type PaymentGateway interface {
	CreateOrder(ctx context.Context, req *paypal.OrderRequest) (*paypal.OrderResult, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
