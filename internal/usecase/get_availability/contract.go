package get_availability

import (
	"context"
	"time"

	"github.com/intunemindset/IM-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetTakenTimes получает подписи занятых (неотмененных) слотов на дату
	GetTakenTimes(ctx context.Context, practitionerID string, date time.Time) ([]types.TimeLabel, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
