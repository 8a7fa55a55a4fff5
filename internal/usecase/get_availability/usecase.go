package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/intunemindset/IM-BookingService/internal/domain"
	"github.com/intunemindset/IM-BookingService/pkg/types"
)

// UseCase use case получения доступности слотов на дату
// Возвращает полное упорядоченное множество дневных слотов с флагом
// занятости. Результаты не кешируются: занятость - моментальный снимок
// и должна отражать конкурентные бронирования других пользователей
type UseCase struct {
	bookingRepo   BookingRepository
	practitioners domain.Practitioners
	location      *time.Location
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	practitioners domain.Practitioners,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		practitioners: practitioners,
		location:      location,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступности
// Операция только читает; при недоступности хранилища возвращает
// ErrAvailabilityUnknown - вызывающий код не должен пропускать
// пользователя дальше с неразрешенной занятостью
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: practitioner=%s, date=%s",
		req.PractitionerID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование практикующего
	if _, ok := uc.practitioners.ByID(req.PractitionerID); !ok {
		uc.logger.Warn("GetAvailability: practitioner id=%s not found", req.PractitionerID)
		return nil, ErrPractitionerNotFound
	}

	// 3. Проверяем выбираемость даты в таймзоне практики
	now := uc.timeProvider.Now().In(uc.location)
	if isWeekend(req.Date) || isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailability: date %s is not selectable (weekend or past)",
			req.Date.Format(domain.DateFormat))
		return nil, ErrDateNotSelectable
	}

	// 4. Получаем занятые слоты из хранилища
	takenTimes, err := uc.bookingRepo.GetTakenTimes(ctx, req.PractitionerID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get taken times: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrAvailabilityUnknown, err)
	}

	// 5. Размечаем каноническое множество слотов
	slots := markTakenSlots(domain.DailySlotLabels(), takenTimes)

	uc.logger.Info("GetAvailability: practitioner=%s, date=%s, taken=%d/%d",
		req.PractitionerID, req.Date.Format(domain.DateFormat), len(takenTimes), len(slots))

	return &Response{
		PractitionerID: req.PractitionerID,
		Date:           req.Date,
		Slots:          slots,
	}, nil
}

// markTakenSlots размечает полное множество слотов флагами занятости
// Подписи вне канонического множества игнорируются
func markTakenSlots(labels []types.TimeLabel, taken []types.TimeLabel) []Slot {
	takenSet := make(map[types.TimeLabel]struct{}, len(taken))
	for _, t := range taken {
		takenSet[t] = struct{}{}
	}

	slots := make([]Slot, len(labels))
	for i, label := range labels {
		_, isTaken := takenSet[label]
		slots[i] = Slot{Label: label, Taken: isTaken}
	}

	return slots
}
