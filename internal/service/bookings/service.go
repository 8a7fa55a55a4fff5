package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/intunemindset/IM-BookingService/internal/domain"
	bookingRepo "github.com/intunemindset/IM-BookingService/internal/infra/storage/booking"
	"github.com/intunemindset/IM-BookingService/internal/service/bookings/models"
)

// PaymentReturnKind тип внешнего возврата от платежного процессора
type PaymentReturnKind string

const (
	// ReturnSuccess возврат по ссылке booking_success - capture завершен
	ReturnSuccess PaymentReturnKind = "success"

	// ReturnCancelled возврат по ссылке booking_cancelled - плательщик отказался
	ReturnCancelled PaymentReturnKind = "cancelled"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	practitioners domain.Practitioners
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	practitioners domain.Practitioners,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		practitioners: practitioners,
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetPractitionerBookings получает бронирования практикующего с фильтрацией
// Поддерживает фильтрацию по дате, статусу и включению отменённых записей
//
// Примеры использования:
// - Все активные бронирования: GetPractitionerBookings(ctx, &GetPractitionerBookingsRequest{PractitionerID: "sandra"})
// - Бронирования на дату: указать Date
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeCancelled = true
func (s *Service) GetPractitionerBookings(ctx context.Context, req *models.GetPractitionerBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetPractitionerBookings: fetching bookings for practitioner=%s", req.PractitionerID)
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	if _, ok := s.practitioners.ByID(req.PractitionerID); !ok {
		s.logger.Warn("GetPractitionerBookings: practitioner id=%s not found", req.PractitionerID)
		return nil, ErrPractitionerNotFound
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetPractitionerBookings: invalid filter for practitioner=%s: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByPractitionerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetPractitionerBookings: repository error for practitioner=%s: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: GetPractitionerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPractitionerBookings: successfully fetched %d bookings for practitioner=%s",
		len(bookings), req.PractitionerID)
	return models.FromDomainBookingList(bookings), nil
}

// FinishPaymentReturn обрабатывает внешний возврат от платежного процессора
//
// booking_success подтверждает запись. Повторный заход по той же ссылке
// идемпотентен: уже подтвержденная запись не меняется.
// booking_cancelled оставляет запись pending - плательщик может вернуться
// и повторить оплату, ячейка за ним сохранена
func (s *Service) FinishPaymentReturn(ctx context.Context, bookingID string, kind PaymentReturnKind) (*models.BookingResponse, error) {
	s.logger.Info("FinishPaymentReturn: booking id=%s, kind=%s", bookingID, kind)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("FinishPaymentReturn: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("FinishPaymentReturn: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: FinishPaymentReturn - repository error: %v", ErrInternal, err)
	}

	switch kind {
	case ReturnSuccess:
		if booking.IsConfirmed() {
			s.logger.Info("FinishPaymentReturn: booking id=%s already confirmed", bookingID)
			return models.FromDomainBooking(booking), nil
		}

		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusConfirmed); err != nil {
			s.logger.Error("FinishPaymentReturn: failed to confirm booking id=%s: %v", bookingID, err)
			return nil, fmt.Errorf("%w: FinishPaymentReturn - repository error: %v", ErrInternal, err)
		}
		booking.Status = domain.StatusConfirmed

		s.logger.Info("FinishPaymentReturn: booking id=%s confirmed", bookingID)
		return models.FromDomainBooking(booking), nil

	case ReturnCancelled:
		// Запись остается pending: отказ от оплаты - не отмена бронирования
		s.logger.Info("FinishPaymentReturn: payment declined, booking id=%s stays %s", bookingID, booking.Status)
		return models.FromDomainBooking(booking), nil

	default:
		s.logger.Warn("FinishPaymentReturn: unknown return kind=%s for booking id=%s", kind, bookingID)
		return nil, fmt.Errorf("%w: unknown return kind", ErrInvalidInput)
	}
}

// Cancel отменяет бронирование
// Операторская операция: освобождает ячейку для повторного бронирования
func (s *Service) Cancel(ctx context.Context, bookingID string) error {
	s.logger.Info("Cancel: cancelling booking id=%s", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusCancelled); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)
	return nil
}
