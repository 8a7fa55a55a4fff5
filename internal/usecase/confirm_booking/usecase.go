package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/intunemindset/IM-BookingService/internal/domain"
	bookingRepo "github.com/intunemindset/IM-BookingService/internal/infra/storage/booking"
	"github.com/intunemindset/IM-BookingService/internal/integrations/paypal"
)

// UseCase use case создания и оплаты бронирования
//
// Порядок принципиален: pending-запись создается ДО попытки оплаты,
// чтобы было с чем сверять любой исход платежного шага. Брошенная оплата
// оставляет восстановимую pending-строку; ее уборка - операционная задача,
// не часть этого потока
type UseCase struct {
	bookingRepo   BookingRepository
	gateway       PaymentGateway
	practitioners domain.Practitioners
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	gateway PaymentGateway,
	practitioners domain.Practitioners,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		gateway:       gateway,
		practitioners: practitioners,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute выполняет создание записи и оркестрацию платежа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: practitioner=%s, date=%s, time=%s, retry=%t",
		req.PractitionerID, req.Date.Format(domain.DateFormat), req.Time, req.BookingID != "")

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем справочные данные практикующего
	practitioner, ok := uc.practitioners.ByID(req.PractitionerID)
	if !ok {
		uc.logger.Warn("ConfirmBooking: practitioner id=%s not found", req.PractitionerID)
		return nil, ErrPractitionerNotFound
	}

	// 3. Получаем pending-запись: создаем новую или переиспользуем
	// существующую при повторной попытке оплаты
	record, err := uc.resolveRecord(ctx, req, practitioner)
	if err != nil {
		return nil, err
	}

	// Запись уже подтверждена (повторный сабмит после успеха) - идемпотентный выход
	if record.IsConfirmed() {
		uc.logger.Info("ConfirmBooking: booking id=%s already confirmed", record.ID)
		return &Response{BookingID: record.ID, Outcome: OutcomeConfirmed}, nil
	}

	// 4. Пытаемся создать платежный ордер
	order, err := uc.gateway.CreateOrder(ctx, &paypal.OrderRequest{
		BookingID:     record.ID,
		Amount:        fmt.Sprintf("%.2f", record.Amount),
		Currency:      record.Currency,
		Description:   fmt.Sprintf("Therapy session with %s", practitioner.Name),
		CustomerEmail: record.CustomerEmail,
		CustomerName:  record.CustomerName,
	})

	if err != nil {
		// Процессор не настроен или недоступен - fallback-подтверждение.
		// Практика не должна терять подтвержденный слот из-за платежного
		// инструментария; финансовая сверка происходит вне системы
		return uc.confirmFallback(ctx, record.ID, err.Error())
	}

	// 5. Есть actionable-ссылка: отдаем ее неподтвержденной, запись
	// остается pending до внешнего возврата (booking_success)
	if order.ApprovalURL != "" {
		uc.logger.Info("ConfirmBooking: booking id=%s awaiting approval, order_id=%s",
			record.ID, order.OrderID)
		return &Response{
			BookingID:   record.ID,
			Outcome:     OutcomeApproved,
			ApprovalURL: order.ApprovalURL,
		}, nil
	}

	// Процессор ответил без approval-ссылки - подтверждаем напрямую
	return uc.confirmFallback(ctx, record.ID, "processor returned no approval url")
}

// resolveRecord создает pending-запись или загружает существующую при retry
func (uc *UseCase) resolveRecord(ctx context.Context, req *Request, practitioner domain.Practitioner) (*domain.Booking, error) {
	if req.BookingID != "" {
		record, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ConfirmBooking: retry for unknown booking id=%s", req.BookingID)
				return nil, ErrBookingNotFound
			}
			uc.logger.Error("ConfirmBooking: failed to load booking id=%s: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: failed to load booking: %v", ErrPersistence, err)
		}
		return record, nil
	}

	booking := &domain.Booking{
		Practitioner:    req.PractitionerID,
		BookingDate:     req.Date,
		BookingTime:     req.Time,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Amount:          practitioner.SessionPrice,
		Currency:        practitioner.Currency,
		Status:          domain.StatusPending,
	}

	// Проверка занятости и вставка выполняются в сериализуемой транзакции;
	// частичный уникальный индекс - окончательный арбитр гонки
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		taken, err := uc.bookingRepo.GetTakenTimes(txCtx, req.PractitionerID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to check slot occupancy: %v", ErrPersistence, err)
		}

		for _, t := range taken {
			if t == req.Time {
				return ErrSlotTaken
			}
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrPersistence, err)
		}

		booking = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			uc.logger.Warn("ConfirmBooking: slot taken: practitioner=%s, date=%s, time=%s",
				req.PractitionerID, req.Date.Format(domain.DateFormat), req.Time)
			return nil, ErrSlotTaken
		}
		uc.logger.Error("ConfirmBooking: failed to create pending record: %v", err)
		if errors.Is(err, ErrPersistence) {
			return nil, err
		}
		// Ошибка менеджера транзакций (begin/commit, в том числе
		// serialization conflict) - тоже проблема хранилища
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrPersistence, err)
	}

	uc.logger.Info("ConfirmBooking: pending record created: booking_id=%s", booking.ID)
	return booking, nil
}

// confirmFallback подтверждает запись без успешного внешнего capture
// Ошибка самого подтверждения отдается как retryable: запись остается
// pending, пользователь может повторить оплату без перевыбора времени.
// BookingID в ответе заполняется и при ошибке - без него повтор уперся бы
// в собственную pending-запись как в занятый слот
func (uc *UseCase) confirmFallback(ctx context.Context, bookingID, reason string) (*Response, error) {
	uc.logger.Warn("ConfirmBooking: fallback confirmation for booking id=%s: %s", bookingID, reason)

	if err := uc.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusConfirmed); err != nil {
		uc.logger.Error("ConfirmBooking: fallback confirmation failed for booking id=%s: %v", bookingID, err)
		return &Response{BookingID: bookingID},
			fmt.Errorf("%w: booking_id=%s: %v", ErrPaymentRetryable, bookingID, err)
	}

	uc.logger.Info("ConfirmBooking: booking id=%s confirmed via fallback", bookingID)

	return &Response{
		BookingID:      bookingID,
		Outcome:        OutcomeConfirmed,
		FallbackReason: reason,
	}, nil
}
