package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/intunemindset/IM-BookingService/internal/domain"
	"github.com/intunemindset/IM-BookingService/internal/usecase/confirm_booking"
	"github.com/intunemindset/IM-BookingService/pkg/types"
)

// Machine пошаговый сценарий бронирования для одной клиентской сессии
//
// Шаги идут строго по порядку: выбор времени, ввод контактов, оплата,
// подтверждение. Back возвращает ровно на один шаг назад, сохраняя
// черновик; Reset и смена практикующего начинают сценарий заново
type Machine struct {
	mu sync.Mutex

	practitionerID string
	step           Step
	draft          Draft

	orchestrator PaymentOrchestrator
	logger       Logger
}

// NewMachine создает новый сценарий для указанного практикующего
func NewMachine(practitionerID string, orchestrator PaymentOrchestrator, logger Logger) *Machine {
	return &Machine{
		practitionerID: practitionerID,
		step:           StepSelectingTime,
		orchestrator:   orchestrator,
		logger:         logger,
	}
}

// Step возвращает текущий шаг сценария
func (m *Machine) Step() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

// PractitionerID возвращает выбранного практикующего
func (m *Machine) PractitionerID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.practitionerID
}

// Draft возвращает копию текущего черновика
func (m *Machine) Draft() Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// SelectTime фиксирует дату и время сеанса
// Допустим только на шаге выбора времени
func (m *Machine) SelectTime(date time.Time, label types.TimeLabel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.step != StepSelectingTime {
		return fmt.Errorf("%w: SelectTime at step %s", ErrInvalidTransition, m.step)
	}

	if date.IsZero() {
		return ErrNoDateSelected
	}

	if !domain.IsValidSlotLabel(label) {
		return fmt.Errorf("%w: %q", ErrInvalidSlotLabel, label)
	}

	m.draft.Date = date
	m.draft.Time = label
	m.step = StepEnteringDetails

	m.logger.Info("flow: practitioner=%s time selected: %s %s",
		m.practitionerID, date.Format(domain.DateFormat), label)
	return nil
}

// SubmitDetails принимает контактные данные клиента
// При ошибках валидации черновик не меняется, шаг не двигается;
// детали по полям - во втором возвращаемом значении
func (m *Machine) SubmitDetails(details ContactDetails) (FieldErrors, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.step != StepEnteringDetails {
		return nil, fmt.Errorf("%w: SubmitDetails at step %s", ErrInvalidTransition, m.step)
	}

	if fieldErrs := validateDetails(details); fieldErrs != nil {
		m.logger.Warn("flow: practitioner=%s details rejected: %d field(s) invalid",
			m.practitionerID, len(fieldErrs))
		return fieldErrs, ErrValidationFailed
	}

	m.draft.Details = details
	m.step = StepAwaitingPayment

	m.logger.Info("flow: practitioner=%s details accepted", m.practitionerID)
	return nil, nil
}

// SubmitPayment запускает создание записи и оплату
//
// Подтвержденный исход завершает сценарий. Approval-ссылка оставляет шаг
// оплаты активным: подтверждение придет внешним возвратом (MarkConfirmed).
// Проигранная гонка за слот возвращает сценарий к выбору времени,
// контактные данные при этом сохраняются
func (m *Machine) SubmitPayment(ctx context.Context) (*PaymentResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.step != StepAwaitingPayment {
		return nil, fmt.Errorf("%w: SubmitPayment at step %s", ErrInvalidTransition, m.step)
	}

	resp, err := m.orchestrator.Execute(ctx, &confirm_booking.Request{
		PractitionerID:  m.practitionerID,
		Date:            m.draft.Date,
		Time:            m.draft.Time,
		CustomerName:    m.draft.Details.Name,
		CustomerEmail:   m.draft.Details.Email,
		CustomerPhone:   m.draft.Details.Phone,
		CustomerAddress: m.draft.Details.Address,
		BookingID:       m.draft.BookingID,
	})
	if err != nil {
		if errors.Is(err, confirm_booking.ErrSlotTaken) {
			// Ячейку забрали конкурентно: время надо выбрать заново
			m.draft.Date = time.Time{}
			m.draft.Time = ""
			m.draft.BookingID = ""
			m.draft.ApprovalURL = ""
			m.step = StepSelectingTime
			m.logger.Warn("flow: practitioner=%s slot lost to concurrent booking", m.practitionerID)
			return nil, err
		}

		// Retryable-ошибка приходит вместе с ID уже созданной pending-записи;
		// повторный SubmitPayment пойдет с ним и переиспользует запись
		if resp != nil && resp.BookingID != "" {
			m.draft.BookingID = resp.BookingID
		}

		m.logger.Error("flow: practitioner=%s payment step failed: %v", m.practitionerID, err)
		return nil, err
	}

	m.draft.BookingID = resp.BookingID
	m.draft.ApprovalURL = resp.ApprovalURL

	if resp.Outcome == confirm_booking.OutcomeConfirmed {
		m.step = StepConfirmed
		m.logger.Info("flow: practitioner=%s booking id=%s confirmed", m.practitionerID, resp.BookingID)
		return &PaymentResult{
			BookingID:      resp.BookingID,
			Confirmed:      true,
			FallbackReason: resp.FallbackReason,
		}, nil
	}

	m.logger.Info("flow: practitioner=%s booking id=%s awaiting approval", m.practitionerID, resp.BookingID)
	return &PaymentResult{
		BookingID:   resp.BookingID,
		ApprovalURL: resp.ApprovalURL,
	}, nil
}

// MarkConfirmed завершает сценарий после внешнего возврата от процессора
func (m *Machine) MarkConfirmed() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.step != StepAwaitingPayment {
		return fmt.Errorf("%w: MarkConfirmed at step %s", ErrInvalidTransition, m.step)
	}

	m.step = StepConfirmed
	m.logger.Info("flow: practitioner=%s booking id=%s confirmed by payment return",
		m.practitionerID, m.draft.BookingID)
	return nil
}

// Back возвращает сценарий на один шаг назад, сохраняя черновик
// С первого шага и из завершенного сценария возврата нет
func (m *Machine) Back() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.step {
	case StepEnteringDetails:
		m.step = StepSelectingTime
	case StepAwaitingPayment:
		m.step = StepEnteringDetails
	default:
		return fmt.Errorf("%w: Back at step %s", ErrInvalidTransition, m.step)
	}

	m.logger.Info("flow: practitioner=%s stepped back to %s", m.practitionerID, m.step)
	return nil
}

// Reset начинает сценарий заново с чистым черновиком
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.draft = Draft{}
	m.step = StepSelectingTime
	m.logger.Info("flow: practitioner=%s flow reset", m.practitionerID)
}

// SwitchPractitioner меняет практикующего и начинает сценарий заново
// Частичный черновик не переносится: расписания и цены у практикующих свои
func (m *Machine) SwitchPractitioner(practitionerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if practitionerID == "" {
		return ErrNoPractitioner
	}

	m.practitionerID = practitionerID
	m.draft = Draft{}
	m.step = StepSelectingTime
	m.logger.Info("flow: switched to practitioner=%s, flow reset", practitionerID)
	return nil
}
