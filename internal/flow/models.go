package flow

import (
	"time"

	"github.com/intunemindset/IM-BookingService/pkg/types"
)

// Step шаг сценария бронирования
type Step string

const (
	// StepSelectingTime выбор даты и времени сеанса
	StepSelectingTime Step = "selecting_time"

	// StepEnteringDetails ввод контактных данных клиента
	StepEnteringDetails Step = "entering_details"

	// StepAwaitingPayment ожидание завершения оплаты
	StepAwaitingPayment Step = "awaiting_payment"

	// StepConfirmed бронирование подтверждено, сценарий завершен
	StepConfirmed Step = "confirmed"
)

// ContactDetails контактные данные клиента
type ContactDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Draft черновик бронирования, накапливаемый по шагам сценария
// Заполненные ранее поля переживают Back; очищается только Reset
type Draft struct {
	Date    time.Time       `json:"date,omitempty"`
	Time    types.TimeLabel `json:"time,omitempty"`
	Details ContactDetails  `json:"details"`

	// BookingID ID pending-записи после первой попытки оплаты
	// Непустое значение - повтор оплаты переиспользует запись
	BookingID string `json:"bookingId,omitempty"`

	// ApprovalURL последняя полученная approve-ссылка
	ApprovalURL string `json:"approvalUrl,omitempty"`
}

// FieldErrors ошибки валидации по полям: имя поля -> сообщение
// Ключи совпадают с json-тегами ContactDetails
type FieldErrors map[string]string

// PaymentResult исход шага оплаты
type PaymentResult struct {
	BookingID   string `json:"bookingId"`
	Confirmed   bool   `json:"confirmed"`
	ApprovalURL string `json:"approvalUrl,omitempty"`

	// FallbackReason причина подтверждения в обход платежного потока
	FallbackReason string `json:"fallbackReason,omitempty"`
}
