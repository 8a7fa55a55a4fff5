package confirm_booking

import "errors"

var (
	// ErrPractitionerNotFound возвращается, когда практикующий не найден
	ErrPractitionerNotFound = errors.New("confirm_booking: practitioner not found")

	// ErrSlotTaken возвращается, когда ячейка занята конкурентным
	// бронированием - проигранная гонка за слот
	ErrSlotTaken = errors.New("confirm_booking: slot already taken")

	// ErrBookingNotFound возвращается при повторной оплате несуществующей записи
	ErrBookingNotFound = errors.New("confirm_booking: booking not found")

	// ErrPersistence возвращается, когда запись не удалось сохранить
	// Состояние не изменилось, пользователь может повторить попытку
	ErrPersistence = errors.New("confirm_booking: failed to persist booking")

	// ErrPaymentRetryable возвращается, когда после создания записи не удалось
	// получить ни approval-ссылку, ни fallback-подтверждение
	// Запись остается pending; оплату можно повторить без перевыбора времени
	ErrPaymentRetryable = errors.New("confirm_booking: payment failed, retry possible")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
