package confirm_booking

import (
	"time"

	"github.com/intunemindset/IM-BookingService/pkg/types"
)

// Outcome исход оркестрации платежа
// Явный тегированный результат вместо управления потоком через исключения:
// ветка fallback-подтверждения - осознанное решение, а не побочный эффект
type Outcome string

const (
	// OutcomeApproved процессор вернул approval-ссылку; запись остается
	// pending до завершения capture внешним возвратом
	OutcomeApproved Outcome = "approved"

	// OutcomeConfirmed запись подтверждена: либо capture не требуется
	// (fallback на ручную оплату), либо сверка уже прошла
	OutcomeConfirmed Outcome = "confirmed"
)

// Request модель запроса на создание и оплату бронирования
type Request struct {
	PractitionerID string          // ID практикующего
	Date           time.Time       // Дата бронирования (без времени)
	Time           types.TimeLabel // Подпись слота (например, "10:00 AM")

	// Контактные данные клиента
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string

	// BookingID ID существующей pending-записи при повторной оплате
	// Пустое значение - первая попытка, запись будет создана
	BookingID string
}

// Response модель ответа с исходом оркестрации
type Response struct {
	BookingID   string  // ID записи (созданной или переиспользованной)
	Outcome     Outcome // Исход: approved или confirmed
	ApprovalURL string  // Ссылка для approve-редиректа (только для approved)

	// FallbackReason причина fallback-подтверждения, для логов и сверки
	// Пустое значение - подтверждение через полноценный платежный поток
	FallbackReason string
}
