package types

import (
	"errors"
	"fmt"
	"time"
)

// LabelFormat формат подписи слота в 12-часовом формате (например, "9:00 AM")
const LabelFormat = "3:04 PM"

var (
	// ErrInvalidTimeLabel возвращается при некорректном формате подписи времени
	ErrInvalidTimeLabel = errors.New("types: invalid time label format")
)

// TimeLabel подпись временного слота в 12-часовом формате ("9:00 AM", "4:00 PM").
// Слоты идентифицируются подписью, а не моментом времени - это закрытое
// множество фиксированных значений, владельцем которого является domain.
type TimeLabel string

// NewTimeLabelFromString создает TimeLabel из строки с валидацией формата
func NewTimeLabelFromString(s string) (TimeLabel, error) {
	label := TimeLabel(s)
	if err := label.Validate(); err != nil {
		return "", err
	}
	return label, nil
}

// NewTimeLabel создает TimeLabel из момента времени
func NewTimeLabel(t time.Time) TimeLabel {
	return TimeLabel(t.Format(LabelFormat))
}

// Validate проверяет, что подпись разбирается в формате "3:04 PM"
func (l TimeLabel) Validate() error {
	if _, err := time.Parse(LabelFormat, string(l)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeLabel, string(l))
	}
	return nil
}

// IsZero проверяет, что подпись не задана
func (l TimeLabel) IsZero() bool {
	return l == ""
}

// Minutes возвращает количество минут с начала суток
// Для невалидной подписи возвращает ошибку
func (l TimeLabel) Minutes() (int, error) {
	t, err := time.Parse(LabelFormat, string(l))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeLabel, string(l))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// IsBefore проверяет, что подпись строго раньше other
// Невалидные подписи считаются несравнимыми (false)
func (l TimeLabel) IsBefore(other TimeLabel) bool {
	a, err := l.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter проверяет, что подпись строго позже other
func (l TimeLabel) IsAfter(other TimeLabel) bool {
	return other.IsBefore(l)
}

// String возвращает строковое представление подписи
func (l TimeLabel) String() string {
	return string(l)
}
