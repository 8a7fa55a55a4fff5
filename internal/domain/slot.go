package domain

import "github.com/intunemindset/IM-BookingService/pkg/types"

// dailySlotLabels закрытое упорядоченное множество дневных слотов.
// Слоты фиксированы для всех практикующих и дней; идентифицируются
// структурно парой (дата, подпись), собственного ID у слота нет.
var dailySlotLabels = []types.TimeLabel{
	"9:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"1:00 PM",
	"2:00 PM",
	"3:00 PM",
	"4:00 PM",
}

// DailySlotLabels возвращает копию канонического множества слотов
// в порядке следования в течение дня
func DailySlotLabels() []types.TimeLabel {
	labels := make([]types.TimeLabel, len(dailySlotLabels))
	copy(labels, dailySlotLabels)
	return labels
}

// IsValidSlotLabel проверяет, что подпись входит в каноническое множество
func IsValidSlotLabel(label types.TimeLabel) bool {
	for _, l := range dailySlotLabels {
		if l == label {
			return true
		}
	}
	return false
}

// Slot represents one daily time slot together with its occupancy flag
type Slot struct {
	Label types.TimeLabel
	Taken bool
}
