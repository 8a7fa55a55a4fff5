package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_StatusPredicates(t *testing.T) {
	tests := []struct {
		name        string
		status      PaymentStatus
		active      bool
		pending     bool
		confirmed   bool
		cancellable bool
	}{
		{name: "pending", status: StatusPending, active: true, pending: true, cancellable: true},
		{name: "confirmed", status: StatusConfirmed, active: true, confirmed: true, cancellable: true},
		{name: "cancelled", status: StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status}

			assert.Equal(t, tt.active, b.IsActive())
			assert.Equal(t, tt.pending, b.IsPending())
			assert.Equal(t, tt.confirmed, b.IsConfirmed())
			assert.Equal(t, tt.cancellable, b.CanBeCancelled())
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus("pending"))
	assert.True(t, IsValidStatus("confirmed"))
	assert.True(t, IsValidStatus("cancelled"))

	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("paid"))
	assert.False(t, IsValidStatus("Pending"))
}

func TestPractitioners_ByID(t *testing.T) {
	practitioners := Practitioners{
		{ID: "sandra", Name: "Sandra"},
		{ID: "brett", Name: "Brett"},
	}

	p, ok := practitioners.ByID("brett")
	assert.True(t, ok)
	assert.Equal(t, "Brett", p.Name)

	_, ok = practitioners.ByID("unknown")
	assert.False(t, ok)
}
