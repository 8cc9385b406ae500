package medalert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlotString(t *testing.T) {
	slot := TimeSlot{Hour: "09", Minute: "00", Period: "AM"}
	assert.Equal(t, "09:00 AM", slot.String())
}

func TestParseTimeSlot(t *testing.T) {
	tests := []struct {
		in   string
		want TimeSlot
		ok   bool
	}{
		{"09:00 AM", TimeSlot{"09", "00", "AM"}, true},
		{"9:00 am", TimeSlot{"09", "00", "AM"}, true},
		{"12:30PM", TimeSlot{"12", "30", "PM"}, true},
		{"  8:15 pm ", TimeSlot{"08", "15", "PM"}, true},
		{"25:00", TimeSlot{}, false},
		{"morning", TimeSlot{}, false},
		{"", TimeSlot{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTimeSlot(tt.in)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseTimeSlots(t *testing.T) {
	slots := ParseTimeSlots("09:00 AM, 08:00 PM, bogus")
	require.Len(t, slots, 2)
	assert.Equal(t, "09:00 AM", slots[0].String())
	assert.Equal(t, "08:00 PM", slots[1].String())

	assert.Empty(t, ParseTimeSlots(""))
}

func TestReminderFormatTimeSlots(t *testing.T) {
	r := Reminder{}
	assert.Empty(t, r.FormatTimeSlots(), "no slots renders no line")

	r.TimeSlot = []TimeSlot{{Hour: "09", Minute: "00", Period: "AM"}}
	assert.Equal(t, "09:00 AM", r.FormatTimeSlots())

	r.TimeSlot = append(r.TimeSlot, TimeSlot{Hour: "08", Minute: "00", Period: "PM"})
	assert.Equal(t, "09:00 AM, 08:00 PM", r.FormatTimeSlots())
}
