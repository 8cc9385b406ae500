// Package medalert holds the medication-reminder domain entities and the
// page-local cache that mirrors the last successful fetch.
package medalert

import (
	"fmt"
	"regexp"
	"strings"
)

// Category groups reminders, e.g. "Blood Pressure" or "Vitamins".
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// TimeSlot is a clock time in 12-hour form, e.g. {09, 00, AM}.
type TimeSlot struct {
	Hour   string `json:"hour"`
	Minute string `json:"minute"`
	Period string `json:"period"`
}

// String renders the slot as "09:00 AM".
func (t TimeSlot) String() string {
	return fmt.Sprintf("%s:%s %s", t.Hour, t.Minute, t.Period)
}

var timeSlotPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(AM|PM)$`)

// ParseTimeSlot parses "9:00 AM" (case-insensitive period) into a TimeSlot,
// zero-padding the hour.
func ParseTimeSlot(s string) (TimeSlot, bool) {
	match := timeSlotPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if match == nil {
		return TimeSlot{}, false
	}

	hour := match[1]
	if len(hour) == 1 {
		hour = "0" + hour
	}
	return TimeSlot{Hour: hour, Minute: match[2], Period: match[3]}, true
}

// ParseTimeSlots parses a comma-separated list of slots, skipping entries
// that do not match the expected shape.
func ParseTimeSlots(s string) []TimeSlot {
	var slots []TimeSlot
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		if slot, ok := ParseTimeSlot(part); ok {
			slots = append(slots, slot)
		}
	}
	return slots
}

// Reminder is a single medication alert. It references an existing Category;
// referential consistency is delegated to the backend.
type Reminder struct {
	ID           string     `json:"id"`
	MedicineName string     `json:"medicineName"`
	Dosage       string     `json:"dosage"`
	Frequency    string     `json:"frequency"`
	StartDate    string     `json:"startDate"`
	EndDate      string     `json:"endDate,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	Form         string     `json:"form"`
	TimeSlot     []TimeSlot `json:"timeSlot"`
	IsActive     bool       `json:"isActive"`
	IsPaused     bool       `json:"isPaused"`
	Category     Category   `json:"category"`
}

// FormatTimeSlots renders the reminder's slots as "09:00 AM, 08:00 PM".
// An empty slice renders as "" so views can omit the line entirely.
func (r Reminder) FormatTimeSlots() string {
	if len(r.TimeSlot) == 0 {
		return ""
	}
	parts := make([]string, len(r.TimeSlot))
	for i, slot := range r.TimeSlot {
		parts[i] = slot.String()
	}
	return strings.Join(parts, ", ")
}

// CategoryInput is the create/update payload for a category.
type CategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// ReminderInput is the create/update payload for a reminder.
type ReminderInput struct {
	CategoryID   string     `json:"categoryId" validate:"required"`
	MedicineName string     `json:"medicineName" validate:"required"`
	Dosage       string     `json:"dosage" validate:"required"`
	Frequency    string     `json:"frequency" validate:"required"`
	StartDate    string     `json:"startDate" validate:"required"`
	EndDate      string     `json:"endDate,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	Form         string     `json:"form" validate:"required"`
	TimeSlot     []TimeSlot `json:"timeSlot"`
}
