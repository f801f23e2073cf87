// Package scheduler provides delayed task processing backed by asynq:
// booking reminders are enqueued at confirmation time and delivered by the
// worker process shortly before the trip starts.
package scheduler

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TaskTypeBookingReminder is the asynq task type for pre-trip reminders.
const TaskTypeBookingReminder = "bookings:reminder"

// BookingReminderPayload identifies the booking to remind about. The
// outfitter id travels with the task so the worker resolves the booking
// tenant-scoped.
type BookingReminderPayload struct {
	BookingID   uuid.UUID `json:"bookingId"`
	OutfitterID uuid.UUID `json:"outfitterId"`
}

// NewBookingReminderTask builds the reminder task.
func NewBookingReminderTask(bookingID, outfitterID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(BookingReminderPayload{BookingID: bookingID, OutfitterID: outfitterID})
	if err != nil {
		return nil, fmt.Errorf("marshal reminder payload: %w", err)
	}
	return asynq.NewTask(TaskTypeBookingReminder, payload), nil
}
