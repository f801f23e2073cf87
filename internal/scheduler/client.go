package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"outfitter_backend/platform/config"
)

// Client enqueues scheduled tasks.
type Client struct {
	client *asynq.Client
	queue  string
}

// NewClient creates an asynq client from the scheduler configuration.
func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	opt, err := asynq.ParseRedisURI(cfg.GetRedisURL())
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Client{client: asynq.NewClient(opt), queue: cfg.GetAsynqQueueName()}, nil
}

// ScheduleBookingReminder enqueues a reminder to run at runAt.
func (c *Client) ScheduleBookingReminder(_ context.Context, bookingID, outfitterID uuid.UUID, runAt time.Time) error {
	task, err := NewBookingReminderTask(bookingID, outfitterID)
	if err != nil {
		return err
	}
	if _, err := c.client.Enqueue(task, asynq.ProcessAt(runAt), asynq.Queue(c.queue)); err != nil {
		return fmt.Errorf("enqueue booking reminder: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// NoopScheduler satisfies the scheduling dependency when Redis is not
// configured; reminders are silently skipped.
type NoopScheduler struct{}

// ScheduleBookingReminder does nothing.
func (NoopScheduler) ScheduleBookingReminder(context.Context, uuid.UUID, uuid.UUID, time.Time) error {
	return nil
}
