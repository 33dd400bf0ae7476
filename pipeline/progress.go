package pipeline

import (
	"log/slog"
	"sync"
)

// ProgressEvent is one stage/progress notification for a job. Events for a
// single job are published in stage order with monotonic non-decreasing
// percent.
type ProgressEvent struct {
	JobId   string `json:"job_id"`
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
	Percent int    `json:"percent"`
}

// Publisher receives progress events. Publishing is fire-and-forget: an
// implementation must not block the pipeline on a slow consumer.
type Publisher interface {
	Publish(event ProgressEvent)
}

// NoopPublisher discards all events.
type NoopPublisher struct{}

// Publish implements Publisher.
func (NoopPublisher) Publish(_ ProgressEvent) {}

// ChannelPublisher buffers events on a bounded channel for an external
// consumer. When the buffer is full the event is dropped with a logged
// warning rather than stalling the pipeline.
type ChannelPublisher struct {
	events chan ProgressEvent
	logger *slog.Logger

	closeOnce sync.Once
}

// NewChannelPublisher creates a publisher with the given buffer size.
func NewChannelPublisher(buffer int, logger *slog.Logger) *ChannelPublisher {
	if buffer < 1 {
		buffer = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChannelPublisher{
		events: make(chan ProgressEvent, buffer),
		logger: logger,
	}
}

// Publish implements Publisher. Never blocks.
func (p *ChannelPublisher) Publish(event ProgressEvent) {
	select {
	case p.events <- event:
	default:
		p.logger.Warn("progress buffer full, dropping event",
			"job_id", event.JobId, "stage", event.Stage, "percent", event.Percent)
	}
}

// Events returns the consumer side of the buffer.
func (p *ChannelPublisher) Events() <-chan ProgressEvent {
	return p.events
}

// Close closes the event channel. Publish must not be called after Close.
func (p *ChannelPublisher) Close() {
	p.closeOnce.Do(func() {
		close(p.events)
	})
}
