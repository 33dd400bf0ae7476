package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelPublisher(t *testing.T) {
	t.Run("buffers events for the consumer", func(t *testing.T) {
		publisher := NewChannelPublisher(4, nil)
		defer publisher.Close()

		publisher.Publish(ProgressEvent{JobId: "job-1", Stage: StageReceived, Percent: 5})
		publisher.Publish(ProgressEvent{JobId: "job-1", Stage: StageMatching, Percent: 30})

		first := <-publisher.Events()
		assert.Equal(t, StageReceived, first.Stage)
		second := <-publisher.Events()
		assert.Equal(t, StageMatching, second.Stage)
	})

	t.Run("drops events instead of blocking when full", func(t *testing.T) {
		publisher := NewChannelPublisher(1, nil)
		defer publisher.Close()

		publisher.Publish(ProgressEvent{JobId: "job-1", Stage: StageReceived})
		// Buffer is full; this must return immediately.
		publisher.Publish(ProgressEvent{JobId: "job-1", Stage: StageMatching})

		event := <-publisher.Events()
		assert.Equal(t, StageReceived, event.Stage)
		select {
		case _, ok := <-publisher.Events():
			assert.False(t, ok, "dropped event must not be delivered")
		default:
		}
	})

	t.Run("close is idempotent and ends the stream", func(t *testing.T) {
		publisher := NewChannelPublisher(1, nil)
		publisher.Close()
		publisher.Close()

		_, ok := <-publisher.Events()
		require.False(t, ok)
	})

	t.Run("minimum buffer size is enforced", func(t *testing.T) {
		publisher := NewChannelPublisher(0, nil)
		defer publisher.Close()

		publisher.Publish(ProgressEvent{JobId: "job-1", Stage: StageReceived})
		event := <-publisher.Events()
		assert.Equal(t, "job-1", event.JobId)
	})
}
