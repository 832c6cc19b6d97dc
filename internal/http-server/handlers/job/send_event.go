package job

import (
	"time"

	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/handlers/event"
)

// SendEventJob delivers one hub message off the request path. A slow or
// unreachable hub must never delay a verification response, so sends are
// dispatched here and retried a couple of times before giving up.
type SendEventJob struct {
	EventMessage event.Message
	Event        *event.VerdictPublisher
}

const (
	sendAttempts = 3
	sendBackoff  = 250 * time.Millisecond
)

func (job *SendEventJob) Execute() {
	for attempt := 0; attempt < sendAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(sendBackoff)
		}

		if err := job.Event.Trigger(job.EventMessage); err == nil {
			return
		}
	}
}
