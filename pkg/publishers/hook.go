package publishers

import (
	"context"
	"time"

	"github.com/Adda-Baaj/foodstack-client/pkg/apiclient"
)

const hookPublishTimeout = 5 * time.Second

// Hook returns an AfterHook that publishes a CallEvent for every finished
// call. Sink failures are logged and never surface to the caller.
func Hook(f *Fanout, log Logger) apiclient.AfterHook {
	log = ensureLogger(log)
	return func(ctx context.Context, rec apiclient.CallRecord) {
		if f.Size() == 0 {
			return
		}
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), hookPublishTimeout)
		defer cancel()

		evt := NewCallEvent(rec)
		delivered, err := f.Publish(ctx, evt)
		if err != nil {
			log.WarnObj("call event publish failed", "call_event_publish", map[string]any{
				"event_id":  evt.ID,
				"delivered": delivered,
				"sinks":     f.Size(),
				"error":     err.Error(),
			})
			return
		}
		log.DebugObj("call event published", "call_event_publish", map[string]any{
			"event_id":  evt.ID,
			"delivered": delivered,
		})
	}
}
