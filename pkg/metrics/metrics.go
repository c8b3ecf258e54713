package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

// Metrics exposes a tiny in-memory counter set for the webhook relay.
type Metrics struct {
	received   atomic.Int64
	handshakes atomic.Int64
	accepted   atomic.Int64
	rejected   atomic.Int64
	sent       atomic.Int64
	failed     atomic.Int64
	skipped    atomic.Int64
}

// New returns a zeroed Metrics collector.
func New() *Metrics {
	return &Metrics{}
}

func (m *Metrics) IncReceived()  { m.received.Add(1) }
func (m *Metrics) IncHandshake() { m.handshakes.Add(1) }
func (m *Metrics) IncAccepted()  { m.accepted.Add(1) }
func (m *Metrics) IncRejected()  { m.rejected.Add(1) }
func (m *Metrics) IncSent()      { m.sent.Add(1) }
func (m *Metrics) IncFailed()    { m.failed.Add(1) }
func (m *Metrics) IncSkipped()   { m.skipped.Add(1) }

// Handler exposes the counters via a very small JSON response so we do not
// need to pull in a heavy metrics dependency for a service this size.
func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "received": ` + itoa(m.received.Load()) + `,
  "handshakes": ` + itoa(m.handshakes.Load()) + `,
  "accepted": ` + itoa(m.accepted.Load()) + `,
  "rejected": ` + itoa(m.rejected.Load()) + `,
  "channels_sent": ` + itoa(m.sent.Load()) + `,
  "channels_failed": ` + itoa(m.failed.Load()) + `,
  "channels_skipped": ` + itoa(m.skipped.Load()) + `
}`))
	})
}

func itoa(v int64) string {
	return fmt.Sprintf("%d", v)
}
