package postgres

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/logger"

	"github.com/lib/pq"
)

// changeChannel is the NOTIFY channel the schema triggers publish to.
const changeChannel = "row_changes"

// ChangeFeed relays row-change notifications from PostgreSQL to in-process
// subscribers. Each UI client holding an SSE connection gets its own channel;
// a slow client loses events rather than blocking the feed.
type ChangeFeed struct {
	listener *pq.Listener

	mu   sync.Mutex
	subs map[chan domain.ChangeEvent]struct{}
}

func NewChangeFeed(dsn string) *ChangeFeed {
	l := pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Error("Change feed listener event", "event", ev, "error", err)
		}
	})
	return &ChangeFeed{
		listener: l,
		subs:     make(map[chan domain.ChangeEvent]struct{}),
	}
}

// Run listens for notifications until the context is cancelled.
func (f *ChangeFeed) Run(ctx context.Context) error {
	if err := f.listener.Listen(changeChannel); err != nil {
		return domain.PersistenceErr("listen "+changeChannel, err)
	}
	defer f.listener.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-f.listener.Notify:
			if n == nil {
				// Connection was re-established; subscribers may have missed
				// events and should re-query.
				f.broadcast(domain.ChangeEvent{Event: "RESYNC"})
				continue
			}
			var ev domain.ChangeEvent
			if err := json.Unmarshal([]byte(n.Extra), &ev); err != nil {
				logger.Warn("Dropping malformed change notification", "payload", n.Extra, "error", err)
				continue
			}
			f.broadcast(ev)
		case <-time.After(90 * time.Second):
			go f.listener.Ping()
		}
	}
}

// Subscribe registers a new consumer. The returned cancel function must be
// called when the consumer goes away.
func (f *ChangeFeed) Subscribe() (<-chan domain.ChangeEvent, func()) {
	ch := make(chan domain.ChangeEvent, 16)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		delete(f.subs, ch)
		f.mu.Unlock()
	}
	return ch, cancel
}

func (f *ChangeFeed) broadcast(ev domain.ChangeEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
