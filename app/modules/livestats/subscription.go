package livestats

import (
	"sync"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// Topic scopes a subscription to one match, optionally narrowed to one
// player.
type Topic struct {
	MatchID  sharedtypes.MatchID
	PlayerID sharedtypes.PlayerID // empty matches every player in the match
}

// Matches reports whether an update for (matchID, playerID) is relevant to
// the topic.
func (t Topic) Matches(matchID sharedtypes.MatchID, playerID sharedtypes.PlayerID) bool {
	if t.MatchID != matchID {
		return false
	}
	return t.PlayerID == "" || t.PlayerID == playerID
}

// Callback receives full aggregate snapshots, in append order for this
// subscriber.
type Callback func(sharedtypes.PlayerStats)

// Subscription is the disposable handle returned by Bus.Subscribe.
type Subscription struct {
	topic Topic
	fn    Callback
	queue chan sharedtypes.PlayerStats
	done  chan struct{}

	closeOnce sync.Once
	mu        sync.Mutex
	closed    bool

	detach func(*Subscription)
}

// Unsubscribe stops delivery and releases the subscription's resources.
// It is idempotent. Once it returns, no further callbacks fire, even for
// notifications that were already queued.
func (s *Subscription) Unsubscribe() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		close(s.done)
		s.detach(s)
	})
}

// enqueue hands a snapshot to the subscriber's delivery goroutine. It
// blocks if the subscriber is slow rather than dropping, preserving the
// one-notification-per-append guarantee; a cancelled subscription unblocks
// it.
func (s *Subscription) enqueue(stats sharedtypes.PlayerStats) {
	select {
	case s.queue <- stats:
	case <-s.done:
	}
}

// deliver runs on the subscription's own goroutine so one slow consumer
// never stalls another subscriber's notifications.
func (s *Subscription) deliver() {
	for {
		select {
		case <-s.done:
			return
		case stats := <-s.queue:
			s.mu.Lock()
			if !s.closed {
				s.fn(stats)
			}
			s.mu.Unlock()
		}
	}
}
