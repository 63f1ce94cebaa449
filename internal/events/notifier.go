package events

import (
	"sync"
	"time"
)

// debounceWindow coalesces the event burst a single batch of mutations
// produces into one callback.
const debounceWindow = 200 * time.Millisecond

// Notifier adapts a raw event stream into debounced change callbacks. It
// is the push-based alternative to stats polling for clients whose daemon
// runs with an event bus.
type Notifier struct {
	sub      Subscriber
	onChange func()

	mu     sync.Mutex
	cancel func()
	done   chan struct{}
}

// NewNotifier creates a stopped notifier. onChange runs on the notifier's
// goroutine.
func NewNotifier(sub Subscriber, onChange func()) *Notifier {
	return &Notifier{sub: sub, onChange: onChange}
}

// Start subscribes to all tracker events. Starting a running notifier has
// no effect.
func (n *Notifier) Start() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel != nil {
		return nil
	}
	ch, cancel, err := n.sub.Subscribe(TopicAll)
	if err != nil {
		return err
	}
	n.cancel = cancel
	n.done = make(chan struct{})
	go n.run(ch, n.done)
	return nil
}

func (n *Notifier) run(ch <-chan []byte, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
			timer.Reset(debounceWindow)
		case <-timer.C:
			n.onChange()
		}
	}
}

// Stop unsubscribes and waits for the delivery goroutine to exit.
// Stopping a stopped notifier has no effect.
func (n *Notifier) Stop() {
	n.mu.Lock()
	cancel := n.cancel
	done := n.done
	n.cancel = nil
	n.done = nil
	n.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
