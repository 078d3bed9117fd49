package shapes

// Change is delivered to subscribers of a Store or Overlay.
type Change struct {
	// Persisted marks a commit point. Preview changes only ask for a redraw.
	Persisted bool
}

// Subscription identifies a registered listener. The zero value is never issued.
type Subscription int

type listener struct {
	id Subscription
	fn func(Change)
}

// Notifier is a synchronous change channel. Listeners run in
// subscription order on the emitting goroutine.
type Notifier struct {
	next      Subscription
	listeners []listener
}

func (n *Notifier) Subscribe(fn func(Change)) Subscription {
	n.next++
	n.listeners = append(n.listeners, listener{id: n.next, fn: fn})
	return n.next
}

// Unsubscribe removes the listener and reports whether it was registered.
func (n *Notifier) Unsubscribe(id Subscription) bool {
	for i, l := range n.listeners {
		if l.id == id {
			n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (n *Notifier) Emit(c Change) {
	// listeners may unsubscribe while we iterate
	ls := append([]listener(nil), n.listeners...)
	for _, l := range ls {
		l.fn(c)
	}
}

// Len returns the number of registered listeners.
func (n *Notifier) Len() int { return len(n.listeners) }
