// Package notify keeps the transient success/error messages shown to the user.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind tags a toast as success or error
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// DefaultTTL is how long a toast stays visible
const DefaultTTL = 3 * time.Second

// Icon returns the glyph rendered next to a toast of this kind
func (k Kind) Icon() string {
	if k == Error {
		return "✕"
	}
	return "✓"
}

// Toast is one transient message
type Toast struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier stacks toasts in push order and drops each one after its TTL
type Notifier struct {
	mu     sync.Mutex
	ttl    time.Duration
	toasts []Toast
	subs   map[int]chan Toast
	nextID int
}

// New creates a notifier; a non-positive ttl means DefaultTTL
func New(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl, subs: make(map[int]chan Toast)}
}

// TTL returns the display duration of each toast
func (n *Notifier) TTL() time.Duration { return n.ttl }

// Success pushes a success toast
func (n *Notifier) Success(msg string) Toast { return n.Push(Success, msg) }

// Error pushes an error toast
func (n *Notifier) Error(msg string) Toast { return n.Push(Error, msg) }

// Push appends a toast and schedules its removal
func (n *Notifier) Push(kind Kind, msg string) Toast {
	t := Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   msg,
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	n.toasts = append(n.toasts, t)
	subs := make([]chan Toast, 0, len(n.subs))
	for _, ch := range n.subs {
		subs = append(subs, ch)
	}
	n.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- t:
		default: // slow subscriber, the toast is still listed by Active
		}
	}

	time.AfterFunc(n.ttl, func() { n.remove(t.ID) })
	return t
}

// Active returns the toasts still visible, oldest first
func (n *Notifier) Active() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}

// Subscribe returns a channel receiving every pushed toast, and a func to stop
func (n *Notifier) Subscribe() (<-chan Toast, func()) {
	ch := make(chan Toast, 16)

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = ch
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
}

func (n *Notifier) remove(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, t := range n.toasts {
		if t.ID == id {
			n.toasts = append(n.toasts[:i], n.toasts[i+1:]...)
			return
		}
	}
}
