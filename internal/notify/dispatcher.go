package notify

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
)

type message struct {
	recipientID string
	text        string
}

// Dispatcher delivers notifications in the background. Enqueue never
// fails the caller: a full queue or a write error is only logged.
type Dispatcher struct {
	store *Store
	log   *logging.Logger
	queue chan message

	once sync.Once
	done chan struct{}
}

func NewDispatcher(store *Store, log *logging.Logger) *Dispatcher {
	if log == nil {
		log = logging.Discard()
	}

	d := &Dispatcher{
		store: store,
		log:   log,
		queue: make(chan message, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for m := range d.queue {
		if err := d.store.Save(context.Background(), m.recipientID, m.text); err != nil {
			d.log.Error("notification write failed", "recipient_id", m.recipientID, "error", err)
		}
	}
}

func (d *Dispatcher) Enqueue(recipientID, text string) {
	if d == nil || recipientID == "" {
		return
	}

	select {
	case d.queue <- message{recipientID: recipientID, text: text}:
	default:
		d.log.Warn("notification queue full, dropping message", "recipient_id", recipientID)
	}
}

func (d *Dispatcher) ConsumeNextUnread(ctx context.Context, userID string) (string, bool, error) {
	return d.store.ConsumeNextUnread(ctx, userID)
}

// Close drains pending messages.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() { close(d.queue) })
	<-d.done
}
