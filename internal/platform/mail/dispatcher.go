package mail

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// sendTimeout bounds one delivery attempt so a hung SMTP server cannot
// stall the queue forever.
const sendTimeout = 30 * time.Second

// Dispatcher decouples request handling from mail delivery: Enqueue never
// blocks the caller, a single worker goroutine drains the queue, and
// delivery failures are logged and dropped. This keeps a slow or failing
// mail transport from delaying or failing the HTTP response.
type Dispatcher struct {
	mailer Mailer
	logger *slog.Logger
	queue  chan Message

	closeOnce sync.Once
	done      chan struct{}
}

// NewDispatcher starts a dispatcher with the given queue capacity.
func NewDispatcher(mailer Mailer, logger *slog.Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	d := &Dispatcher{
		mailer: mailer,
		logger: logger,
		queue:  make(chan Message, queueSize),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// Enqueue queues a message for delivery. When the queue is full the
// message is dropped with a log entry rather than blocking the caller.
func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.queue <- msg:
	default:
		d.logger.Warn("Outbound mail queue full, dropping message",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
		)
	}
}

// Close stops accepting messages and drains what is already queued.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
		<-d.done
	})
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := d.mailer.Send(ctx, msg); err != nil {
			d.logger.Error("Failed to send mail",
				slog.String("to", msg.To),
				slog.String("subject", msg.Subject),
				slog.String("error", err.Error()),
			)
		}
		cancel()
	}
}
