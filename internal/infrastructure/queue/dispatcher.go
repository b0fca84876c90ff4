package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/Tourism-Ease/booking-api/internal/api/metrics"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// MailDispatcher delivers outbound mail off the request path. Jobs are
// routed to a fixed set of workers by consistent hashing on the
// recipient, so messages to one address are always delivered in order.
type MailDispatcher struct {
	workers []chan ports.MailJob
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewMailDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewMailDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *MailDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &MailDispatcher{
		workers: make([]chan ports.MailJob, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.MailJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *MailDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a job to the worker responsible for its recipient.
// A full worker channel drops the job rather than stalling a request;
// mail here is notification-grade, not transactional.
func (d *MailDispatcher) Enqueue(job ports.MailJob) {
	select {
	case d.workers[d.shardIndex(job.To)] <- job:
	default:
		d.log.Warn().Str("to", job.To).Str("template", job.Template).Msg("mail queue full, dropping job")
		metrics.MailDispatchTotal.WithLabelValues(job.Template, "dropped").Inc()
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *MailDispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *MailDispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.MailJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			if err := d.mailer.Send(ctx, job); err != nil {
				d.log.Error().Err(err).
					Str("to", job.To).
					Str("template", job.Template).
					Int("worker_id", id).
					Msg("mail delivery failed")
				metrics.MailDispatchTotal.WithLabelValues(job.Template, "error").Inc()
				continue
			}
			metrics.MailDispatchTotal.WithLabelValues(job.Template, "ok").Inc()
		}
	}
}
