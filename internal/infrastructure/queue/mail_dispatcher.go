package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/innstack/hotel-ops/internal/api/metrics"
	"github.com/innstack/hotel-ops/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// DedupChecker abstracts the recent-send store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, kind ports.MailKind, to string) (bool, error)
	Mark(ctx context.Context, kind ports.MailKind, to string) error
}

// MailDispatcher routes outbound mail jobs to a fixed set of workers using
// consistent hashing on the recipient, keeping per-recipient send ordering.
type MailDispatcher struct {
	workers []chan ports.MailJob
	mailer  ports.Mailer
	dedup   DedupChecker
	log     zerolog.Logger
}

// NewMailDispatcher creates a MailDispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewMailDispatcher(numWorkers int, mailer ports.Mailer, dedup DedupChecker, log zerolog.Logger) *MailDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &MailDispatcher{
		workers: make([]chan ports.MailJob, numWorkers),
		mailer:  mailer,
		dedup:   dedup,
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
// Non-blocking up to channelBuffer capacity.
func (d *MailDispatcher) Enqueue(job ports.MailJob) {
	i := d.shardIndex(job.To)
	d.workers[i] <- job
	metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *MailDispatcher) shardIndex(to string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(to))
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
			d.process(ctx, id, job)
			metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

func (d *MailDispatcher) process(ctx context.Context, id int, job ports.MailJob) {
	isDup, err := d.dedup.IsDuplicate(ctx, job.Kind, job.To)
	if err != nil {
		d.log.Warn().Err(err).Str("to", job.To).Msg("mail dedup check failed, sending anyway")
	} else if isDup {
		d.log.Debug().Str("to", job.To).Str("kind", string(job.Kind)).Msg("duplicate mail skipped")
		metrics.MailSentTotal.WithLabelValues(string(job.Kind), "skipped").Inc()
		return
	}

	if err := d.mailer.Send(ctx, job); err != nil {
		d.log.Error().Err(err).
			Str("to", job.To).
			Str("kind", string(job.Kind)).
			Int("worker_id", id).
			Msg("mail delivery failed")
		metrics.MailSentTotal.WithLabelValues(string(job.Kind), "error").Inc()
		return
	}

	if markErr := d.dedup.Mark(ctx, job.Kind, job.To); markErr != nil {
		d.log.Warn().Err(markErr).Str("to", job.To).Msg("failed to set mail dedup key")
	}
	metrics.MailSentTotal.WithLabelValues(string(job.Kind), "sent").Inc()
}
