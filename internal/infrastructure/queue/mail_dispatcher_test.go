package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/innstack/hotel-ops/internal/core/ports"
)

type recordingMailer struct {
	mu      sync.Mutex
	sent    []ports.MailJob
	sendErr error
}

func (m *recordingMailer) Send(ctx context.Context, job ports.MailJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, job)
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type memDedup struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (d *memDedup) key(kind ports.MailKind, to string) string {
	return string(kind) + ":" + to
}

func (d *memDedup) IsDuplicate(ctx context.Context, kind ports.MailKind, to string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seen[d.key(kind, to)], nil
}

func (d *memDedup) Mark(ctx context.Context, kind ports.MailKind, to string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seen == nil {
		d.seen = map[string]bool{}
	}
	d.seen[d.key(kind, to)] = true
	return nil
}

func waitForSends(t *testing.T, m *recordingMailer, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if m.count() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d sends, got %d", want, m.count())
}

func TestDispatcherDeliversJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := &recordingMailer{}
	d := NewMailDispatcher(2, mailer, &memDedup{}, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.MailJob{Kind: ports.MailPasswordSetup, To: "a@h1.test", Token: "t1"})
	d.Enqueue(ports.MailJob{Kind: ports.MailPasswordSetup, To: "b@h1.test", Token: "t2"})

	waitForSends(t, mailer, 2)
}

func TestDispatcherSkipsDuplicates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := &recordingMailer{}
	dedup := &memDedup{}
	d := NewMailDispatcher(1, mailer, dedup, zerolog.Nop())
	d.Start(ctx)

	job := ports.MailJob{Kind: ports.MailPasswordSetup, To: "a@h1.test", Token: "t1"}
	d.Enqueue(job)
	waitForSends(t, mailer, 1)

	// Same kind and recipient within the dedup window: dropped.
	d.Enqueue(job)
	// A different kind to the same recipient still goes out.
	d.Enqueue(ports.MailJob{Kind: ports.MailPasswordReset, To: "a@h1.test", Token: "t2"})
	waitForSends(t, mailer, 2)

	if mailer.sent[1].Kind != ports.MailPasswordReset {
		t.Fatalf("wrong job delivered second: %+v", mailer.sent[1])
	}
}

func TestDispatcherShardIsStable(t *testing.T) {
	d := NewMailDispatcher(4, &recordingMailer{}, &memDedup{}, zerolog.Nop())
	first := d.shardIndex("a@h1.test")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("a@h1.test"); got != first {
			t.Fatalf("shard changed between calls: %d vs %d", first, got)
		}
	}
}

func TestDispatcherSendFailureDoesNotMarkDedup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := &recordingMailer{sendErr: errors.New("function unreachable")}
	dedup := &memDedup{}
	d := NewMailDispatcher(1, mailer, dedup, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.MailJob{Kind: ports.MailPasswordSetup, To: "a@h1.test"})

	// Give the worker a moment, then confirm the dedup key was not set so a
	// retry can go through once the mailer recovers.
	time.Sleep(50 * time.Millisecond)
	if dup, _ := dedup.IsDuplicate(ctx, ports.MailPasswordSetup, "a@h1.test"); dup {
		t.Fatalf("failed send marked the dedup key")
	}

	mailer.mu.Lock()
	mailer.sendErr = nil
	mailer.mu.Unlock()
	d.Enqueue(ports.MailJob{Kind: ports.MailPasswordSetup, To: "a@h1.test"})
	waitForSends(t, mailer, 1)
}
