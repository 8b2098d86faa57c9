package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/medcare-api/internal/domain/reminder"
	"github.com/BruksfildServices01/medcare-api/internal/notify"
)

const (
	DefaultTimeout     = 10 * time.Second
	DefaultConcurrency = 8

	// Markers outlive the longest offset so a late poll cannot re-fire.
	DefaultMarkerTTL = 48 * time.Hour
)

type Item struct {
	Reminder domain.Reminder
	To       notify.Recipient
	Kind     notify.TemplateKind
	Payload  any
}

type Result struct {
	Kind      domain.Kind `json:"kind"`
	EntityID  uint        `json:"entity_id"`
	Offset    string      `json:"offset"`
	Target    time.Time   `json:"target"`
	Recipient string      `json:"recipient"`
	Success   bool        `json:"success"`
	Skipped   bool        `json:"skipped,omitempty"`
	Error     string      `json:"error,omitempty"`
}

type Summary struct {
	BatchID   string   `json:"batch_id"`
	Attempted int      `json:"attempted"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Skipped   int      `json:"skipped"`
	Results   []Result `json:"results"`
}

type Options struct {
	Timeout     time.Duration
	Concurrency int
	MarkerTTL   time.Duration
}

// Dispatcher fans reminders out to the sender and waits for all of them.
// Items never affect each other and nothing is retried.
type Dispatcher struct {
	sender  notify.Sender
	markers domain.MarkerStore
	opts    Options
}

// NewDispatcher accepts a nil marker store, in which case every item is
// sent.
func NewDispatcher(
	sender notify.Sender,
	markers domain.MarkerStore,
	opts Options,
) *Dispatcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.MarkerTTL <= 0 {
		opts.MarkerTTL = DefaultMarkerTTL
	}

	return &Dispatcher{
		sender:  sender,
		markers: markers,
		opts:    opts,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, items []Item) Summary {
	results := make([]Result, len(items))

	var g errgroup.Group
	g.SetLimit(d.opts.Concurrency)

	for i := range items {
		i := i
		g.Go(func() error {
			results[i] = d.dispatchOne(ctx, items[i])
			return nil
		})
	}
	_ = g.Wait()

	s := Summary{
		BatchID: uuid.NewString(),
		Results: results,
	}
	for _, r := range results {
		switch {
		case r.Skipped:
			s.Skipped++
		case r.Success:
			s.Attempted++
			s.Succeeded++
		default:
			s.Attempted++
			s.Failed++
		}
	}

	log.Printf(
		"[reminder] batch %s: attempted=%d succeeded=%d failed=%d skipped=%d",
		s.BatchID, s.Attempted, s.Succeeded, s.Failed, s.Skipped,
	)

	return s
}

func (d *Dispatcher) dispatchOne(ctx context.Context, it Item) (res Result) {
	res = Result{
		Kind:      it.Reminder.Kind,
		EntityID:  it.Reminder.EntityID,
		Offset:    domain.FormatOffset(it.Reminder.Offset),
		Target:    it.Reminder.Target,
		Recipient: it.To.Email,
	}

	key := it.Reminder.MarkerKey()

	if d.markers != nil {
		claimed, err := d.markers.Claim(ctx, key, d.opts.MarkerTTL)
		if err != nil {
			res.Error = fmt.Sprintf("marker store: %v", err)
			log.Printf("[reminder] %s: %s", key, res.Error)
			return res
		}
		if !claimed {
			res.Skipped = true
			return res
		}
	}

	err := d.send(ctx, it)
	if err == nil {
		res.Success = true
		return res
	}

	res.Error = err.Error()
	log.Printf("[reminder] %s: send failed: %v", key, err)

	// Let the next poll try again while the threshold is still open.
	if d.markers != nil {
		if rerr := d.markers.Release(context.WithoutCancel(ctx), key); rerr != nil {
			log.Printf("[reminder] %s: release marker: %v", key, rerr)
		}
	}
	return res
}

func (d *Dispatcher) send(ctx context.Context, it Item) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("sender panic: %v", p)
		}
	}()

	sendCtx, cancel := context.WithTimeout(ctx, d.opts.Timeout)
	defer cancel()

	return d.sender.Send(sendCtx, it.To, it.Kind, it.Payload)
}
