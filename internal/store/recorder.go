package store

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type kvWrite struct {
	key, value string
}

// Recorder applies persistence off the event loop. Writes are
// fire-and-forget: a full queue drops the oldest write rather than stalling
// the conversation, and the latest value for a key always lands eventually
// because every change is re-sent in full.
type Recorder struct {
	values  *ValueRepo
	session uuid.UUID
	log     *slog.Logger
	ch      chan kvWrite
	done    chan struct{}
}

func NewRecorder(ctx context.Context, values *ValueRepo, session uuid.UUID, log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.Default()
	}
	r := &Recorder{
		values:  values,
		session: session,
		log:     log,
		ch:      make(chan kvWrite, 256),
		done:    make(chan struct{}),
	}
	go r.run(ctx)
	return r
}

// Persist queues one upsert.
func (r *Recorder) Persist(key, value string) {
	select {
	case r.ch <- kvWrite{key: key, value: value}:
	default:
		select {
		case <-r.ch:
		default:
		}
		select {
		case r.ch <- kvWrite{key: key, value: value}:
		default:
		}
	}
}

func (r *Recorder) run(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			return
		case w := <-r.ch:
			if err := r.values.Upsert(ctx, r.session, w.key, w.value); err != nil {
				r.log.Warn("persist failed", "key", w.key, "err", err)
			}
		}
	}
}

// Wait blocks until the worker has exited.
func (r *Recorder) Wait() { <-r.done }
