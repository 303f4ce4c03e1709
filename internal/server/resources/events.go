package resources

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/vaultkeeper/internal/dbx"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/identity"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/models"
)

// EventResourceAdded is dispatched after a resource and its associations are
// written, before the transaction commits.
const EventResourceAdded = "resources.add.success"

// Event is handed to every subscriber. Tx is the open transaction; it can be
// used for further writes but cannot be committed or rolled back. Data is the
// request payload in canonical shape.
type Event struct {
	Name          string
	Resource      *models.Resource
	AccessControl identity.AccessControl
	Data          map[string]any
	Tx            dbx.DBTX

	mu       sync.Mutex
	rollback []func(ctx context.Context) error
}

// OnRollback registers fn to undo a side effect outside the database. It runs
// if the creation does not commit, including when a later subscriber or the
// commit itself fails.
func (e *Event) OnRollback(fn func(ctx context.Context) error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rollback = append(e.rollback, fn)
}

// Rollback runs the registered hooks newest first, each at most once, and
// joins their errors.
func (e *Event) Rollback(ctx context.Context) error {
	e.mu.Lock()
	hooks := e.rollback
	e.rollback = nil
	e.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		errs = append(errs, hooks[i](ctx))
	}
	return errors.Join(errs...)
}

// Subscriber reacts to a created resource. Returning a *ValidationError vetoes
// the creation; any other error aborts it as a failure.
type Subscriber interface {
	OnResourceCreated(ctx context.Context, e *Event) error
}

type SubscriberFunc func(ctx context.Context, e *Event) error

func (f SubscriberFunc) OnResourceCreated(ctx context.Context, e *Event) error {
	return f(ctx, e)
}

type namedSubscriber struct {
	name string
	sub  Subscriber
}

type Notifier struct {
	mu     sync.RWMutex
	subs   []namedSubscriber
	logger logging.Logger
}

func NewNotifier(logger logging.Logger) *Notifier {
	return &Notifier{logger: logger.With("module", "notifier")}
}

func (n *Notifier) Subscribe(name string, s Subscriber) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, namedSubscriber{name: name, sub: s})
}

// Subscribers lists registered subscriber names in dispatch order.
func (n *Notifier) Subscribers() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	names := make([]string, 0, len(n.subs))
	for _, s := range n.subs {
		names = append(names, s.name)
	}
	return names
}

// Notify runs subscribers in registration order. Validation vetoes are merged
// and dispatch continues; the merged set is returned at the end. Any other
// error stops dispatch and is returned wrapped in ErrNotification.
func (n *Notifier) Notify(ctx context.Context, e *Event) error {
	n.mu.RLock()
	subs := append([]namedSubscriber(nil), n.subs...)
	n.mu.RUnlock()

	vetoes := NewValidationError()
	for _, s := range subs {
		err := s.sub.OnResourceCreated(ctx, e)
		if err == nil {
			continue
		}

		var verr *ValidationError
		if errors.As(err, &verr) {
			n.logger.Info(ctx, "subscriber vetoed resource", "event", e.Name, "subscriber", s.name, "fields", verr.Paths())
			vetoes.Merge(verr)
			continue
		}

		n.logger.Error(ctx, "subscriber failed", "event", e.Name, "subscriber", s.name, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrNotification, s.name, err)
	}
	return vetoes.Err()
}
