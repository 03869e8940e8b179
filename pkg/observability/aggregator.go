package observability

import (
	"context"

	"github.com/aretw0/folium/pkg/domain"
)

// Aggregator combines multiple hook sets into a single one.
type Aggregator struct {
	hooks []domain.LifecycleHooks
}

// NewAggregator creates an aggregator over hooks.
func NewAggregator(hooks ...domain.LifecycleHooks) *Aggregator {
	return &Aggregator{hooks: hooks}
}

// Add registers another hook set.
func (a *Aggregator) Add(h domain.LifecycleHooks) {
	a.hooks = append(a.hooks, h)
}

// Hooks returns hooks that call every registered set, in registration order.
func (a *Aggregator) Hooks() domain.LifecycleHooks {
	hooks := append([]domain.LifecycleHooks(nil), a.hooks...)
	fan := func(pick func(domain.LifecycleHooks) func(context.Context, *domain.DispatchEvent)) func(context.Context, *domain.DispatchEvent) {
		return func(ctx context.Context, e *domain.DispatchEvent) {
			for _, h := range hooks {
				if fn := pick(h); fn != nil {
					fn(ctx, e)
				}
			}
		}
	}
	return domain.LifecycleHooks{
		OnDispatch: fan(func(h domain.LifecycleHooks) func(context.Context, *domain.DispatchEvent) { return h.OnDispatch }),
		OnUndo:     fan(func(h domain.LifecycleHooks) func(context.Context, *domain.DispatchEvent) { return h.OnUndo }),
		OnRedo:     fan(func(h domain.LifecycleHooks) func(context.Context, *domain.DispatchEvent) { return h.OnRedo }),
	}
}
