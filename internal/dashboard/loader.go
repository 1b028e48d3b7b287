package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/healthmesh/internal/client/mesh"
	"github.com/garrettladley/healthmesh/internal/health"
	"github.com/garrettladley/healthmesh/internal/xslog"
)

// Fetcher performs one gateway capability. *mesh.Client satisfies it.
type Fetcher interface {
	Call(ctx context.Context, capability mesh.Capability, body any) ([]byte, error)
}

var _ Fetcher = (*mesh.Client)(nil)

// OrchestrationError is a failure of the load cycle itself rather than of any single call.
// It is the only error Load returns.
type OrchestrationError struct {
	Cause any
}

func (e *OrchestrationError) Error() string {
	if err, ok := e.Cause.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("an unexpected error occurred while loading data: %v", e.Cause)
}

func (e *OrchestrationError) Unwrap() error {
	err, _ := e.Cause.(error)
	return err
}

type Loader struct {
	fetcher Fetcher
	logger  *slog.Logger
	targets health.Targets
	now     func() time.Time
}

type Option func(*Loader)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithCalorieTarget sets the daily kcal target macro targets are derived from.
func WithCalorieTarget(kcal float64) Option {
	return func(l *Loader) { l.targets = health.NewTargets(kcal) }
}

func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

func NewLoader(fetcher Fetcher, opts ...Option) *Loader {
	l := &Loader{
		fetcher: fetcher,
		logger:  slog.Default(),
		targets: health.NewTargets(health.DefaultCalorieTarget),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load issues every section call concurrently, waits for all of them to settle and assembles
// the result. Individual call failures never surface as an error.
func (l *Loader) Load(ctx context.Context) (vm *ViewModel, err error) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.ErrorContext(ctx, "dashboard load panicked", xslog.ErrorGroupWithStack(r))
			vm, err = nil, &OrchestrationError{Cause: r}
		}
	}()

	start := l.now()
	results, err := l.settle(ctx, Sections())
	if err != nil {
		return nil, err
	}

	for _, s := range Sections() {
		if out := results[s]; !out.OK() {
			l.logger.WarnContext(ctx, "section failed to load",
				xslog.Section(string(s)),
				xslog.Error(out.Err))
		}
	}

	vm = Assemble(results, l.targets, l.now())
	l.logger.InfoContext(ctx, "dashboard loaded",
		slog.Int("populated", len(vm.Populated())),
		slog.Int("failed", len(vm.Failed)),
		xslog.Duration(l.now().Sub(start)))
	return vm, nil
}

// settle waits for every call; goroutines never return an error so none short-circuits another.
// A panic inside a call is re-raised as an OrchestrationError once all calls have settled.
func (l *Loader) settle(ctx context.Context, sections []Section) (map[Section]Outcome[[]byte], error) {
	var (
		eg       errgroup.Group
		outcomes = make([]Outcome[[]byte], len(sections))
		panics   = make([]any, len(sections))
	)

	for i, s := range sections {
		eg.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					panics[i] = r
				}
			}()
			raw, err := l.fetcher.Call(ctx, s.Capability(), nil)
			outcomes[i] = Outcome[[]byte]{Value: raw, Err: err}
			return nil
		})
	}
	_ = eg.Wait()

	for i, p := range panics {
		if p != nil {
			l.logger.ErrorContext(ctx, "section call panicked",
				xslog.Section(string(sections[i])),
				xslog.ErrorAny(p))
			return nil, &OrchestrationError{Cause: p}
		}
	}

	results := make(map[Section]Outcome[[]byte], len(sections))
	for i, s := range sections {
		results[s] = outcomes[i]
	}
	return results, nil
}
