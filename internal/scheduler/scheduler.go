// Package scheduler runs damage request batches with the pipeline's
// concurrency contract: requests for different target actors run in
// parallel, requests for the same target run strictly in submission order,
// and results come back in the original batch order.
package scheduler

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/chaosforge/damage-api/internal/damage"
	"github.com/chaosforge/damage-api/internal/errors"
)

// Task processes one request.
type Task func(ctx context.Context, req *damage.Request) (*damage.Result, error)

// ItemResult pairs one request's outcome with its error. Exactly one of
// the two is set.
type ItemResult struct {
	Result *damage.Result
	Err    error
}

// Config holds the scheduler settings.
type Config struct {
	// MaxConcurrentGroups bounds how many actor groups run at once. Zero
	// means unlimited.
	MaxConcurrentGroups int
}

// Validate ensures the settings are usable.
func (c *Config) Validate() error {
	if c.MaxConcurrentGroups < 0 {
		return errors.InvalidArgument("MaxConcurrentGroups must not be negative")
	}
	return nil
}

// Scheduler fans a batch out across actor groups.
type Scheduler struct {
	limit int
}

// New creates a scheduler.
func New(cfg *Config) (*Scheduler, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{limit: cfg.MaxConcurrentGroups}, nil
}

type item struct {
	index int
	req   *damage.Request
}

// Run executes the batch. Each request's success or failure lands in the
// returned slice at the request's submission index; a failed request never
// fails the batch.
func (s *Scheduler) Run(ctx context.Context, reqs []*damage.Request, fn Task) []ItemResult {
	results := make([]ItemResult, len(reqs))

	groups := make(map[string][]item)
	order := make([]string, 0)
	for i, req := range reqs {
		if req == nil {
			results[i] = ItemResult{Err: errors.InvalidArgument("request is required")}
			continue
		}
		if _, ok := groups[req.TargetID]; !ok {
			order = append(order, req.TargetID)
		}
		groups[req.TargetID] = append(groups[req.TargetID], item{index: i, req: req})
	}

	var g errgroup.Group
	if s.limit > 0 {
		g.SetLimit(s.limit)
	}

	for _, target := range order {
		group := groups[target]
		g.Go(func() error {
			for _, it := range group {
				if err := ctx.Err(); err != nil {
					results[it.index] = ItemResult{
						Err: errors.WrapWithCode(err, errors.CodeDeadlineExceeded, "batch canceled"),
					}
					continue
				}

				result, err := fn(ctx, it.req)
				results[it.index] = ItemResult{Result: result, Err: err}
			}
			return nil
		})
	}

	// Group goroutines never return errors; per-request failures are
	// reported in their slots.
	_ = g.Wait()

	return results
}
