// Package saturate drives an e-graph to a fixed point (or a resource
// limit) by repeatedly asking a Scheduler for progress. The loop itself
// never suspends and takes no context.Context: per spec, the e-graph,
// matcher, rule set, and scheduler are used from a single logical
// thread, and callers wanting parallelism run independent saturations
// over disjoint e-graphs rather than making this loop itself concurrent.
package saturate

import (
	"context"
	"time"

	"github.com/exprsat/eqsat/internal/parallel"
	"github.com/exprsat/eqsat/pkg/batch"
	"github.com/exprsat/eqsat/pkg/egraph"
	"github.com/exprsat/eqsat/pkg/match"
	"github.com/exprsat/eqsat/pkg/schedule"
)

// Config bounds a saturation run. A nil field means that limit is not
// enforced.
type Config struct {
	MaxNodes        *int
	MaxClasses      *int
	MaxApplications *int
	TimeLimit       *time.Duration
}

// StopReason records why a saturation run ended.
type StopReason int

const (
	// Saturated means a full pass over the scheduler's rules made no
	// progress: the e-graph reached a local fixed point.
	Saturated StopReason = iota
	MaxNodes
	MaxClasses
	MaxApplications
	Timeout
)

func (r StopReason) String() string {
	switch r {
	case Saturated:
		return "Saturated"
	case MaxNodes:
		return "MaxNodes"
	case MaxClasses:
		return "MaxClasses"
	case MaxApplications:
		return "MaxApplications"
	case Timeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// CheckLimits reports the first violated limit in cfg, in the order
// time, application count, node count, class count, or false if none
// are violated yet.
func CheckLimits(g egraph.Reader, applications int, start time.Time, cfg Config) (StopReason, bool) {
	if cfg.TimeLimit != nil && time.Since(start) >= *cfg.TimeLimit {
		return Timeout, true
	}
	if cfg.MaxApplications != nil && applications >= *cfg.MaxApplications {
		return MaxApplications, true
	}
	stats := g.Stats()
	if cfg.MaxNodes != nil && stats.ActualNodes >= *cfg.MaxNodes {
		return MaxNodes, true
	}
	if cfg.MaxClasses != nil && stats.ClassCount >= *cfg.MaxClasses {
		return MaxClasses, true
	}
	return Saturated, false
}

// Saturate repeatedly asks scheduler for progress against g until
// either a full round makes no change (Saturated) or cfg's limits are
// hit. Limits are checked once before the first step (in case the
// starting e-graph already violates cfg) and again after every step
// that made progress.
func Saturate(g egraph.Writer, cfg Config, scheduler schedule.Scheduler, matcher match.Matcher) StopReason {
	start := time.Now()
	applications := 0

	if reason, stopped := CheckLimits(g, applications, start, cfg); stopped {
		return reason
	}

	for {
		applied := scheduler.ApplyNext(g, matcher)
		if applied == 0 {
			return Saturated
		}
		applications += applied

		if reason, stopped := CheckLimits(g, applications, start, cfg); stopped {
			return reason
		}
	}
}

// Run is one independent saturation to hand to SaturateMany: it should
// close over its own e-graph, config, scheduler, and matcher and call
// Saturate.
type Run func() StopReason

// SaturateMany runs several independent saturations (each expected to
// own a disjoint e-graph) across pool, returning each one's StopReason
// in the order runs were given. This is the parallelism boundary the
// single-threaded Saturate loop itself deliberately lacks.
func SaturateMany(ctx context.Context, pool *parallel.WorkerPool, runs []Run) ([]StopReason, error) {
	jobs := make([]batch.Job[StopReason], len(runs))
	for i, r := range runs {
		jobs[i] = batch.Job[StopReason](r)
	}
	return batch.Run(ctx, pool, jobs)
}
