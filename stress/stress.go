// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

// Package stress drives many independent stacks through push, peek, pop and teardown
// cycles and verifies the last-in-first-out contract on each of them.
//
// Stacks are never shared: every round builds its own stack inside a single pooled
// goroutine, only the counters and the error list are shared.
package stress

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cast"
	"go.uber.org/atomic"

	"trpc.group/trpc-go/lifo/config"
	"trpc.group/trpc-go/lifo/errs"
	"trpc.group/trpc-go/lifo/log"
)

// checkEvery is how many pushes or pops happen between two context checks.
const checkEvery = 1 << 16

// Report summarizes a run.
type Report struct {
	Kind     string        `json:"kind"`
	Workers  int           `json:"workers"`
	Rounds   int           `json:"rounds"`
	Depth    int           `json:"depth"`
	Pushed   int64         `json:"pushed"`
	Popped   int64         `json:"popped"`
	Released int64         `json:"released"` // elements dropped by Reset.
	Passed   int64         `json:"passed"`
	Failed   int64         `json:"failed"`
	Elapsed  time.Duration `json:"elapsed"`
}

type runner struct {
	cfg      config.StressConfig
	pushed   atomic.Int64
	popped   atomic.Int64
	released atomic.Int64
	passed   atomic.Int64
	failed   atomic.Int64

	mu  sync.Mutex
	err error
}

// Run executes cfg.Rounds rounds on a pool of cfg.Workers goroutines and waits for them.
// The returned error aggregates every failed round; the report is always filled.
func Run(ctx context.Context, cfg config.StressConfig) (*Report, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	r := &runner{cfg: cfg}
	start := time.Now()
	pool, err := ants.NewPool(cfg.Workers, ants.WithPanicHandler(func(p interface{}) {
		r.fail(errs.Newf(errs.RetUnknown, "round panicked: %v", p))
	}))
	if err != nil {
		return r.report(start), errs.Wrap(err, errs.RetPoolFailure, "new stress pool")
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for round := 0; round < cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			r.fail(errs.Wrapf(err, errs.RetCanceled, "round %d not started", round))
			continue
		}
		round := round
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			r.runRound(ctx, round)
		}); err != nil {
			wg.Done()
			r.fail(errs.Wrapf(err, errs.RetPoolFailure, "submit round %d", round))
		}
	}
	wg.Wait()

	rep := r.report(start)
	log.Debugf("stress run finished: %d passed, %d failed in %s", rep.Passed, rep.Failed, rep.Elapsed)
	r.mu.Lock()
	defer r.mu.Unlock()
	return rep, r.err
}

func (r *runner) runRound(ctx context.Context, round int) {
	var err error
	switch r.cfg.Kind {
	case config.KindString:
		err = exercise(ctx, r, r.cfg.Depth,
			func(i int) string { return cast.ToString(i) },
			func(s string) string { return s + "'" })
	default:
		err = exercise(ctx, r, r.cfg.Depth, func(i int) int { return i }, func(v int) int { return -v - 1 })
	}
	if err != nil {
		r.fail(errs.Wrapf(err, errs.Code(err), "round %d", round))
		return
	}
	r.passed.Inc()
	log.Debugf("stress round %d passed", round)
}

func (r *runner) fail(err error) {
	r.failed.Inc()
	log.Errorf("stress: %v", err)
	r.mu.Lock()
	r.err = multierror.Append(r.err, err)
	r.mu.Unlock()
}

func (r *runner) report(start time.Time) *Report {
	return &Report{
		Kind:     r.cfg.Kind,
		Workers:  r.cfg.Workers,
		Rounds:   r.cfg.Rounds,
		Depth:    r.cfg.Depth,
		Pushed:   r.pushed.Load(),
		Popped:   r.popped.Load(),
		Released: r.released.Load(),
		Passed:   r.passed.Load(),
		Failed:   r.failed.Load(),
		Elapsed:  time.Since(start),
	}
}
