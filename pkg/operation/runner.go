// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"runtime"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/proserc/pkg/status"
)

// 🏃 Runner executes operations
type Runner struct {
	logger   *zerolog.Logger
	async    bool
	limit    int
	reporter status.StatusReporter
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithReporter reports progress to r
func WithReporter(r status.StatusReporter) RunnerOption {
	return func(runner *Runner) {
		runner.reporter = r
	}
}

// WithLimit caps how many operations run at once in async mode
func WithLimit(n int) RunnerOption {
	return func(runner *Runner) {
		if n > 0 {
			runner.limit = n
		}
	}
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger, async bool, opts ...RunnerOption) *Runner {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	r := &Runner{
		logger: logger,
		async:  async,
		limit:  runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// 🏃 Run executes ops in order, or concurrently when async. The first
// failure stops the run; in async mode it also cancels the context the
// remaining operations see.
func (r *Runner) Run(ctx context.Context, ops ...Operation) error {
	if len(ops) == 0 {
		return nil
	}

	if r.reporter != nil {
		r.reporter.StartOperation(ctx, len(ops))
		defer r.reporter.FinishOperation(ctx)
	}

	if r.async {
		return r.runAsync(ctx, ops)
	}
	return r.runSync(ctx, ops)
}

// 🔄 runSync runs operations one after another
func (r *Runner) runSync(ctx context.Context, ops []Operation) error {
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}
		if err := r.execute(ctx, op); err != nil {
			return err
		}
	}
	return nil
}

// ⚡ runAsync runs operations concurrently
func (r *Runner) runAsync(ctx context.Context, ops []Operation) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)

	for _, op := range ops {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Errorf("operation cancelled: %w", err)
			}
			return r.execute(gctx, op)
		})
	}

	return g.Wait()
}

func (r *Runner) execute(ctx context.Context, op Operation) error {
	r.logger.Debug().Str("operation", op.Name()).Msg("running operation")
	if err := op.Execute(ctx); err != nil {
		return errors.Errorf("executing operation %s: %w", op.Name(), err)
	}
	if r.reporter != nil {
		r.reporter.Advance(ctx)
	}
	return nil
}
