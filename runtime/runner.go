package runtime

import (
	"context"

	"github.com/dabbsLondon/rdata/api"
	"github.com/dabbsLondon/rdata/compiler"
	"github.com/dabbsLondon/rdata/materialize"
	"github.com/dabbsLondon/rdata/pkg/storage"
)

// Runner ties the pieces of one query run together: compile the
// script, execute the plan, materialize the result.  A Runner holds no
// per-run state and is safe for concurrent use.
type Runner struct {
	engine  *Engine
	storage storage.Engine
	conf    materialize.Config
}

func NewRunner(engine storage.Engine, loader TableLoader, conf materialize.Config) *Runner {
	return &Runner{
		engine:  NewEngine(loader),
		storage: engine,
		conf:    conf,
	}
}

// Run executes script and returns the materialized output along with
// the number of plan steps, which callers use to charge cost.  The
// error is one of the typed script errors (parse, validation,
// execution, materialization) or a context error.
func (r *Runner) Run(ctx context.Context, script []byte, requestID string) (*api.Output, int, error) {
	plan, err := compiler.Compile(string(script))
	if err != nil {
		return nil, 0, err
	}
	table, err := r.engine.Run(ctx, plan)
	if err != nil {
		return nil, len(plan.Steps), err
	}
	output, err := materialize.Materialize(ctx, r.storage, table, r.conf, requestID)
	if err != nil {
		return nil, len(plan.Steps), err
	}
	return output, len(plan.Steps), nil
}
