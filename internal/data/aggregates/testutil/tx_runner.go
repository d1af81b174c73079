package testutil

import (
	"context"
	"sync"

	"github.com/investfolio/investfolio-backend/internal/data/aggregates"
	"github.com/investfolio/investfolio-backend/internal/platform/dbctx"
)

// InjectedTxRunner stands in for the gorm-backed runner in aggregate tests.
// Failures can be injected at begin, before the body, or at commit, and the
// counters record how the boundary was exercised.
type InjectedTxRunner struct {
	mu sync.Mutex

	FailBegin      error
	FailBeforeBody error
	FailCommit     error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin := r.FailBegin
	failBeforeBody := r.FailBeforeBody
	failCommit := r.FailCommit
	r.mu.Unlock()

	// Begin failures never reach rollback, matching gorm's Transaction.
	if failBegin != nil {
		return failBegin
	}
	if failBeforeBody != nil {
		return r.settle(failBeforeBody)
	}

	var err error
	if fn != nil {
		err = fn(dbctx.Context{Ctx: ctx})
	}
	if err == nil {
		err = failCommit
	}
	return r.settle(err)
}

func (r *InjectedTxRunner) settle(err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.RollbackCalls++
	} else {
		r.CommitCalls++
	}
	return err
}
