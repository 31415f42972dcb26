package models

import (
	"context"
	"fmt"
	"log"
	"time"
)

// CallPolicy bounds every external collaborator call: each attempt gets its own timeout and a
// failed attempt is retried Retries times before the error is returned.
type CallPolicy struct {
	Timeout time.Duration
	Retries int
	Backoff time.Duration
	Logger  *log.Logger
}

func DefaultCallPolicy() CallPolicy {
	return CallPolicy{
		Timeout: 15 * time.Second,
		Retries: 1,
		Backoff: 250 * time.Millisecond,
	}
}

// Call runs fn under the policy.
func Call[T any](ctx context.Context, p CallPolicy, name string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	attempts := 0
	for attempt := 0; attempt <= p.Retries; attempt++ {
		if attempt > 0 {
			if p.Logger != nil {
				p.Logger.Printf("Retrying %s after error: %v", name, lastErr)
			}
			select {
			case <-ctx.Done():
				return zero, fmt.Errorf("%s: %w", name, ctx.Err())
			case <-time.After(p.Backoff):
			}
		}

		callCtx, cancel := ctx, context.CancelFunc(func() {})
		if p.Timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		}
		v, err := fn(callCtx)
		cancel()
		attempts++
		if err == nil {
			return v, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return zero, fmt.Errorf("%s failed after %d attempt(s): %w", name, attempts, lastErr)
}

type guardedEmbedder struct {
	next   Embedder
	policy CallPolicy
}

// GuardEmbedder wraps e with the call policy.
func GuardEmbedder(e Embedder, p CallPolicy) Embedder {
	return &guardedEmbedder{next: e, policy: p}
}

func (g *guardedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return Call(ctx, g.policy, "embed", func(ctx context.Context) ([]float32, error) {
		return g.next.Embed(ctx, text)
	})
}

type guardedCompleter struct {
	next   Completer
	policy CallPolicy
}

func GuardCompleter(c Completer, p CallPolicy) Completer {
	return &guardedCompleter{next: c, policy: p}
}

func (g *guardedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return Call(ctx, g.policy, "complete", func(ctx context.Context) (string, error) {
		return g.next.Complete(ctx, prompt)
	})
}

type guardedSearcher struct {
	next   Searcher
	policy CallPolicy
}

func GuardSearcher(s Searcher, p CallPolicy) Searcher {
	return &guardedSearcher{next: s, policy: p}
}

func (g *guardedSearcher) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	return Call(ctx, g.policy, "search", func(ctx context.Context) ([]SearchResult, error) {
		return g.next.Search(ctx, query, limit)
	})
}
