// Package router runs the provider waterfall: each eligible provider is
// tried in priority order until one produces an answer.
package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/plywoodstudio/faqbot/internal/provider"
)

// ErrExhausted is returned when every provider was skipped or failed.
// With the curated fallback in the chain this should not happen.
var ErrExhausted = errors.New("router: all providers exhausted")

// Result is an answer together with the provider that produced it.
type Result struct {
	Answer   string
	Provider string
}

// Router tries providers in order with a per-provider timeout.
type Router struct {
	providers []provider.Provider
	timeout   time.Duration
}

func New(providers []provider.Provider, timeout time.Duration) *Router {
	return &Router{providers: providers, timeout: timeout}
}

// Route asks each eligible provider in turn. Ineligible providers are
// skipped silently. A provider failure or panic is logged and the next
// provider is tried.
func (r *Router) Route(ctx context.Context, question string) (Result, error) {
	for _, p := range r.providers {
		if !p.Eligible(question) {
			continue
		}

		answer, err := r.ask(ctx, p, question)
		if err != nil {
			level := slog.LevelWarn
			if errors.Is(err, provider.ErrNoAnswer) {
				level = slog.LevelDebug
			}
			slog.Log(ctx, level, "provider did not answer", "provider", p.Name(), "error", err)
			continue
		}

		slog.Info("provider answered", "provider", p.Name())
		return Result{Answer: answer, Provider: p.Name()}, nil
	}

	return Result{}, ErrExhausted
}

// ask runs a single provider under the timeout, converting a panic into
// an error so one misbehaving backend cannot take down the request.
func (r *Router) ask(ctx context.Context, p provider.Provider, question string) (answer string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("provider %s panicked: %v", p.Name(), rec)
		}
	}()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	return p.Answer(ctx, question)
}
