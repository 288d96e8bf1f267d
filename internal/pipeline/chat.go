// Package pipeline orchestrates a chat request: relevance gate, answer
// cache, provider routing, and output sanitization.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/plywoodstudio/faqbot/internal/cache"
	"github.com/plywoodstudio/faqbot/internal/gate"
	"github.com/plywoodstudio/faqbot/internal/metrics"
	"github.com/plywoodstudio/faqbot/internal/router"
	"github.com/plywoodstudio/faqbot/internal/sanitize"
)

// ErrEmptyQuestion is returned when the question is blank after trimming.
var ErrEmptyQuestion = errors.New("pipeline: empty question")

// refusalMessage is the polite reply for questions the gate rejects.
const refusalMessage = "I'm here to help with questions about plywood, doors, " +
	"laminates, and Plywood Studio's products and services. Please ask me " +
	"something related to our store and I'll be happy to assist."

// apologyMessage is the reply of last resort when every backend failed.
const apologyMessage = "Sorry, I'm having trouble answering right now. Please " +
	"try again in a moment, or reach us via IndiaMART " +
	"(www.indiamart.com/plywoodstudio) for immediate assistance."

// Answer is the pipeline's reply to one question.
type Answer struct {
	Text      string
	Provider  string
	Cached    bool
	Timestamp time.Time
	Elapsed   time.Duration
}

// Pipeline wires the gate, cache, and router into the request flow.
type Pipeline struct {
	gate   *gate.Gate
	store  cache.Store
	router *router.Router
	ttl    time.Duration
	group  singleflight.Group
	now    func() time.Time
}

func New(g *gate.Gate, store cache.Store, r *router.Router, ttl time.Duration) *Pipeline {
	return &Pipeline{
		gate:   g,
		store:  store,
		router: r,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Ask answers one question. Rejected and failed questions still get a
// reply: the gate refusal or the apology of last resort. The only error
// surfaced to callers is ErrEmptyQuestion.
func (p *Pipeline) Ask(ctx context.Context, question, userID string) (Answer, error) {
	start := p.now()
	requestID := uuid.NewString()

	question = strings.TrimSpace(question)
	if question == "" {
		metrics.RecordRequest("error", 0)
		return Answer{}, ErrEmptyQuestion
	}

	log := slog.With("request_id", requestID, "user_id", userID)

	verdict := p.gate.Classify(question)
	if !verdict.Allowed {
		log.Info("question rejected", "rule", verdict.Rule, "match", verdict.Match)
		metrics.RecordGateRejection(verdict.Rule)
		return p.finish(start, Answer{Text: refusalMessage, Provider: "gate"}, "rejected"), nil
	}

	key := cache.Key(question)
	if cached, ok := p.store.Get(ctx, key); ok {
		log.Info("answer served from cache")
		metrics.RecordCacheHit(true)
		return p.finish(start, Answer{Text: cached, Cached: true, Provider: "cache"}, "cached"), nil
	}
	metrics.RecordCacheHit(false)

	// Identical concurrent questions share one provider run. The shared
	// call must outlive whichever caller happened to start it, so it is
	// detached from that caller's cancellation. The router's per-provider
	// timeout still bounds it.
	v, err, _ := p.group.Do(key, func() (any, error) {
		return p.answer(context.WithoutCancel(ctx), key, question)
	})
	if err != nil {
		log.Warn("all providers failed", "error", err)
		return p.finish(start, Answer{Text: apologyMessage, Provider: "none"}, "error"), nil
	}

	res := v.(router.Result)
	log.Info("question answered", "provider", res.Provider)
	metrics.RecordProviderAnswer(res.Provider)
	return p.finish(start, Answer{Text: res.Answer, Provider: res.Provider}, "answered"), nil
}

// answer routes the question and caches the sanitized result. A panic
// anywhere below the router becomes an error so the caller still gets
// the apology reply.
func (p *Pipeline) answer(ctx context.Context, key, question string) (res router.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pipeline panic: %v", rec)
		}
	}()

	res, err = p.router.Route(ctx, question)
	if err != nil {
		return router.Result{}, err
	}

	res.Answer = sanitize.Secure(res.Answer)
	p.store.Set(ctx, key, res.Answer, p.ttl)
	return res, nil
}

func (p *Pipeline) finish(start time.Time, a Answer, outcome string) Answer {
	a.Timestamp = p.now().UTC()
	a.Elapsed = p.now().Sub(start)
	metrics.RecordRequest(outcome, a.Elapsed.Seconds())
	return a
}
