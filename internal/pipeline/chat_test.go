package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/plywoodstudio/faqbot/internal/cache"
	"github.com/plywoodstudio/faqbot/internal/gate"
	"github.com/plywoodstudio/faqbot/internal/provider"
	"github.com/plywoodstudio/faqbot/internal/router"
)

// stubProvider answers every question with a fixed reply.
type stubProvider struct {
	name  string
	reply string
	err   error
	calls int
}

func (s *stubProvider) Name() string                  { return s.name }
func (s *stubProvider) Eligible(question string) bool { return true }

func (s *stubProvider) Answer(ctx context.Context, question string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func newPipeline(providers ...provider.Provider) (*Pipeline, *cache.Memory) {
	store := cache.NewMemory()
	r := router.New(providers, time.Second)
	return New(gate.New(), store, r, 30*time.Minute), store
}

func TestAsk_EmptyQuestion(t *testing.T) {
	p, _ := newPipeline(&stubProvider{name: "any", reply: "x"})
	if _, err := p.Ask(context.Background(), "   ", "u1"); !errors.Is(err, ErrEmptyQuestion) {
		t.Fatalf("Ask() error = %v, want ErrEmptyQuestion", err)
	}
}

func TestAsk_GateRejection(t *testing.T) {
	backend := &stubProvider{name: "backend", reply: "should not run"}
	p, _ := newPipeline(backend)

	got, err := p.Ask(context.Background(), "who is the prime minister", "u1")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got.Provider != "gate" {
		t.Errorf("Provider = %q, want gate", got.Provider)
	}
	if !strings.Contains(got.Text, "plywood") {
		t.Errorf("refusal text = %q", got.Text)
	}
	if backend.calls != 0 {
		t.Errorf("backend called %d times for a rejected question", backend.calls)
	}
}

func TestAsk_AnswerAndCache(t *testing.T) {
	backend := &stubProvider{name: "backend", reply: "Marine plywood handles moisture well."}
	p, _ := newPipeline(backend)
	ctx := context.Background()

	first, err := p.Ask(ctx, "tell me about marine plywood", "u1")
	if err != nil {
		t.Fatalf("first Ask() error = %v", err)
	}
	if first.Cached || first.Provider != "backend" {
		t.Errorf("first answer = %+v", first)
	}

	second, err := p.Ask(ctx, "tell me about marine plywood", "u2")
	if err != nil {
		t.Fatalf("second Ask() error = %v", err)
	}
	if !second.Cached {
		t.Error("second answer should come from cache")
	}
	if second.Text != first.Text {
		t.Errorf("cached text = %q, want %q", second.Text, first.Text)
	}
	if backend.calls != 1 {
		t.Errorf("backend calls = %d, want 1", backend.calls)
	}
}

func TestAsk_SanitizesBeforeCaching(t *testing.T) {
	backend := &stubProvider{
		name:  "backend",
		reply: "Call our plywood desk on 9876543210 for marine grade stock today.",
	}
	p, store := newPipeline(backend)
	ctx := context.Background()

	got, err := p.Ask(ctx, "marine plywood stock", "u1")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if strings.Contains(got.Text, "9876543210") {
		t.Errorf("phone number leaked: %q", got.Text)
	}
	if !strings.Contains(got.Text, "[REDACTED_PHONE]") {
		t.Errorf("expected redaction marker, got %q", got.Text)
	}

	cached, ok := store.Get(ctx, cache.Key("marine plywood stock"))
	if !ok {
		t.Fatal("answer not cached")
	}
	if strings.Contains(cached, "9876543210") {
		t.Error("unsanitized answer cached")
	}
}

func TestAsk_ApologyWhenExhausted(t *testing.T) {
	failing := &stubProvider{name: "failing", err: errors.New("backend down")}
	p, store := newPipeline(failing)
	ctx := context.Background()

	got, err := p.Ask(ctx, "tell me about marine plywood", "u1")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got.Provider != "none" {
		t.Errorf("Provider = %q, want none", got.Provider)
	}
	if !strings.Contains(got.Text, "trouble answering") {
		t.Errorf("apology text = %q", got.Text)
	}
	if store.Len() != 0 {
		t.Error("failed request must not be cached")
	}
}

// ctxAwareProvider fails when its context is already dead, like a real
// HTTP-backed provider would.
type ctxAwareProvider struct {
	reply string
}

func (c *ctxAwareProvider) Name() string           { return "backend" }
func (c *ctxAwareProvider) Eligible(q string) bool { return true }

func (c *ctxAwareProvider) Answer(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return c.reply, nil
}

func TestAsk_SharedCallSurvivesCallerCancellation(t *testing.T) {
	backend := &ctxAwareProvider{reply: "Centuryply BWP boards are in stock at wholesale rates."}
	p, store := newPipeline(backend)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := p.Ask(ctx, "centuryply bwp stock", "u1")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got.Provider != "backend" {
		t.Errorf("Provider = %q, want backend (not the apology path)", got.Provider)
	}
	if _, ok := store.Get(context.Background(), cache.Key("centuryply bwp stock")); !ok {
		t.Error("answer not cached")
	}
}

func TestAsk_ElapsedAndTimestamp(t *testing.T) {
	p, _ := newPipeline(&stubProvider{name: "backend", reply: "Greenply laminates come in many finishes."})

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	p.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls-1) * 100 * time.Millisecond)
	}

	got, err := p.Ask(context.Background(), "greenply laminate finishes", "u1")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got.Timestamp.IsZero() {
		t.Error("zero timestamp")
	}
	if got.Elapsed <= 0 {
		t.Errorf("Elapsed = %v, want > 0", got.Elapsed)
	}
}
