package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func hfResponse(content string) string {
	return fmt.Sprintf(`{"choices":[{"message":{"role":"assistant","content":%q}}]}`, content)
}

func TestHuggingFace_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/models/test-model/") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Errorf("Authorization = %q", got)
		}
		fmt.Fprint(w, hfResponse("Marine plywood uses BWP adhesive."))
	}))
	defer srv.Close()

	c := NewHuggingFaceWithBaseURL("key", "", srv.URL, 0.2, 512)
	got, err := c.Chat(context.Background(), "test-model", "what is marine plywood")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got != "Marine plywood uses BWP adhesive." {
		t.Errorf("Chat() = %q", got)
	}
}

func TestHuggingFace_RetriesWhileModelLoading(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, hfResponse("loaded now"))
	}))
	defer srv.Close()

	c := NewHuggingFaceWithBaseURL("key", "", srv.URL, 0.2, 512)
	got, err := c.Chat(context.Background(), "m", "q")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got != "loaded now" {
		t.Errorf("Chat() = %q", got)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestHuggingFace_AuthFailsFast(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewHuggingFaceWithBaseURL("bad-key", "fallback-model", srv.URL, 0.2, 512)
	_, err := c.Chat(context.Background(), "m", "q")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Chat() error = %v, want ErrUnauthorized", err)
	}
	// No retry and no fallback model attempt on credential failure.
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestHuggingFace_FallbackModelOnNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/models/primary/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, hfResponse("from fallback"))
	}))
	defer srv.Close()

	c := NewHuggingFaceWithBaseURL("key", "backup", srv.URL, 0.2, 512)
	got, err := c.Chat(context.Background(), "primary", "q")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got != "from fallback" {
		t.Errorf("Chat() = %q", got)
	}
}

func TestHuggingFace_GivesUpAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHuggingFaceWithBaseURL("key", "", srv.URL, 0.2, 512)
	if _, err := c.Chat(context.Background(), "m", "q"); err == nil {
		t.Fatal("Chat() = nil error, want failure after exhausted retries")
	}
}

func TestNewHuggingFace_NilWithoutKey(t *testing.T) {
	if c := NewHuggingFace("", "fb", 0.2, 512); c != nil {
		t.Error("NewHuggingFace(\"\") should return nil")
	}
}

func TestNewOpenAI_NilWithoutKey(t *testing.T) {
	if c := NewOpenAI("", 0.2, 512); c != nil {
		t.Error("NewOpenAI(\"\") should return nil")
	}
}
