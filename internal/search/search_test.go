package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStripHTML(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text stays", "plain text stays"},
		{"<b>marine</b> plywood is waterproof", "marine plywood is waterproof"},
		{"thickness &amp; grade", "thickness & grade"},
		{"  padded  ", "padded"},
	}
	for _, tc := range cases {
		if got := stripHTML(tc.in); got != tc.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSerper_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-API-KEY"); got != "key" {
			t.Errorf("X-API-KEY = %q", got)
		}
		fmt.Fprint(w, `{
			"answerBox": {"answer": "18mm is the standard thickness", "title": "Plywood thickness"},
			"organic": [
				{"title": "Marine grade", "snippet": "BWP <b>marine</b> plywood", "link": "https://example.com/a"},
				{"title": "Empty", "snippet": "", "link": "https://example.com/b"},
				{"title": "Commercial", "snippet": "MR grade for interiors", "link": "https://example.com/c"}
			]
		}`)
	}))
	defer srv.Close()

	s := NewSerperWithEndpoint("key", srv.URL)
	got, err := s.Search(context.Background(), "plywood thickness", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Source != "answer box" || got[0].Text != "18mm is the standard thickness" {
		t.Errorf("answer box snippet = %+v", got[0])
	}
	if got[1].Text != "BWP marine plywood" {
		t.Errorf("snippet markup not stripped: %q", got[1].Text)
	}
	if got[2].Title != "Commercial" {
		t.Errorf("empty snippet not skipped, got %+v", got[2])
	}
}

func TestSerper_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewSerperWithEndpoint("key", srv.URL)
	if _, err := s.Search(context.Background(), "q", 3); err == nil {
		t.Fatal("Search() = nil error, want failure on 403")
	}
}

func TestNewSerper_NilWithoutKey(t *testing.T) {
	if s := NewSerper(""); s != nil {
		t.Error("NewSerper(\"\") should return nil")
	}
}

func TestDuckDuckGo_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "what is bwp plywood" {
			t.Errorf("query = %q", got)
		}
		fmt.Fprint(w, `{
			"Heading": "BWP plywood",
			"Abstract": "Boiling waterproof plywood bonded with phenolic resin.",
			"AbstractURL": "https://example.com/bwp",
			"RelatedTopics": [
				{"Text": "short", "FirstURL": "https://example.com/s"},
				{"Text": "Marine plywood is a related waterproof grade used in wet areas.", "FirstURL": "https://example.com/m"}
			]
		}`)
	}))
	defer srv.Close()

	d := NewDuckDuckGoWithEndpoint(srv.URL)
	got, err := d.Search(context.Background(), "what is bwp plywood", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (abstract plus one long-enough topic)", len(got))
	}
	if got[0].Title != "BWP plywood" {
		t.Errorf("first snippet = %+v", got[0])
	}
}

func TestDuckDuckGo_EmptyAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Abstract": "", "RelatedTopics": []}`)
	}))
	defer srv.Close()

	d := NewDuckDuckGoWithEndpoint(srv.URL)
	got, err := d.Search(context.Background(), "q", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

// stubSearcher returns fixed snippets or an error, counting calls.
type stubSearcher struct {
	snippets []Snippet
	err      error
	calls    int
}

func (s *stubSearcher) Search(ctx context.Context, query string, limit int) ([]Snippet, error) {
	s.calls++
	return s.snippets, s.err
}

func TestChain_PrimaryWins(t *testing.T) {
	primary := &stubSearcher{snippets: []Snippet{{Title: "p", Text: "primary result"}}}
	fallback := &stubSearcher{snippets: []Snippet{{Title: "f", Text: "fallback result"}}}

	got, err := NewChain(primary, fallback).Search(context.Background(), "plywood grades", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "p" {
		t.Errorf("Search() = %v, want the primary snippet", got)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback calls = %d, want 0", fallback.calls)
	}
}

func TestChain_FallsBackOnError(t *testing.T) {
	primary := &stubSearcher{err: errors.New("403 forbidden")}
	fallback := &stubSearcher{snippets: []Snippet{{Title: "f", Text: "fallback result"}}}

	got, err := NewChain(primary, fallback).Search(context.Background(), "plywood grades", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "f" {
		t.Errorf("Search() = %v, want the fallback snippet", got)
	}
}

func TestChain_FallsBackOnEmpty(t *testing.T) {
	primary := &stubSearcher{}
	fallback := &stubSearcher{snippets: []Snippet{{Title: "f", Text: "fallback result"}}}

	got, err := NewChain(primary, fallback).Search(context.Background(), "plywood grades", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "f" {
		t.Errorf("Search() = %v, want the fallback snippet", got)
	}
	if primary.calls != 1 {
		t.Errorf("primary calls = %d, want 1", primary.calls)
	}
}

func TestChain_BothFail(t *testing.T) {
	primary := &stubSearcher{err: errors.New("primary down")}
	fallback := &stubSearcher{err: errors.New("fallback down")}

	if _, err := NewChain(primary, fallback).Search(context.Background(), "plywood grades", 5); err == nil {
		t.Fatal("Search() = nil error when both backends fail")
	}
}
