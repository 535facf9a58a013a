package token_test

import (
	"errors"
	"testing"

	"github.com/agentflare-ai/subdoc/token"
)

type recorder struct {
	events []string
}

func (r *recorder) OnEvent(t *token.Tokenizer, action token.Action, st *token.State, at int) error {
	r.events = append(r.events, action.String()+":"+st.Kind.String())
	return nil
}

func feed(t *testing.T, doc string) (*recorder, error) {
	t.Helper()
	r := &recorder{}
	tok := token.New(r)
	if err := tok.Feed([]byte(doc)); err != nil {
		return r, err
	}
	return r, tok.Finish()
}

func TestTokenizerShapes(t *testing.T) {
	testCases := []struct {
		name       string
		doc        string
		wantPushes int // including the synthetic root
		wantErr    bool
	}{
		{name: "empty object", doc: `{}`, wantPushes: 2},
		{name: "empty array", doc: `[]`, wantPushes: 2},
		{name: "flat object", doc: `{"a":1,"b":"c"}`, wantPushes: 6},
		{name: "nested", doc: `{"a":[1,2,{"b":true}]}`, wantPushes: 9},
		{name: "bare number", doc: `42`, wantPushes: 2},
		{name: "bare string", doc: `"hi"`, wantPushes: 2},
		{name: "bare null", doc: `null`, wantPushes: 2},
		{name: "trailing garbage", doc: `{}x`, wantErr: true},
		{name: "bad literal", doc: `nul`, wantErr: true},
		{name: "lone minus", doc: `-`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := feed(t, tc.doc)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got none", tc.doc)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.doc, err)
			}
			pushes, pops := 0, 0
			for _, e := range r.events {
				if e[:4] == "push" {
					pushes++
				} else {
					pops++
				}
			}
			if pushes != tc.wantPushes {
				t.Fatalf("doc %q: got %d pushes %v, want %d", tc.doc, pushes, r.events, tc.wantPushes)
			}
			// Every push except the synthetic root frame is matched by a
			// pop: Finish never closes the root itself.
			if pops != pushes-1 {
				t.Fatalf("doc %q: got %d pops, want %d (pushes-1)", tc.doc, pops, pushes-1)
			}
		})
	}
}

func TestUnterminatedContainerNotAnError(t *testing.T) {
	if _, err := feed(t, `{"a":1`); err != nil {
		t.Fatalf("an open container at Finish should not be a hard error, got %v", err)
	}
}

func TestFeedAcrossCalls(t *testing.T) {
	r := &recorder{}
	tok := token.New(r)
	chunks := []string{`{"a":`, `12`, `3,"b":`, `[1,2`, `,3]}`}
	for _, c := range chunks {
		if err := tok.Feed([]byte(c)); err != nil {
			t.Fatalf("Feed(%q): %v", c, err)
		}
	}
	if err := tok.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if len(r.events) == 0 {
		t.Fatal("expected events from a chunked feed")
	}
}

func TestSuppressPrunesSubtree(t *testing.T) {
	deeper := 0
	h := token.HandlerFunc(func(t *token.Tokenizer, action token.Action, st *token.State, at int) error {
		if action == token.ActionPush && st.Level == 1 {
			t.Suppress()
		}
		if st.Level > 1 {
			deeper++
		}
		return nil
	})
	tok := token.New(h)
	if err := tok.Feed([]byte(`{"a":[1,2,3]}`)); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if err := tok.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if deeper != 0 {
		t.Fatalf("got %d events below the suppressed frame, want 0", deeper)
	}
}

func TestMaxDepth(t *testing.T) {
	doc := ""
	for i := 0; i < 3000; i++ {
		doc += "["
	}
	h := token.HandlerFunc(func(t *token.Tokenizer, action token.Action, st *token.State, at int) error { return nil })
	tok := token.New(h)
	err := tok.Feed([]byte(doc))
	if !errors.Is(err, token.ErrMaxDepth) {
		t.Fatalf("got err %v, want ErrMaxDepth", err)
	}
}

func TestResetAllowsReuse(t *testing.T) {
	r := &recorder{}
	tok := token.New(r)
	if err := tok.Feed([]byte(`{}`)); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if err := tok.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	tok.Reset()
	r.events = nil
	if err := tok.Feed([]byte(`[1,2]`)); err != nil {
		t.Fatalf("Feed after reset: %v", err)
	}
	if err := tok.Finish(); err != nil {
		t.Fatalf("Finish after reset: %v", err)
	}
	if len(r.events) == 0 {
		t.Fatal("expected events after reset")
	}
}
