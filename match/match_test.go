package match_test

import (
	"testing"

	"github.com/agentflare-ai/subdoc/match"
	"github.com/agentflare-ai/subdoc/path"
	"github.com/agentflare-ai/subdoc/token"
)

func mustParse(t *testing.T, selector string) path.Path {
	t.Helper()
	p, err := path.Parse(selector)
	if err != nil {
		t.Fatalf("path.Parse(%q): %v", selector, err)
	}
	return p
}

func run(t *testing.T, doc, selector string) match.Match {
	t.Helper()
	p := mustParse(t, selector)
	var m match.Match
	var err error
	if p.HasNegative {
		m, err = match.ExecNegIndex(p, []byte(doc))
	} else {
		m, err = match.NewEngine(p, []byte(doc)).Exec()
	}
	if err != nil {
		t.Fatalf("Exec(%q, %q): %v", doc, selector, err)
	}
	return m
}

func spanText(doc string, l match.Loc) string {
	return doc[l.Begin:l.End()]
}

func TestEngineComplete(t *testing.T) {
	testCases := []struct {
		name     string
		doc      string
		selector string
		want     string
	}{
		{name: "root", doc: `{"a":1}`, selector: "", want: `{"a":1}`},
		{name: "object member", doc: `{"a":1,"b":2}`, selector: "a", want: `1`},
		{name: "nested member", doc: `{"a":{"b":"c"}}`, selector: "a.b", want: `"c"`},
		{name: "array element", doc: `[10,20,30]`, selector: "[1]", want: `20`},
		{name: "array of objects", doc: `[{"x":1},{"x":2}]`, selector: "[1].x", want: `2`},
		{name: "last element", doc: `[1,2,3]`, selector: "[-1]", want: `3`},
		{name: "negative index", doc: `[1,2,3]`, selector: "[-2]", want: `2`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := run(t, tc.doc, tc.selector)
			if m.Result != match.Complete {
				t.Fatalf("Result = %v, want Complete", m.Result)
			}
			if got := spanText(tc.doc, m.LocMatch); got != tc.want {
				t.Fatalf("matched span = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEngineNoMatch(t *testing.T) {
	m := run(t, `{"a":1,"b":2}`, "c")
	if m.Result != match.NoMatch {
		t.Fatalf("Result = %v, want NoMatch", m.Result)
	}
	if !m.ImmediateParentFound {
		t.Fatal("ImmediateParentFound = false, want true")
	}
	if got := spanText(`{"a":1,"b":2}`, m.LocParent); got != `{"a":1,"b":2}` {
		t.Fatalf("LocParent = %q, want whole object", got)
	}
}

func TestEngineTypeMismatch(t *testing.T) {
	m := run(t, `{"a":5}`, "a[0]")
	if m.Result != match.TypeMismatch {
		t.Fatalf("Result = %v, want TypeMismatch", m.Result)
	}
}

func TestEngineNumericCapture(t *testing.T) {
	m := run(t, `{"count":42}`, "count")
	if m.Result != match.Complete {
		t.Fatalf("Result = %v, want Complete", m.Result)
	}
	if m.Type != token.KindSpecial || !m.SFlags.IsInteger() {
		t.Fatalf("Type/SFlags = %v/%v, want an integer special", m.Type, m.SFlags)
	}
	if !m.NumValid || m.NumVal != 42 {
		t.Fatalf("NumVal = %d (valid=%v), want 42", m.NumVal, m.NumValid)
	}
}

func TestEngineKeyLoc(t *testing.T) {
	doc := `{"name":"x"}`
	m := run(t, doc, "name")
	if !m.HasKey {
		t.Fatal("HasKey = false, want true")
	}
	if got := spanText(doc, m.LocKey); got != `"name"` {
		t.Fatalf("LocKey = %q, want %q", got, `"name"`)
	}
}

func TestUniqueCheck(t *testing.T) {
	doc := []byte(`[1,2,"three"]`)
	m := run(t, string(doc), "")
	if m.Result != match.Complete {
		t.Fatalf("Result = %v, want Complete", m.Result)
	}
	if got := match.UniqueCheck(doc, m.LocMatch, []byte(`2`)); got != match.UniqueFound {
		t.Fatalf("UniqueCheck(2) = %v, want UniqueFound", got)
	}
	if got := match.UniqueCheck(doc, m.LocMatch, []byte(`4`)); got != match.UniqueNotFound {
		t.Fatalf("UniqueCheck(4) = %v, want UniqueNotFound", got)
	}
	if got := match.UniqueCheck(doc, m.LocMatch, []byte(`"three"`)); got != match.UniqueFound {
		t.Fatalf(`UniqueCheck("three") = %v, want UniqueFound`, got)
	}
}

func TestUniqueCheckNonPrimitiveSibling(t *testing.T) {
	doc := []byte(`["value",1,"1",[]]`)
	m := run(t, string(doc), "")
	if m.Result != match.Complete {
		t.Fatalf("Result = %v, want Complete", m.Result)
	}
	if got := match.UniqueCheck(doc, m.LocMatch, []byte(`2`)); got != match.UniqueNonPrimitive {
		t.Fatalf("UniqueCheck(2) = %v, want UniqueNonPrimitive", got)
	}
}

func TestCountSiblings(t *testing.T) {
	doc := []byte(`[1,2,3,4]`)
	m := run(t, string(doc), "")
	if got := match.CountSiblings(doc, m.LocMatch); got != 4 {
		t.Fatalf("CountSiblings = %d, want 4", got)
	}
}
