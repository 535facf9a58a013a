package path_test

import (
	"testing"

	"github.com/agentflare-ai/subdoc/path"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name        string
		selector    string
		want        []path.Component
		hasNegative bool
		wantErr     bool
	}{
		{name: "root", selector: "", want: nil},
		{
			name:     "single key",
			selector: "a",
			want:     []path.Component{{Kind: path.ObjectKey, Key: "a"}},
		},
		{
			name:     "dotted path",
			selector: "a.b.c",
			want: []path.Component{
				{Kind: path.ObjectKey, Key: "a"},
				{Kind: path.ObjectKey, Key: "b"},
				{Kind: path.ObjectKey, Key: "c"},
			},
		},
		{
			name:     "array index",
			selector: "a[3]",
			want: []path.Component{
				{Kind: path.ObjectKey, Key: "a"},
				{Kind: path.ArrayIndex, Index: 3},
			},
		},
		{
			name:        "negative array index",
			selector:    "a[-2]",
			hasNegative: true,
			want: []path.Component{
				{Kind: path.ObjectKey, Key: "a"},
				{Kind: path.ArrayIndex, Index: -2},
			},
		},
		{
			name:        "last child marker",
			selector:    "a[-1]",
			hasNegative: true,
			want: []path.Component{
				{Kind: path.ObjectKey, Key: "a"},
				{Kind: path.LastChild},
			},
		},
		{
			name:     "json pointer style",
			selector: "/a/b/3",
			want: []path.Component{
				{Kind: path.ObjectKey, Key: "a"},
				{Kind: path.ObjectKey, Key: "b"},
				{Kind: path.ArrayIndex, Index: 3},
			},
		},
		{
			name:        "json pointer last marker",
			selector:    "/a/-",
			hasNegative: true,
			want: []path.Component{
				{Kind: path.ObjectKey, Key: "a"},
				{Kind: path.LastChild},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := path.Parse(tc.selector)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.selector)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.selector, err)
			}
			if len(p.Components) != len(tc.want) {
				t.Fatalf("Parse(%q) = %+v, want %+v", tc.selector, p.Components, tc.want)
			}
			for i, c := range p.Components {
				if c != tc.want[i] {
					t.Fatalf("Parse(%q) component %d = %+v, want %+v", tc.selector, i, c, tc.want[i])
				}
			}
			if p.HasNegative != tc.hasNegative {
				t.Fatalf("Parse(%q) HasNegative = %v, want %v", tc.selector, p.HasNegative, tc.hasNegative)
			}
		})
	}
}

func TestPathString(t *testing.T) {
	p, err := path.Parse("a.b[3]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := p.String(); got != "a.b[3]" {
		t.Fatalf("String() = %q, want %q", got, "a.b[3]")
	}
}
