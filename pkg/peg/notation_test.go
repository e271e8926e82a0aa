package peg

import "testing"

func TestParseExprPrecedence(t *testing.T) {
	expr, err := ParseExpr("a, b | c")
	if err != nil {
		t.Fatalf("ParseExpr: %v", err)
	}
	choice, ok := expr.(*Choice)
	if !ok || len(choice.Alternatives) != 2 {
		t.Fatalf("expected two-way choice, got %s", expr)
	}
	if seq, ok := choice.Alternatives[0].(*Sequence); !ok || len(seq.Items) != 2 {
		t.Fatalf("expected sequence as first alternative, got %s", choice.Alternatives[0])
	}
	if ref, ok := choice.Alternatives[1].(*Ref); !ok || ref.Name != "c" {
		t.Fatalf("expected reference to c, got %s", choice.Alternatives[1])
	}
}

func TestParseExprOperators(t *testing.T) {
	cases := map[string]string{
		"[ space ], statements":      "[ space ], statements",
		"{ digit }":                  "{ digit }",
		"newline+":                   "newline+",
		"( a | b )+":                 "( a | b )+",
		"'=>', [ space ], ident":     `"=>", [ space ], ident`,
		"spaceNewlineSpace+ | space": "spaceNewlineSpace+ | space",
	}
	for src, want := range cases {
		expr, err := ParseExpr(src)
		if err != nil {
			t.Fatalf("ParseExpr(%q): %v", src, err)
		}
		if got := expr.String(); got != want {
			t.Fatalf("ParseExpr(%q).String() = %q, want %q", src, got, want)
		}
	}
}

func TestParseExprErrors(t *testing.T) {
	for _, src := range []string{"", "a,", "[ a", "{ a ]", "'open", "a | | b", "''"} {
		if _, err := ParseExpr(src); err == nil {
			t.Fatalf("expected error for %q", src)
		}
	}
}
