package token

import (
	"reflect"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"short words dropped", "AI is ok", []string{}},
		{"lowercase", "Scaling a SaaS Business", []string{"scaling", "saas", "business"}},
		{"internal hyphen kept", "a business-model shift", []string{"business-model", "shift"}},
		{"edge hyphens trimmed", "--growth- -- -x-", []string{"growth"}},
		{"punctuation splits", "growth,saas;b2b.exit!", []string{"growth", "saas", "b2b", "exit"}},
		{"duplicates kept", "Sales sales SALES", []string{"sales", "sales", "sales"}},
		{"underscore is a word char", "snake_case", []string{"snake_case"}},
		{"digits", "$1,000,000 in 2023", []string{"000", "000", "2023"}},
		{"unicode letters", "Café München", []string{"café", "münchen"}},
		{"rune length not bytes", "été ça", []string{"été"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.text)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestTokenize_Shape(t *testing.T) {
	inputs := []string{
		"Scaling a SaaS Business from $0 to $10M ARR — lessons learned!!",
		"e-commerce, B2B, work-life-balance, -- --- ----",
		"Key Takeaways: 1) hire slow 2) fire fast 3) don't over-raise.",
		"Ünïcödé ÀÉÎ  tabs\tand\nnewlines",
	}

	for _, in := range inputs {
		for _, tok := range Tokenize(in) {
			if utf8.RuneCountInString(tok) < MinLength {
				t.Errorf("token %q shorter than %d", tok, MinLength)
			}
			if tok != strings.ToLower(tok) {
				t.Errorf("token %q not lowercase", tok)
			}
			if strings.HasPrefix(tok, "-") || strings.HasSuffix(tok, "-") {
				t.Errorf("token %q has edge hyphen", tok)
			}
			for _, r := range tok {
				if !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '_' && r != '-' {
					t.Errorf("token %q contains %q", tok, r)
				}
			}
		}
	}
}

func TestUnique(t *testing.T) {
	got := Unique([]string{"sales", "growth", "sales", "saas", "growth"})
	want := []string{"sales", "growth", "saas"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Unique() = %q, want %q", got, want)
	}
	if got := Unique(nil); len(got) != 0 {
		t.Errorf("Unique(nil) = %q", got)
	}
}
