package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lower-cases", "Los Angeles Lakers", "los angeles lakers"},
		{"drops punctuation", "St. Louis Blues!", "st louis blues"},
		{"collapses whitespace", "  New   York\tKnicks \n", "new york knicks"},
		{"keeps digits", "76ers", "76ers"},
		{"keeps accents", "Montréal Canadiens", "montréal canadiens"},
		{"only punctuation", "--!!", ""},
		{"apostrophe joins", "Men's Singles", "mens singles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Pittsburgh Penguins",
		"  A.  B.   C. ",
		"Roland-Garros",
		"São Paulo F.C.",
		"\t\n",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize should be idempotent for %q", in)
	}
}

func TestSameName(t *testing.T) {
	assert.True(t, sameName("Los Angeles Lakers", "los angeles lakers."))
	assert.False(t, sameName("", ""), "Empty names should never match")
	assert.False(t, sameName("Lakers", "Los Angeles Lakers"))
}
