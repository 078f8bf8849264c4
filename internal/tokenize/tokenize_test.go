package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty string", "", []string{}},
		{"whitespace only", "  \n\t ", []string{}},
		{"punctuation only", "... !? ,;", []string{}},
		{"simple words", "Hello, world!", []string{"Hello", "world"}},
		{"underscores and digits", "test_123 hello-world", []string{"test_123", "hello", "world"}},
		{"turkish letters", "Çiçek bahçede açtı.", []string{"Çiçek", "bahçede", "açtı"}},
		{"apostrophe splits", "Türkiye'nin başkenti", []string{"Türkiye", "nin", "başkenti"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.text))
		})
	}
}

func TestTerms(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts Options
		want []string
	}{
		{"empty string", "", Options{}, []string{}},
		{"lowercases", "Çiçek BAHÇE çiçek", Options{}, []string{"çiçek", "bahçe", "çiçek"}},
		{"default casing of dotless capital", "IŞIK", Options{}, []string{"işik"}},
		{"turkish casing of dotless capital", "IŞIK", Options{Language: "tr"}, []string{"ışık"}},
		{"turkish casing of dotted capital", "İstanbul", Options{Language: "tr"}, []string{"istanbul"}},
		{"english stemming", "Running runners", Options{Stem: "english"}, []string{"run", "runner"}},
		{"final sigma at word end", "ΟΔΟΣ ΟΣ", Options{}, []string{"οδος", "ος"}},
		{"sigma at word start or alone", "ΣΟ Σ", Options{}, []string{"σο", "σ"}},
		{"sigma forms stay distinct", "ΟΔΟΣ οδοσ", Options{}, []string{"οδος", "οδοσ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Terms(tt.text, tt.opts))
		})
	}
}

func TestTermSet(t *testing.T) {
	set := TermSet("dil işleme DİL dil", Options{Language: "tr"})
	assert.Len(t, set, 2)
	assert.Contains(t, set, "dil")
	assert.Contains(t, set, "işleme")

	assert.Empty(t, TermSet("", Options{}))
}

func TestOptionsValidate(t *testing.T) {
	require.NoError(t, Options{}.Validate())
	require.NoError(t, Options{Language: "tr", Stem: "english"}.Validate())
	assert.Error(t, Options{Stem: "klingon"}.Validate())
	assert.Error(t, Options{Language: "not a tag!"}.Validate())
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty string", "", []string{""}},
		{"no terminator", "tek parça", []string{"tek parça"}},
		{"trailing terminator", "Bir cümle.", []string{"Bir cümle", ""}},
		{"runs collapse", "Bir. İki!! Üç?", []string{"Bir", " İki", " Üç", ""}},
		{"ellipsis", "Bekle... Tamam", []string{"Bekle", " Tamam"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sentences(tt.text))
		})
	}
}
