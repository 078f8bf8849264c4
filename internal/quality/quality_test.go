package quality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const goodParagraph = `
        Türkçe doğal dil işleme, bilgisayar biliminin önemli bir alanıdır.
        Yapay zeka ve makine öğrenmesi teknikleri kullanılarak metinler analiz edilir.
        Bu alan, dil modelleri ve sentetik veri üretimi gibi konuları kapsar.
        `

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty", "", 0},
		{"blank", " \n\t  ", 0},
		{"short sentence", "Kısa metin.", 0.528},
		{"two words", "Basit metin.", 0.481},
		{"indented paragraph", goodParagraph, 0.586},
		{"english with capital I", "The quick brown fox jumps over the lazy dog. It was not amused, however; the dog slept on!", 0.607},
		{"no punctuation", "just some words without any punctuation marks at all in this line here", 0.434},
		{"over two thousand characters", strings.Repeat("Bu uzun bir cümledir ve tekrar eder. ", 80), 0.554},
		{"two sentences", "Türkçe doğal dil işleme, bilgisayar biliminin önemli bir alanıdır. Yapay zeka ve makine öğrenmesi teknikleri kullanılarak metinler analiz edilir.", 0.583},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Score(tt.text), "score should be deterministic")
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Breakdown
	}{
		{
			name: "short sentence",
			text: "Kısa metin.",
			want: Breakdown{Length: 0.11, Character: 1.0, Structure: 0, Punctuation: 1.0, Score: 0.528},
		},
		{
			name: "english with capital I",
			text: "The quick brown fox jumps over the lazy dog. It was not amused, however; the dog slept on!",
			want: Breakdown{Length: 0.545, Character: 0.5566666666666666, Structure: 0.88, Punctuation: 0.4444444444444444, Score: 0.607},
		},
		{
			name: "mixed terminators",
			text: "Bir iki üç dört beş altı yedi sekiz dokuz on! On bir on iki? On üç.",
			want: Breakdown{Length: 0.5335, Character: 0.5716417910447761, Structure: 0.58, Punctuation: 0.375, Score: 0.515},
		},
		{
			name: "long repetitive text",
			text: strings.Repeat("Bu uzun bir cümledir ve tekrar eder. ", 80),
			want: Breakdown{Length: 0.9041, Character: 0.3044947617438324, Structure: 0.71975, Punctuation: 0.2857142857142857, Score: 0.554},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.text)
			assert.InDelta(t, tt.want.Length, got.Length, 1e-9, "length")
			assert.InDelta(t, tt.want.Character, got.Character, 1e-9, "character")
			assert.InDelta(t, tt.want.Structure, got.Structure, 1e-9, "structure")
			assert.InDelta(t, tt.want.Punctuation, got.Punctuation, 1e-9, "punctuation")
			assert.Equal(t, tt.want.Score, got.Score)
		})
	}

	assert.Equal(t, Breakdown{}, Evaluate("   "))
}

func TestLengthQuality(t *testing.T) {
	tests := []struct {
		length int
		want   float64
	}{
		{0, 0},
		{25, 0.25},
		{49, 0.49},
		{50, 0.525},
		{1000, 1.0},
		{1500, 0.75},
		{2000, 0.5},
		{2001, 0.9999},
		{7000, 0.5},
		{20000, 0.5},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, lengthQuality(tt.length), 1e-12, "length %d", tt.length)
	}
}

func TestStructureQuality(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"no sentences", "kısa. çok. kısa.", 0},
		{"one sentence of twenty", "abcdefghij abcdefghi", 0.4},
		{"ideal length", strings.Repeat("a", 100) + ".", 1.0},
		{"long sentence", strings.Repeat("a", 400) + ".", 0.5},
		{"very long sentence", strings.Repeat("a", 1000) + ".", 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, structureQuality(tt.text), 1e-12)
		})
	}
}

func TestPunctuationQuality(t *testing.T) {
	assert.Equal(t, 0.5, punctuationQuality(""))
	assert.Equal(t, 0.0, punctuationQuality("hiç noktalama yok"))
	assert.Equal(t, 1.0, punctuationQuality("bir, iki"))
	assert.InDelta(t, 0.5, punctuationQuality("bir iki üç dört."), 1e-12)
}

func TestScorerBonusAlphabet(t *testing.T) {
	text := "plain ascii text without bonus letters"
	withoutBonus := NewScorer("")
	withBonus := NewScorer("x")

	base := withoutBonus.Evaluate(text)
	bonus := withBonus.Evaluate(text)
	assert.InDelta(t, base.Character+0.3, bonus.Character, 1e-12)
	assert.Equal(t, base.Character, Evaluate(text).Character, "default alphabet has no ASCII letters besides I")
}

func TestScoreBounds(t *testing.T) {
	texts := []string{
		"a",
		"!!!",
		strings.Repeat("çğıöşü ", 500),
		strings.Repeat("x", 50000),
		goodParagraph,
	}
	for _, text := range texts {
		score := Score(text)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}

	score := Score(goodParagraph)
	assert.Greater(t, score, 0.4)
	assert.Less(t, score, 1.0)
}
