package extract

import (
	"strings"
	"testing"
)

const (
	simpleHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Deneme Makalesi</title>
</head>
<body>
    <header>
        <h1>Site Başlığı</h1>
        <nav>Gezinti</nav>
    </header>
    <main>
        <article>
            <h1>Doğal Dil İşleme Nedir</h1>
            <p>Doğal dil işleme, bilgisayarların insan dilini anlamasını ve üretmesini sağlayan bir alandır. Metinler sayısal özelliklere dönüştürülür.</p>
            <p>Bu ikinci paragrafta <strong>kalın metin</strong> ve <em>eğik metin</em> bulunur.</p>
            <ul>
                <li>Birinci liste öğesi</li>
                <li>İkinci liste öğesi</li>
            </ul>
        </article>
    </main>
    <aside>
        <p>Bu yan panel içeriği ayıklanmalıdır.</p>
    </aside>
    <footer>
        <p>Alt bilgi içeriği</p>
    </footer>
</body>
</html>`

	corpusPageHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Derlem Notları</title>
</head>
<body>
    <div class="container">
        <header class="site-header">
            <h1>Notlarım</h1>
        </header>
        <div class="content">
            <article class="post">
                <h2>Bir Metin Derlemi Nasıl Hazırlanır</h2>
                <p class="meta">12 Mart 2024 tarihinde yayımlandı</p>
                <div class="post-content">
                    <p>İyi bir derlem, <strong>temizlenmiş metinlerden</strong> oluşur ve tekrarları içermez.</p>
                    <h3>Kaynaklar</h3>
                    <ul>
                        <li>Haber arşivleri (izinli olanlar)</li>
                        <li>Ansiklopedi maddeleri</li>
                        <li>Kamuya açık kitaplar</li>
                    </ul>
                    <h3>Adımlar</h3>
                    <ol>
                        <li>Metinleri topla ve kodlamayı düzelt</li>
                        <li>Kısa ve bozuk satırları ayıkla</li>
                        <li>Tekrar eden belgeleri sil</li>
                    </ol>
                    <blockquote>
                        <p>Kalite, nicelikten önce gelir!</p>
                    </blockquote>
                </div>
            </article>
        </div>
        <aside class="sidebar">
            <h3>İlgili Yazılar</h3>
            <ul>
                <li><a href="#">Kök bulma yöntemleri</a></li>
                <li><a href="#">Türkçe büyük harf sorunları</a></li>
            </ul>
        </aside>
    </div>
</body>
</html>`

	malformedHTML = `<html>
<body>
    <div class="content">
        <h1>Kapanmamış Başlık
        <p>Kapanış etiketi olmayan paragraf
        <div class="nested">
            <span>Biraz metin</span>
        </div>
    </div>
</body>`
)

func TestSelectHTML(t *testing.T) {
	tests := []struct {
		name        string
		html        string
		selector    string
		includeAll  bool
		expectError bool
		want        string
		contains    []string
		notContains []string
	}{
		{
			name:        "main content drops page chrome",
			html:        simpleHTML,
			contains:    []string{"Doğal Dil İşleme Nedir", "insan dilini", "Birinci liste öğesi"},
			notContains: []string{"Site Başlığı", "Gezinti", "yan panel", "Alt bilgi"},
		},
		{
			name:        "main content of a notes page",
			html:        corpusPageHTML,
			contains:    []string{"Nasıl Hazırlanır", "temizlenmiş metinlerden", "Kaynaklar"},
			notContains: []string{"Notlarım", "İlgili Yazılar"},
		},
		{
			name:     "selector wraps every match in its tag",
			html:     corpusPageHTML,
			selector: "h3",
			contains: []string{"<h3>Kaynaklar</h3>", "<h3>Adımlar</h3>", "<h3>İlgili Yazılar</h3>"},
		},
		{
			name:        "selector overrides include all",
			html:        simpleHTML,
			selector:    "aside",
			includeAll:  true,
			contains:    []string{"<aside>", "yan panel"},
			notContains: []string{"Gezinti", "insan dilini"},
		},
		{
			name:       "include all returns the document unchanged",
			html:       simpleHTML,
			includeAll: true,
			want:       simpleHTML,
		},
		{
			name:     "malformed HTML with selector",
			html:     malformedHTML,
			selector: ".content",
			contains: []string{"Kapanmamış Başlık", "Kapanış etiketi olmayan", "Biraz metin"},
		},
		{
			name:        "non-existent selector",
			html:        simpleHTML,
			selector:    ".non-existent",
			expectError: true,
		},
		{
			name:        "invalid selector",
			html:        simpleHTML,
			selector:    ">>invalid<<",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectHTML(strings.NewReader(tt.html), tt.selector, tt.includeAll)
			if tt.expectError {
				if err == nil {
					t.Errorf("selectHTML() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("selectHTML() unexpected error: %v", err)
			}

			if tt.want != "" && got != tt.want {
				t.Errorf("selectHTML() = %q, want %q", got, tt.want)
			}
			for _, expected := range tt.contains {
				if !strings.Contains(got, expected) {
					t.Errorf("selectHTML() should contain %q.\nResult: %s", expected, got)
				}
			}
			for _, notExpected := range tt.notContains {
				if strings.Contains(got, notExpected) {
					t.Errorf("selectHTML() should not contain %q.\nResult: %s", notExpected, got)
				}
			}
		})
	}
}

// TestRenderings checks that ToText and ToMarkdown render the same selection,
// one as plain lines and one with Markdown markup.
func TestRenderings(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		text     string
		markdown []string // any one of these must appear
	}{
		{
			name:     "heading",
			body:     `<h1>Başlık</h1><p>Gövde metni.</p>`,
			text:     "Başlık\nGövde metni.",
			markdown: []string{"# Başlık", "Başlık\n="},
		},
		{
			name:     "unordered list",
			body:     `<ul><li>Öğe 1</li><li>Öğe 2</li></ul>`,
			text:     "Öğe 1\nÖğe 2",
			markdown: []string{"- Öğe 1", "* Öğe 1"},
		},
		{
			name:     "ordered list",
			body:     `<ol><li>Birinci</li><li>İkinci</li></ol>`,
			text:     "Birinci\nİkinci",
			markdown: []string{"1. Birinci"},
		},
		{
			name:     "emphasis",
			body:     `<p>Bu <strong>kalın</strong> ve <em>eğik</em> yazıdır.</p>`,
			text:     "Bu kalın ve eğik yazıdır.",
			markdown: []string{"**kalın**", "__kalın__"},
		},
		{
			name:     "blockquote",
			body:     `<blockquote><p>Bu, derlem temizliği üzerine bir alıntıdır.</p></blockquote>`,
			text:     "Bu, derlem temizliği üzerine bir alıntıdır.",
			markdown: []string{"> Bu, derlem temizliği"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := "<html><body>" + tt.body + "</body></html>"

			text, err := ToText(strings.NewReader(page), "body", false)
			if err != nil {
				t.Fatalf("ToText() unexpected error: %v", err)
			}
			if text != tt.text {
				t.Errorf("ToText() = %q, want %q", text, tt.text)
			}

			markdown, err := ToMarkdown(strings.NewReader(page), "body", false)
			if err != nil {
				t.Fatalf("ToMarkdown() unexpected error: %v", err)
			}
			found := false
			for _, marker := range tt.markdown {
				if strings.Contains(markdown, marker) {
					found = true
				}
			}
			if !found {
				t.Errorf("ToMarkdown() = %q, want one of %q", markdown, tt.markdown)
			}
			if strings.Contains(markdown, "<") {
				t.Errorf("ToMarkdown() left raw HTML in %q", markdown)
			}
		})
	}
}

func TestToMarkdownErrors(t *testing.T) {
	if _, err := ToMarkdown(strings.NewReader(simpleHTML), ".non-existent", false); err == nil {
		t.Errorf("ToMarkdown() with unmatched selector expected error but got none")
	}

	for _, blank := range []string{"", "   \n\t   "} {
		got, err := ToMarkdown(strings.NewReader(blank), "", false)
		if err != nil {
			t.Fatalf("ToMarkdown(%q) unexpected error: %v", blank, err)
		}
		if strings.TrimSpace(got) != "" {
			t.Errorf("ToMarkdown(%q) = %q, want empty", blank, got)
		}
	}
}

func TestToText(t *testing.T) {
	tests := []struct {
		name        string
		html        string
		selector    string
		includeAll  bool
		expectError bool
		want        string
		contains    []string
		notContains []string
	}{
		{
			name:        "main content extraction",
			html:        simpleHTML,
			contains:    []string{"insan dilini anlamasını", "kalın metin ve eğik metin", "Birinci liste öğesi"},
			notContains: []string{"Gezinti", "yan panel", "Alt bilgi", "<p>"},
		},
		{
			name:     "selector keeps block boundaries",
			html:     corpusPageHTML,
			selector: "ul",
			contains: []string{"Haber arşivleri (izinli olanlar)\nAnsiklopedi maddeleri\nKamuya açık kitaplar"},
		},
		{
			name:       "include all keeps page chrome",
			html:       simpleHTML,
			includeAll: true,
			contains:   []string{"Site Başlığı", "Gezinti", "Alt bilgi içeriği"},
		},
		{
			name:     "line breaks and whitespace collapse",
			html:     `<html><body><div>Birinci   satır<br>İkinci		satır</div></body></html>`,
			selector: "div",
			want:     "Birinci satır\nİkinci satır",
		},
		{
			name:        "non-existent selector",
			html:        simpleHTML,
			selector:    ".non-existent",
			expectError: true,
		},
		{
			name: "empty HTML",
			html: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ToText(strings.NewReader(tt.html), tt.selector, tt.includeAll)
			if tt.expectError {
				if err == nil {
					t.Errorf("ToText() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("ToText() unexpected error: %v", err)
			}

			if tt.contains == nil && result != tt.want {
				t.Errorf("ToText() = %q, want %q", result, tt.want)
			}
			for _, expected := range tt.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("ToText() result should contain %q but doesn't.\nResult: %s", expected, result)
				}
			}
			for _, notExpected := range tt.notContains {
				if strings.Contains(result, notExpected) {
					t.Errorf("ToText() result should not contain %q but does.\nResult: %s", notExpected, result)
				}
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name: "html with url and extra spaces",
			input: `
    <html>
    <p>Bu bir <b>örnek</b> metindir. http://example.com link var.</p>
    <p>Çoklu     boşluk    ve    gereksiz       karakterler!!!</p>
    </html>
    `,
			want: "Bu bir örnek metindir. link var.\nÇoklu boşluk ve gereksiz karakterler!!!",
		},
		{
			name:  "entities decoded before tags are stripped",
			input: "Fiyat &lt;b&gt;100&lt;/b&gt; TL (KDV dahil) &quot;net&quot;",
			want:  `Fiyat 100 TL (KDV dahil) "net"`,
		},
		{
			name:  "special characters removed",
			input: "Fiyat 5€ oldu #haber @kullanıcı ★★ 日本 metni , burada .",
			want:  "Fiyat 5 oldu haber kullanıcı metni , burada .",
		},
		{
			name:  "letters outside the Turkish alphabet removed",
			input: "Café ve naïve kelimeleri & işaretler: [a] {b} 'c' - son",
			want:  "Caf ve nave kelimeleri işaretler: [a] {b} 'c' - son",
		},
		{
			name:  "non-breaking spaces collapse",
			input: "Bir\u00a0\u00a0iki\tüç   dört beş",
			want:  "Bir iki üç dört beş",
		},
		{
			name:  "repeated characters squeezed",
			input: "Çooooook güzel bir gün!!!!!",
			want:  "Çook güzel bir gün!!",
		},
		{
			name:  "short lines dropped",
			input: "kısa satır\n\n\nBu satır yeterince uzundur.\nevet",
			want:  "Bu satır yeterince uzundur.",
		},
		{
			name:  "eleven characters kept",
			input: "abcdefghijk\nabcdefghij",
			want:  "abcdefghijk",
		},
		{
			name:  "https link removed",
			input: "Kaynak: https://tr.wikipedia.org/wiki/Türkçe adresinde.",
			want:  "Kaynak: adresinde.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.want {
				t.Errorf("CleanText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "space before punctuation removed",
			input: "Türkçe'de noktalama işaretleri önemli !",
			want:  "Türkçe'de noktalama işaretleri önemli!",
		},
		{
			name:  "space added after punctuation",
			input: "Birinci cümle.İkinci cümle,üçüncü parça;son",
			want:  "Birinci cümle. İkinci cümle, üçüncü parça; son",
		},
		{
			name:  "multiple spaces collapsed",
			input: "Bu   metinde    çok   boşluk    var",
			want:  "Bu metinde çok boşluk var",
		},
		{
			name:  "lines trimmed",
			input: "  birinci satır  \n   ikinci satır ",
			want:  "birinci satır\nikinci satır",
		},
		{
			name:  "blank line runs collapsed",
			input: "paragraf bir\n\n\n\nparagraf iki",
			want:  "paragraf bir\n\nparagraf iki",
		},
		{
			name:  "punctuation at line end gets no trailing space",
			input: "Satır sonu .\nYeni satır !",
			want:  "Satır sonu.\nYeni satır!",
		},
		{
			name:  "ellipsis spaced out",
			input: "Bekle...tamam",
			want:  "Bekle. . . tamam",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}
