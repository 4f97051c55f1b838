package dart

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v2"
)

// PhraseCategory tags a scoring phrase with the signal it feeds.
type PhraseCategory string

const (
	// CategoryTitle marks statement-title phrases (손익계산서, income statement).
	CategoryTitle PhraseCategory = "title"
	// CategoryLineItem marks common IFRS line items (매출액, operating profit).
	CategoryLineItem PhraseCategory = "line_item"
	// CategoryFinance marks finance-sector line items (이자수익, fee income).
	// These weigh slightly more so bank/holding filings classify correctly.
	CategoryFinance PhraseCategory = "finance_line_item"
)

// Phrase is one (text, weight, category) scoring entry. The scorer consumes
// these as data; extending or localizing the vocabulary never touches control
// flow.
type Phrase struct {
	Text     string         `yaml:"text"`
	Weight   float64        `yaml:"weight"`
	Category PhraseCategory `yaml:"category"`
}

// Vocabulary is the full keyword set used for candidate scoring and header
// detection.
type Vocabulary struct {
	Phrases     []Phrase `yaml:"phrases"`
	HeaderHints []string `yaml:"header_hints"`
	UnitMarkers []string `yaml:"unit_markers"`
	Preferred   []string `yaml:"preferred"`
}

// Config carries the vocabulary plus every scoring and reconstruction
// threshold. Callers normally start from DefaultConfig; tests may substitute a
// synthetic vocabulary.
type Config struct {
	Vocab Vocabulary `yaml:"vocabulary"`

	// ContextWindow is how many characters before a table start are scanned
	// for title and line-item phrases.
	ContextWindow int `yaml:"context_window"`
	// MinRows disqualifies candidates below this row count.
	MinRows int `yaml:"min_rows"`
	// HeaderHintRows bounds the header-bonus scan during scoring.
	HeaderHintRows int `yaml:"header_hint_rows"`
	// HeaderScanRows bounds the header-row search during reconstruction.
	HeaderScanRows int `yaml:"header_scan_rows"`
	// SizeSaturation caps the row-count bonus so huge unrelated tables do not
	// dominate.
	SizeSaturation int `yaml:"size_saturation"`

	PreferredBoost    float64 `yaml:"preferred_boost"`
	LineItemRowWeight float64 `yaml:"line_item_row_weight"`
	DensityWeight     float64 `yaml:"density_weight"`
	HeaderBonusWeight float64 `yaml:"header_bonus_weight"`

	// PromotionRatio is the fraction of a column's cells that must parse
	// numerically before the column is promoted wholesale.
	PromotionRatio float64 `yaml:"promotion_ratio"`

	// LabelVariants collapses spaced-out header labels to canonical forms.
	LabelVariants map[string]string `yaml:"label_variants"`
}

// periodRE recognizes fiscal-period tokens (제 55 기, 당기, FY, 3 months) used
// to spot header rows that carry no header vocabulary.
var periodRE = regexp.MustCompile(`(?i)(제\s*\d+\s*기|당기|전기|전전기|누계|3개월|3\s*months|year|period|FY)`)

const (
	titleWeight    = 5.0
	lineItemWeight = 1.5
	financeWeight  = 1.8
)

var titleKeywords = []string{
	"손익계산서", "포괄손익계산서", "연결손익계산서", "연결포괄손익계산서", "요약연결손익계산서",
	"별도손익계산서", "(요약)손익계산서", "(요약)포괄손익계산서", "요약 포괄손익계산서",
	"income statement", "statement of comprehensive income", "consolidated statement of comprehensive income",
}

var commonLineItems = []string{
	"매출액", "매출", "수익", "매출수익", "매출원가", "매출총이익", "판매비와관리비", "영업이익", "영업손실",
	"기타수익", "기타비용", "영업외수익", "영업외비용", "지분법이익", "지분법손실",
	"금융수익", "금융비용", "법인세비용", "법인세차감전순이익", "법인세비용차감전순이익",
	"당기순이익", "분기순이익", "반기순이익", "기간순손익",
	"지배기업 소유주지분", "비지배지분", "기본주당이익", "희석주당이익",
	"총포괄손익", "기타포괄손익", "기타포괄손익누계액", "확정급여제도 재측정요소",
	"환산차이", "현금흐름위험회피", "재평가잉여금",
	"법인세차감전", "이자수익", "이자비용", "배당수익", "외환손익", "파생상품손익",
	"revenue", "sales", "cost of sales", "gross profit", "selling and administrative expenses",
	"operating profit", "operating loss", "other income", "other expenses",
	"finance income", "finance costs", "share of profit", "share of loss",
	"profit before income tax", "profit for the period",
	"profit attributable to owners of parent", "non-controlling interests",
	"basic earnings per share", "diluted earnings per share",
}

var financeLineItems = []string{
	"이자수익", "이자비용", "이자이익", "수수료수익", "수수료비용", "수수료이익",
	"대손충당금전입액", "신용손실충당금전입", "대손비용",
	"유가증권관련손익", "외환및파생상품관련손익", "외환손익", "파생상품손익",
	"영업수익", "영업비용", "영업이익(손실)",
	"보증관련손익", "기타영업손익",
	"interest income", "interest expense", "net interest income",
	"fee income", "fee expense", "net fee income", "credit loss allowance",
}

var headerHints = []string{
	"과목", "계정과목", "항목", "구 분", "구분", "손익", "단위", "요약", "제", "기말", "당기", "전기",
	"3개월", "누계", "기간", "회계연도", "사업연도", "Fiscal year", "Statement",
}

func phrases(texts []string, weight float64, cat PhraseCategory) []Phrase {
	out := make([]Phrase, 0, len(texts))
	for _, t := range texts {
		out = append(out, Phrase{Text: t, Weight: weight, Category: cat})
	}
	return out
}

// DefaultVocabulary returns the built-in KR/EN income-statement vocabulary.
func DefaultVocabulary() Vocabulary {
	var ps []Phrase
	ps = append(ps, phrases(titleKeywords, titleWeight, CategoryTitle)...)
	ps = append(ps, phrases(commonLineItems, lineItemWeight, CategoryLineItem)...)
	ps = append(ps, phrases(financeLineItems, financeWeight, CategoryFinance)...)
	return Vocabulary{
		Phrases:     ps,
		HeaderHints: headerHints,
		UnitMarkers: []string{"단위"},
		Preferred:   []string{"연결", "consolidated"},
	}
}

// DefaultConfig returns the thresholds tuned against KR large-cap filings.
func DefaultConfig() Config {
	return Config{
		Vocab:             DefaultVocabulary(),
		ContextWindow:     1800,
		MinRows:           5,
		HeaderHintRows:    12,
		HeaderScanRows:    15,
		SizeSaturation:    120,
		PreferredBoost:    2.0,
		LineItemRowWeight: 8.0,
		DensityWeight:     5.0,
		HeaderBonusWeight: 2.0,
		PromotionRatio:    0.5,
		LabelVariants: map[string]string{
			"구 분":   "구분",
			"계 정":   "계정",
			"계정 과목": "계정과목",
		},
	}
}

// LoadConfig reads a YAML override file on top of DefaultConfig. Fields absent
// from the file keep their defaults, so a file may override just the
// vocabulary or a single threshold.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
