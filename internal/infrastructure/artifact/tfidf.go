package artifact

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/doeshing/fakenews-go/internal/domain"
	"github.com/doeshing/fakenews-go/internal/ports"
)

// KindTfidf identifies a TF-IDF word n-gram vectorizer document.
const KindTfidf = "tfidf"

// sklearnTokenPattern is the default token pattern exported by scikit-learn.
const sklearnTokenPattern = `(?u)\b\w\w+\b`

// unicodeTokenPattern is the RE2 equivalent; RE2's \w and \b are ASCII-only.
const unicodeTokenPattern = `[\p{L}\p{M}\p{N}_]{2,}`

// TfidfSpec is the on-disk form of a fitted TF-IDF vectorizer.
type TfidfSpec struct {
	Kind         string         `json:"kind"`
	Lowercase    *bool          `json:"lowercase,omitempty"`
	NgramRange   [2]int         `json:"ngram_range"`
	TokenPattern string         `json:"token_pattern,omitempty"`
	StopWords    []string       `json:"stop_words,omitempty"`
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf,omitempty"`
	UseIDF       *bool          `json:"use_idf,omitempty"`
	SublinearTF  bool           `json:"sublinear_tf,omitempty"`
	Norm         string         `json:"norm,omitempty"` // l2 (default), l1 or none
}

// TfidfVectorizer implements ports.Vectorizer.
type TfidfVectorizer struct {
	vocabulary  map[string]int
	idf         []float64
	lowercase   bool
	minN, maxN  int
	tokens      *regexp.Regexp
	stopWords   map[string]struct{}
	useIDF      bool
	sublinearTF bool
	norm        string
}

// NewTfidf validates spec and builds a vectorizer from it.
func NewTfidf(spec TfidfSpec) (*TfidfVectorizer, error) {
	if len(spec.Vocabulary) == 0 {
		return nil, errors.New("vocabulary is empty")
	}
	width := len(spec.Vocabulary)
	seen := make([]bool, width)
	for term, col := range spec.Vocabulary {
		if col < 0 || col >= width {
			return nil, fmt.Errorf("vocabulary term %q has column %d outside [0,%d)", term, col, width)
		}
		if seen[col] {
			return nil, fmt.Errorf("vocabulary column %d assigned twice", col)
		}
		seen[col] = true
	}

	useIDF := spec.UseIDF == nil || *spec.UseIDF
	if useIDF && len(spec.IDF) != width {
		return nil, fmt.Errorf("idf has %d entries, vocabulary has %d", len(spec.IDF), width)
	}

	minN, maxN := spec.NgramRange[0], spec.NgramRange[1]
	if minN == 0 && maxN == 0 {
		minN, maxN = 1, 1
	}
	if minN < 1 || maxN < minN {
		return nil, fmt.Errorf("invalid ngram_range [%d,%d]", minN, maxN)
	}

	norm := strings.ToLower(spec.Norm)
	switch norm {
	case "":
		norm = "l2"
	case "l1", "l2", "none":
	default:
		return nil, fmt.Errorf("unsupported norm %q", spec.Norm)
	}

	tokens, err := compileTokenPattern(spec.TokenPattern)
	if err != nil {
		return nil, err
	}

	stop := make(map[string]struct{}, len(spec.StopWords))
	for _, w := range spec.StopWords {
		stop[w] = struct{}{}
	}

	return &TfidfVectorizer{
		vocabulary:  spec.Vocabulary,
		idf:         spec.IDF,
		lowercase:   spec.Lowercase == nil || *spec.Lowercase,
		minN:        minN,
		maxN:        maxN,
		tokens:      tokens,
		stopWords:   stop,
		useIDF:      useIDF,
		sublinearTF: spec.SublinearTF,
		norm:        norm,
	}, nil
}

func compileTokenPattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" || pattern == sklearnTokenPattern || pattern == `\b\w\w+\b` {
		pattern = unicodeTokenPattern
	}
	pattern = strings.TrimPrefix(pattern, "(?u)")
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("token_pattern: %w", err)
	}
	return re, nil
}

// Features implements ports.Vectorizer.
func (v *TfidfVectorizer) Features() int {
	return len(v.vocabulary)
}

// Transform implements ports.Vectorizer.
func (v *TfidfVectorizer) Transform(docs []string) ([]domain.FeatureVector, error) {
	rows := make([]domain.FeatureVector, len(docs))
	for i, doc := range docs {
		rows[i] = v.transformOne(doc)
	}
	return rows, nil
}

func (v *TfidfVectorizer) transformOne(doc string) domain.FeatureVector {
	row := domain.FeatureVector{}
	for _, term := range v.analyze(doc) {
		if col, ok := v.vocabulary[term]; ok {
			row[col]++
		}
	}

	for col, tf := range row {
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		if v.useIDF {
			tf *= v.idf[col]
		}
		row[col] = tf
	}

	var total float64
	switch v.norm {
	case "l2":
		for _, w := range row {
			total += w * w
		}
		total = math.Sqrt(total)
	case "l1":
		for _, w := range row {
			total += math.Abs(w)
		}
	}
	if total > 0 {
		for col := range row {
			row[col] /= total
		}
	}
	return row
}

// analyze produces the n-gram terms of doc in document order.
func (v *TfidfVectorizer) analyze(doc string) []string {
	if v.lowercase {
		doc = strings.ToLower(doc)
	}
	raw := v.tokens.FindAllString(doc, -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if _, stop := v.stopWords[tok]; !stop {
			tokens = append(tokens, tok)
		}
	}

	if v.minN == 1 && v.maxN == 1 {
		return tokens
	}

	var terms []string
	for n := v.minN; n <= v.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

var _ ports.Vectorizer = (*TfidfVectorizer)(nil)
