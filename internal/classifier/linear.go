package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"

	"support-router/internal/model"
)

// LinearModel is a TF-IDF vectorizer followed by multinomial logistic
// regression, exported from the training pipeline as JSON.
type LinearModel struct {
	Classes     []string       `json:"classes"`
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	Coef        [][]float64    `json:"coef"`
	Intercept   []float64      `json:"intercept"`
	NgramMax    int            `json:"ngram_max"`
	SublinearTF bool           `json:"sublinear_tf"`
}

// Validate checks that every dimension agrees.
func (m *LinearModel) Validate() error {
	nFeatures := len(m.IDF)
	switch {
	case len(m.Classes) < 2:
		return fmt.Errorf("%w: need at least 2 classes, got %d", ErrInvalidModel, len(m.Classes))
	case len(m.Coef) != len(m.Classes):
		return fmt.Errorf("%w: %d coefficient rows for %d classes", ErrInvalidModel, len(m.Coef), len(m.Classes))
	case len(m.Intercept) != len(m.Classes):
		return fmt.Errorf("%w: %d intercepts for %d classes", ErrInvalidModel, len(m.Intercept), len(m.Classes))
	case nFeatures == 0:
		return fmt.Errorf("%w: empty idf", ErrInvalidModel)
	}
	for i, row := range m.Coef {
		if len(row) != nFeatures {
			return fmt.Errorf("%w: coefficient row %d has %d features, want %d", ErrInvalidModel, i, len(row), nFeatures)
		}
	}
	for term, idx := range m.Vocabulary {
		if idx < 0 || idx >= nFeatures {
			return fmt.Errorf("%w: term %q index %d out of range", ErrInvalidModel, term, idx)
		}
	}
	return nil
}

// LinearClassifier runs a LinearModel in-process.
type LinearClassifier struct {
	m       *LinearModel
	classes []model.Intent
}

var _ Classifier = (*LinearClassifier)(nil)

// NewLinear validates m and builds a classifier over it.
func NewLinear(m *LinearModel) (*LinearClassifier, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil model", ErrInvalidModel)
	}
	if m.NgramMax <= 0 {
		m.NgramMax = 1
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	classes := make([]model.Intent, len(m.Classes))
	for i, c := range m.Classes {
		classes[i] = model.NormalizeIntent(c)
	}
	return &LinearClassifier{m: m, classes: classes}, nil
}

// LoadLinear reads a model artifact from path.
func LoadLinear(path string) (*LinearClassifier, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: read %s: %w", LogPrefixLinear, path, err)
	}
	var m LinearModel
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidModel, path, err)
	}
	return NewLinear(&m)
}

func (c *LinearClassifier) Name() string { return BackendLinear }

func (c *LinearClassifier) Classify(ctx context.Context, text string) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Prediction{}, ErrEmptyText
	}

	features := c.vectorize(text)
	probs := softmax(c.logits(features))

	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return Prediction{Intent: c.classes[best], Confidence: clamp(probs[best])}, nil
}

type feature struct {
	idx int
	val float64
}

// vectorize returns the L2-normalized TF-IDF vector of text, ordered by
// feature index so scoring is bit-for-bit repeatable.
func (c *LinearClassifier) vectorize(text string) []feature {
	counts := make(map[int]float64)
	for _, term := range ngrams(tokenize(text), c.m.NgramMax) {
		if idx, ok := c.m.Vocabulary[term]; ok {
			counts[idx]++
		}
	}

	out := make([]feature, 0, len(counts))
	for idx, tf := range counts {
		out = append(out, feature{idx: idx, val: tf})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].idx < out[j].idx })

	var norm float64
	for i := range out {
		tf := out[i].val
		if c.m.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		out[i].val = tf * c.m.IDF[out[i].idx]
		norm += out[i].val * out[i].val
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range out {
			out[i].val /= norm
		}
	}
	return out
}

func (c *LinearClassifier) logits(features []feature) []float64 {
	out := make([]float64, len(c.classes))
	for k := range c.classes {
		z := c.m.Intercept[k]
		row := c.m.Coef[k]
		for _, f := range features {
			z += row[f.idx] * f.val
		}
		out[k] = z
	}
	return out
}

func softmax(z []float64) []float64 {
	max := math.Inf(-1)
	for _, v := range z {
		if v > max {
			max = v
		}
	}
	var sum float64
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = math.Exp(v - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// Tokens are runs of two or more letters, digits or underscores.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

func ngrams(tokens []string, n int) []string {
	out := make([]string, 0, len(tokens)*n)
	for size := 1; size <= n; size++ {
		for i := 0; i+size <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+size], " "))
		}
	}
	return out
}
