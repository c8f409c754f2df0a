package strategy

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"
)

var bullishTerms = map[string]float64{
	"bullish": 0.7, "rally": 0.6, "surge": 0.7, "soar": 0.7, "upbeat": 0.5,
	"growth": 0.4, "upgrade": 0.6, "outperform": 0.6, "buy": 0.5,
	"strong": 0.4, "recovery": 0.5, "breakout": 0.6, "record high": 0.7,
	"all-time high": 0.7, "beat": 0.5, "beats": 0.5, "exceeds": 0.5,
	"expansion": 0.4, "profit": 0.3, "dividend": 0.4, "raises guidance": 0.7,
	"buyback": 0.5, "gain": 0.4, "gains": 0.4,
}

var bearishTerms = map[string]float64{
	"bearish": 0.7, "crash": 0.8, "plunge": 0.7, "slump": 0.6,
	"downgrade": 0.6, "underperform": 0.6, "sell": 0.5, "weak": 0.4,
	"decline": 0.5, "loss": 0.4, "losses": 0.4, "selloff": 0.7, "fall": 0.4,
	"falls": 0.4, "correction": 0.5, "default": 0.7, "fraud": 0.8,
	"lawsuit": 0.6, "investigation": 0.5, "recall": 0.5, "miss": 0.5,
	"misses": 0.5, "warning": 0.5, "cuts guidance": 0.7, "layoffs": 0.5,
}

type weightedTerm struct {
	pattern *regexp.Regexp
	weight  float64
}

// LexiconStrategy is an offline keyword classifier. Label thresholds sit at ±0.15 of
// the normalized net score.
type LexiconStrategy struct {
	device  Device
	labels  map[string]float64
	bullish []weightedTerm
	bearish []weightedTerm
}

// NewLexiconStrategy compiles the keyword tables.
func NewLexiconStrategy(device Device) *LexiconStrategy {
	return &LexiconStrategy{
		device:  device,
		labels:  FinancialLabelMapping(),
		bullish: compileTerms(bullishTerms),
		bearish: compileTerms(bearishTerms),
	}
}

func compileTerms(terms map[string]float64) []weightedTerm {
	keys := make([]string, 0, len(terms))
	for k := range terms {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]weightedTerm, 0, len(keys))
	for _, k := range keys {
		out = append(out, weightedTerm{
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`),
			weight:  terms[k],
		})
	}
	return out
}

func (s *LexiconStrategy) ModelName() string { return string(ModelLexicon) }

func (s *LexiconStrategy) LabelMapping() map[string]float64 { return s.labels }

func (s *LexiconStrategy) Device() Device { return s.device }

// Predict scores each text independently.
func (s *LexiconStrategy) Predict(ctx context.Context, texts []string) ([]SentimentResult, error) {
	results := make([]SentimentResult, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		label, confidence := s.classify(text)
		results[i] = newSentimentResult(label, confidence, s.labels)
	}
	return results, nil
}

func (s *LexiconStrategy) classify(text string) (string, float64) {
	lower := strings.ToLower(text)

	bull, bullHits := sumMatches(lower, s.bullish)
	bear, bearHits := sumMatches(lower, s.bearish)
	matches := bullHits + bearHits
	if matches == 0 {
		return "neutral", 0.5
	}

	net := (bull - bear) / (bull + bear)
	confidence := math.Min(float64(matches)*0.15+0.2, 0.85)
	switch {
	case net > 0.15:
		return "positive", confidence
	case net < -0.15:
		return "negative", confidence
	default:
		return "neutral", confidence
	}
}

func sumMatches(text string, terms []weightedTerm) (float64, int) {
	total, hits := 0.0, 0
	for _, t := range terms {
		if t.pattern.MatchString(text) {
			total += t.weight
			hits++
		}
	}
	return total, hits
}
