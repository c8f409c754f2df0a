package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidEnum is returned when a categorical value cannot be normalized.
	ErrInvalidEnum = errors.New("invalid enum value")
	// ErrInvalidTicker is returned for empty tickers.
	ErrInvalidTicker = errors.New("invalid ticker")
	// ErrInvalidScore is returned when a score falls outside its range.
	ErrInvalidScore = errors.New("invalid score")
	// ErrInvalidTimeRange is returned when an analysis window cannot be resolved.
	ErrInvalidTimeRange = errors.New("invalid time range")
)

// normalizeEnum lowercases, trims and folds "_" / "-" / repeated spaces into single spaces.
func normalizeEnum(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.NewReplacer("_", " ", "-", " ").Replace(v)
	return strings.Join(strings.Fields(v), " ")
}

func invalidEnum(kind, value string, allowed []string) error {
	return fmt.Errorf("%w: invalid %s value %q, must be one of: %s", ErrInvalidEnum, kind, value, strings.Join(allowed, ", "))
}

// TimeWindow is the categorical lookback period of an analysis.
type TimeWindow string

const (
	TimeWindowShort  TimeWindow = "short"
	TimeWindowMedium TimeWindow = "medium"
	TimeWindowLong   TimeWindow = "long"
)

var timeWindowDays = map[TimeWindow]int{
	TimeWindowShort:  7,
	TimeWindowMedium: 30,
	TimeWindowLong:   90,
}

// ParseTimeWindow accepts "short", "short term", "short-term", "shortterm" and
// the same forms of medium and long.
func ParseTimeWindow(value string) (TimeWindow, error) {
	v := strings.ReplaceAll(normalizeEnum(value), " ", "")
	v = strings.TrimSuffix(v, "term")
	w := TimeWindow(v)
	if _, ok := timeWindowDays[w]; !ok {
		return "", invalidEnum("time window", value, []string{"short", "medium", "long"})
	}
	return w, nil
}

// Days returns the lookback length in days.
func (w TimeWindow) Days() int {
	return timeWindowDays[w]
}

// Duration returns the lookback length.
func (w TimeWindow) Duration() time.Duration {
	return time.Duration(w.Days()) * 24 * time.Hour
}

// TimeRange returns [end-window, end] in UTC. A zero end means now.
func (w TimeWindow) TimeRange(end time.Time) (time.Time, time.Time) {
	if end.IsZero() {
		end = time.Now()
	}
	end = end.UTC()
	return end.Add(-w.Duration()), end
}

// MarketTrend is the five-level tone derived from the aggregate sentiment.
type MarketTrend string

const (
	MarketTrendGreedy  MarketTrend = "greedy"
	MarketTrendBullish MarketTrend = "bullish"
	MarketTrendNeutral MarketTrend = "neutral"
	MarketTrendBearish MarketTrend = "bearish"
	MarketTrendFearful MarketTrend = "fearful"
)

var marketTrends = []string{"greedy", "bullish", "neutral", "bearish", "fearful"}

// ParseMarketTrend normalizes a market trend value.
func ParseMarketTrend(value string) (MarketTrend, error) {
	v := normalizeEnum(value)
	for _, t := range marketTrends {
		if v == t {
			return MarketTrend(t), nil
		}
	}
	return "", invalidEnum("market trend", value, marketTrends)
}

// Signal is the trade-action recommendation of a report.
type Signal string

const (
	SignalStrongBuy  Signal = "strong buy"
	SignalBuy        Signal = "buy"
	SignalHold       Signal = "hold"
	SignalSell       Signal = "sell"
	SignalStrongSell Signal = "strong sell"
)

var signals = []string{"strong buy", "buy", "hold", "sell", "strong sell"}

// ParseSignal normalizes a signal value; "strong_buy" and "Strong-Buy" both resolve to strong buy.
func ParseSignal(value string) (Signal, error) {
	v := normalizeEnum(value)
	for _, s := range signals {
		if v == s {
			return Signal(s), nil
		}
	}
	return "", invalidEnum("signal", value, signals)
}

// SourceType classifies where a content item came from.
type SourceType string

const (
	SourceTypeNews     SourceType = "news"
	SourceTypeSocial   SourceType = "social"
	SourceTypeForum    SourceType = "forum"
	SourceTypeBlog     SourceType = "blog"
	SourceTypeResearch SourceType = "research"
	SourceTypeOther    SourceType = "other"
)

var sourceTypes = []string{"news", "social", "forum", "blog", "research", "other"}

// ParseSourceType normalizes a source type value.
func ParseSourceType(value string) (SourceType, error) {
	v := normalizeEnum(value)
	for _, s := range sourceTypes {
		if v == s {
			return SourceType(s), nil
		}
	}
	return "", invalidEnum("source type", value, sourceTypes)
}
