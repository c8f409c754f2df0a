package telegram

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"golang-stock-sentiment/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(ticker string) *entity.SentimentReport {
	end := time.Date(2025, 12, 19, 12, 0, 0, 0, time.UTC)
	return &entity.SentimentReport{
		Ticker:          ticker,
		TimePeriod:      [2]time.Time{end.AddDate(0, 0, -7), end},
		MarketTrend:     entity.MarketTrendBullish,
		Signal:          entity.SignalBuy,
		Summary:         ticker + " sentiment is bullish with signal buy.",
		Reasoning:       "Derived from 2 scored items with weighted sentiment 0.57.",
		Highlights:      []string{"Apple beats *estimates*"},
		Recommendations: []string{"Track how new headlines affect the current bullish tone."},
		SentimentScore:  0.57,
		RelevanceScore:  0.7,
		ImpactScore:     0.7,
		Breakdown:       entity.SentimentBreakdown{PositiveCount: 1, NegativeCount: 1},
	}
}

func TestFormatSentimentDigestEmpty(t *testing.T) {
	msgs := FormatSentimentDigest(nil)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "No sentiment reports")
}

func TestFormatSentimentDigestSplitsMessages(t *testing.T) {
	var reports []*entity.SentimentReport
	for i := 0; i < 60; i++ {
		reports = append(reports, sampleReport(fmt.Sprintf("T%02d", i)))
	}

	msgs := FormatSentimentDigest(reports)
	require.Greater(t, len(msgs), 1)
	assert.True(t, strings.HasPrefix(msgs[0], "📰 *Watchlist Sentiment Digest*"))
	assert.Contains(t, msgs[1], "Part 2")

	joined := strings.Join(msgs, "")
	for _, r := range reports {
		assert.Equal(t, 1, strings.Count(joined, "- "+r.Ticker+" -"), r.Ticker)
	}
	for _, m := range msgs {
		assert.LessOrEqual(t, len(m), MaxMessageLength)
	}
}

func TestFormatSentimentReport(t *testing.T) {
	msg := FormatSentimentReport(sampleReport("AAPL"))
	assert.Contains(t, msg, "`AAPL`")
	assert.Contains(t, msg, "🟢 *Signal:* buy")
	assert.Contains(t, msg, "Apple beats \\*estimates\\*")
	assert.Contains(t, msg, "Fri, 12 Dec 2025 12:00 UTC")
}

func TestFormatSentimentReportTruncatesOnRuneBoundary(t *testing.T) {
	r := sampleReport("AAPL")
	r.Reasoning = strings.Repeat("é", 5000)
	msg := FormatSentimentReport(r)
	assert.LessOrEqual(t, len(msg), MaxMessageLength)
	assert.True(t, utf8.ValidString(msg))
}

type recordingNotifier struct {
	sent   []string
	failAt int
}

func (n *recordingNotifier) SendMessage(text string) error {
	if n.failAt > 0 && len(n.sent)+1 == n.failAt {
		return errors.New("telegram down")
	}
	n.sent = append(n.sent, text)
	return nil
}

func TestSendMessages(t *testing.T) {
	n := &recordingNotifier{}
	require.NoError(t, SendMessages(n, []string{"a", "b"}))
	assert.Equal(t, []string{"a", "b"}, n.sent)

	failing := &recordingNotifier{failAt: 2}
	assert.Error(t, SendMessages(failing, []string{"a", "b", "c"}))
	assert.Equal(t, []string{"a"}, failing.sent)
}

func TestFormatErrorAlertMessage(t *testing.T) {
	msg := FormatErrorAlertMessage(time.Date(2025, 12, 19, 9, 35, 0, 0, time.UTC), "watchlist", "fetch_failed", "AAPL")
	assert.Contains(t, msg, "Fri, 19 Dec 2025 09:35 UTC")
	assert.Contains(t, msg, "fetch\\_failed")
}
