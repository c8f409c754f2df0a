package utils

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"golang-stock-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.86, Round2(0.8636))
	assert.Equal(t, 0.57, Round2(0.5698))
	assert.Equal(t, -0.5, Round2(-0.5))
	assert.Equal(t, 0.0, Round2(0.004))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(1.2, -1, 1))
	assert.Equal(t, -1.0, Clamp(-3, -1, 1))
	assert.Equal(t, 0.3, Clamp(0.3, 0, 1))
	assert.Equal(t, 0.0, Clamp(math.NaN(), 0, 1))
}

func TestUTCPtr(t *testing.T) {
	assert.Nil(t, UTCPtr(nil))

	loc := time.FixedZone("WIB", 7*3600)
	local := time.Date(2025, 1, 2, 10, 0, 0, 0, loc)
	got := UTCPtr(&local)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 3, got.Hour())
}

func TestGoSafeRecovers(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	GoSafe(logger.NewNop(), func() {
		defer wg.Done()
		panic("boom")
	})
	wg.Wait()
}

func TestShouldContinue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	assert.True(t, ShouldContinue(ctx, logger.NewNop()))
	cancel()
	assert.False(t, ShouldContinue(ctx, logger.NewNop()))
}

func TestCleanToValidUTF8(t *testing.T) {
	assert.Equal(t, "abc", CleanToValidUTF8("  a\xffbc "))
}
