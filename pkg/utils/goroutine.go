package utils

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"golang-stock-sentiment/pkg/logger"
)

// GoSafe runs fn on a new goroutine and logs instead of crashing on panic.
func GoSafe(log *logger.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Recovered from panic in goroutine",
					logger.StringField("panic", fmt.Sprint(r)),
					logger.StringField("stack", string(debug.Stack())),
				)
			}
		}()
		fn()
	}()
}

// ShouldContinue reports whether ctx is still live, logging when it is not.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		log.Warn("Context done, stopping work", logger.ErrorField(ctx.Err()))
		return false
	default:
		return true
	}
}

// CleanToValidUTF8 drops invalid byte sequences and trims surrounding space.
func CleanToValidUTF8(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return strings.TrimSpace(s)
}
