package sqlite

import (
	"time"

	"github.com/Masterminds/squirrel"
)

// Shared query builder; SQLite uses ? placeholders.
var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Intervals and response times are stored as integer milliseconds so the
// schema never deals in fractional days.

func durationToMs(d time.Duration) int64 {
	return d.Milliseconds()
}

func msToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
