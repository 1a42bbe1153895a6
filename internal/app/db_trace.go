package app

import (
	"regexp"
	"strings"
)

// Span attribute budgets are small; a full leaderboard upsert statement
// would blow past most backends' attribute limits.
const maxTracedQueryLength = 512

var queryWhitespaceRegex = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace collapses a multi-line SQL statement into a single
// bounded line for the db.statement span attribute.
func formatDBQueryForTrace(query string) string {
	normalized := queryWhitespaceRegex.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
