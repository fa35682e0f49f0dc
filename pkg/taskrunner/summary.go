package taskrunner

import (
	"fmt"
	"strings"
	"time"
)

// RenderSummaryLine returns the summary line printed after multi-step runs.
func RenderSummaryLine(outcome Outcome) string {
	attempted := outcome.Attempted()
	if attempted <= 1 {
		return ""
	}

	failedCount := 0
	if len(outcome.Failed) > 0 {
		failedCount = 1
	}

	parts := []string{
		fmt.Sprintf("Summary: total.steps=%d", attempted+len(outcome.Skipped)),
		fmt.Sprintf("completed=%d", len(outcome.Completed)),
		fmt.Sprintf("failed=%d", failedCount),
		fmt.Sprintf("skipped=%d", len(outcome.Skipped)),
	}
	if failedCount > 0 {
		parts = append(parts, fmt.Sprintf("failed.step=%s", outcome.Failed))
	}

	durationHuman := outcome.Duration.Round(time.Millisecond).String()
	parts = append(parts, fmt.Sprintf("duration_human=%s", durationHuman))
	parts = append(parts, fmt.Sprintf("duration_ms=%d", outcome.Duration.Milliseconds()))

	return strings.Join(parts, " ")
}
