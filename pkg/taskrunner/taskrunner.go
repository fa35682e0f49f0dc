package taskrunner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	stepFailureErrorTemplateConstant = "%s: %w"
	unnamedStepNameConstant          = "step"
	missingStepActionMessageConstant = "sequence step has no action"
)

// ErrStepActionMissing indicates a step was declared without an action.
var ErrStepActionMissing = errors.New(missingStepActionMessageConstant)

// Step is a named unit of work inside a Sequence.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Outcome reports what a Sequence run did.
type Outcome struct {
	Completed []string
	Failed    string
	Skipped   []string
	Duration  time.Duration
}

// Attempted returns the number of steps that started.
func (outcome Outcome) Attempted() int {
	attempted := len(outcome.Completed)
	if len(outcome.Failed) > 0 {
		attempted++
	}
	return attempted
}

// Sequence executes steps in order. No step runs after a failed one.
type Sequence struct {
	steps         []Step
	summaryWriter io.Writer
	now           func() time.Time
}

// NewSequence constructs a Sequence. A nil summary writer disables the summary line.
func NewSequence(summaryWriter io.Writer, steps ...Step) Sequence {
	return Sequence{steps: steps, summaryWriter: summaryWriter, now: time.Now}
}

// Run executes the steps and returns the outcome along with the first step error.
func (sequence Sequence) Run(ctx context.Context) (Outcome, error) {
	clock := sequence.now
	if clock == nil {
		clock = time.Now
	}
	startedAt := clock()

	outcome := Outcome{}
	var runError error
	for stepIndex, step := range sequence.steps {
		stepName := strings.TrimSpace(step.Name)
		if len(stepName) == 0 {
			stepName = unnamedStepNameConstant
		}

		if cancellationError := contextError(ctx); cancellationError != nil {
			runError = cancellationError
			outcome.Skipped = appendStepNames(outcome.Skipped, sequence.steps[stepIndex:])
			break
		}

		stepError := ErrStepActionMissing
		if step.Run != nil {
			stepError = step.Run(ctx)
		}
		if stepError != nil {
			outcome.Failed = stepName
			outcome.Skipped = appendStepNames(outcome.Skipped, sequence.steps[stepIndex+1:])
			runError = fmt.Errorf(stepFailureErrorTemplateConstant, stepName, stepError)
			break
		}
		outcome.Completed = append(outcome.Completed, stepName)
	}

	outcome.Duration = clock().Sub(startedAt)
	sequence.printSummary(outcome)
	return outcome, runError
}

func (sequence Sequence) printSummary(outcome Outcome) {
	if sequence.summaryWriter == nil {
		return
	}
	summary := RenderSummaryLine(outcome)
	if len(strings.TrimSpace(summary)) == 0 {
		return
	}
	fmt.Fprintln(sequence.summaryWriter, summary)
}

func contextError(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}

func appendStepNames(names []string, steps []Step) []string {
	for _, step := range steps {
		stepName := strings.TrimSpace(step.Name)
		if len(stepName) == 0 {
			stepName = unnamedStepNameConstant
		}
		names = append(names, stepName)
	}
	return names
}
