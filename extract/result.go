package extract

import (
	"fmt"

	"github.com/poiesic/minutes/core"
)

// Result is the outcome of one extraction stage. Outcome distinguishes a
// stage that legitimately found nothing from one that failed; a failed
// stage always has empty Items.
type Result[T any] struct {
	Items   []T
	Outcome core.StageOutcome
	Err     error
}

// Report converts the result into a stage report for the artifact.
func (r Result[T]) Report(stage string) core.StageReport {
	report := core.StageReport{Stage: stage, Outcome: r.Outcome}
	if r.Err != nil {
		report.Reason = r.Err.Error()
	}
	return report
}

// Failed reports whether the stage errored.
func (r Result[T]) Failed() bool {
	return r.Outcome == core.StageFailed
}

// Succeeded wraps items, choosing OK or Empty by length.
func Succeeded[T any](items []T) Result[T] {
	if len(items) == 0 {
		return Result[T]{Items: []T{}, Outcome: core.StageEmpty}
	}
	return Result[T]{Items: items, Outcome: core.StageOK}
}

// FailedWith builds a failed result.
func FailedWith[T any](err error) Result[T] {
	return Result[T]{Items: []T{}, Outcome: core.StageFailed, Err: err}
}

// guard runs fn and converts a panic into a failed result.
func guard[T any](fn func() []T) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = FailedWith[T](fmt.Errorf("%w: %v", ErrStagePanicked, r))
		}
	}()
	return Succeeded(fn())
}
