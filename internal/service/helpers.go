package service

import (
	"fmt"

	"github.com/alexanderramin/termplan/internal/domain"
)

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("catalog validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

// normalizeCodes upper-cases user supplied codes and drops blanks and
// repeats, keeping first-seen order. A nil input stays nil.
func normalizeCodes(codes []string) []string {
	if codes == nil {
		return nil
	}
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		n := domain.NormalizeCode(c)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// splitCompleted separates targets that are already completed from those
// that still need planning.
func splitCompleted(targets, completed []string) (remaining, done []string) {
	isDone := make(map[string]bool, len(completed))
	for _, c := range completed {
		isDone[c] = true
	}
	for _, t := range targets {
		if isDone[t] {
			done = append(done, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	return remaining, done
}
