package format

import (
	"regexp"
	"strings"
)

var (
	ratingAnnotation = regexp.MustCompile(`\(\s*\d+\s*[-–—]\s*\d+\s*分\s*\)`)
	optionAnnotation = regexp.MustCompile(`\([^)]+/[^)]+\)`)
)

// HasRating reports whether q already carries a "(N-M分)" scale.
func HasRating(q string) bool {
	return ratingAnnotation.MatchString(q)
}

// HasOptions reports whether q already carries a slash separated option list.
func HasOptions(q string) bool {
	return optionAnnotation.MatchString(q)
}

// IsRating reports whether q uses rating vocabulary.
func (r *Rules) IsRating(q string) bool {
	return r.ratingRe.MatchString(q)
}

// IsFrequency reports whether q uses frequency vocabulary.
func (r *Rules) IsFrequency(q string) bool {
	return r.frequencyRe.MatchString(q)
}

// EnsureFormat adds the rating scale and the frequency options a question is
// missing. Both checks look at the question as it arrived.
func (r *Rules) EnsureFormat(q string) string {
	hasRating := HasRating(q)
	hasOptions := HasOptions(q)

	if r.IsRating(q) && !hasRating {
		q = insertBeforeQuestionMark(q, r.Rating.Annotation)
	}
	if r.IsFrequency(q) && !hasOptions {
		q = insertBeforeQuestionMark(q, r.Frequency.Annotation)
	}
	return q
}

func insertBeforeQuestionMark(q, annotation string) string {
	pos := strings.Index(q, "？")
	if pos == -1 {
		pos = strings.Index(q, "?")
	}
	if pos == -1 {
		return q + annotation
	}
	return q[:pos] + annotation + q[pos:]
}
