package format

import (
	"regexp"
	"strings"
)

var (
	reasoningBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)
	codeFence      = regexp.MustCompile("(?s)```.*?```")

	// "1. ", "1、", "Q1: ", "問題2：", "第3題："; longer words before a colon are question text
	enumerationMarker = regexp.MustCompile(`^(?:\d+[.．、]\s*|(?:[A-Za-z]{1,2}|問題|第)\d+題?\s*[:：]\s*)`)
	bulletMarker      = regexp.MustCompile(`^[-*•]\s+`)
	bracketTag        = regexp.MustCompile(`^\s*\[.*?\]\s*`)
)

// StripReasoning removes <think> side channels and fenced code blocks.
func StripReasoning(s string) string {
	s = reasoningBlock.ReplaceAllString(s, "")
	return codeFence.ReplaceAllString(s, "")
}

// SplitLines returns the trimmed non-blank lines of s.
func SplitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// RemoveMarkers strips a leading enumeration ("1. ", "Q1: "), bullet and
// bracketed tag. Trailing hints such as "(1-5分)" are left alone.
func RemoveMarkers(q string) string {
	q = enumerationMarker.ReplaceAllString(q, "")
	q = bulletMarker.ReplaceAllString(q, "")
	q = bracketTag.ReplaceAllString(q, "")
	return strings.TrimSpace(q)
}
