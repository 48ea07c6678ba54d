package format

import (
	"strings"
	"unicode/utf8"
)

// maxContentLen bounds the raw model output that is processed.
const maxContentLen = 128 * 1024

// Clean turns raw model output into candidate question lines.
func Clean(raw string) []string {
	if len(raw) > maxContentLen {
		raw = raw[:maxContentLen]
	}
	if !utf8.ValidString(raw) {
		raw = strings.ToValidUTF8(raw, "")
	}

	lines := SplitLines(StripReasoning(raw))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if q := RemoveMarkers(l); q != "" {
			out = append(out, q)
		}
	}
	return out
}

// Finalize converts a question to traditional script and repairs its format.
// Conversion runs first so simplified keywords are recognised too.
func (r *Rules) Finalize(q string) string {
	return r.EnsureFormat(r.ToTraditional(q))
}

// Pad appends filler questions until there are count of them, then truncates
// to exactly count.
func (r *Rules) Pad(questions []string, topic string, count int) []string {
	if count < 0 {
		count = 0
	}
	out := make([]string, len(questions), max(len(questions), count))
	copy(out, questions)
	for len(out) < count {
		out = append(out, Fill(r.Fillers[len(out)%len(r.Fillers)], topic))
	}
	return out[:count]
}

// Normalize runs the full pipeline over raw model output: cleanup, padding
// and per-question finalisation. The result has exactly count entries.
func (r *Rules) Normalize(raw, topic string, count int) []string {
	questions := r.Pad(Clean(raw), topic, count)
	for i, q := range questions {
		questions[i] = r.Finalize(q)
	}
	return questions
}

// Defaults returns the fallback question set for topic, padded or truncated to count.
func (r *Rules) Defaults(topic string, count int) []string {
	base := make([]string, len(r.Fallback))
	for i, t := range r.Fallback {
		base[i] = Fill(t, topic)
	}
	questions := r.Pad(base, topic, count)
	for i, q := range questions {
		questions[i] = r.Finalize(q)
	}
	return questions
}
