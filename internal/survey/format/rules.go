package format

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

const topicPlaceholder = "{topic}"

// Category is a keyword family with the annotation that marks a question as answered in that style.
type Category struct {
	Keywords   []string `yaml:"keywords"`
	Annotation string   `yaml:"annotation"`
}

// Pair is one simplified->traditional substring replacement.
type Pair struct {
	From string
	To   string
}

// Rules is the validated domain data driving normalisation.
type Rules struct {
	Rating      Category
	Frequency   Category
	Traditional []Pair
	Fillers     []string
	Fallback    []string

	ratingRe    *regexp.Regexp
	frequencyRe *regexp.Regexp
	converter   *strings.Replacer
}

type rulesFile struct {
	Rating      Category   `yaml:"rating"`
	Frequency   Category   `yaml:"frequency"`
	Traditional [][]string `yaml:"traditional"`
	Fillers     []string   `yaml:"fillers"`
	Fallback    []string   `yaml:"fallback"`
}

var defaultRules = mustParseRules(defaultRulesYAML)

// Default returns the rules embedded in the binary.
func Default() *Rules {
	return defaultRules
}

func mustParseRules(data []byte) *Rules {
	r, err := ParseRules(data)
	if err != nil {
		panic(fmt.Sprintf("embedded question rules: %v", err))
	}
	return r
}

// ParseRules decodes and validates a rules document.
func ParseRules(data []byte) (*Rules, error) {
	var raw rulesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, errors.New("parse yaml: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	r := &Rules{
		Rating:    raw.Rating,
		Frequency: raw.Frequency,
		Fillers:   raw.Fillers,
		Fallback:  raw.Fallback,
	}
	for i, p := range raw.Traditional {
		if len(p) != 2 {
			return nil, fmt.Errorf("traditional[%d]: want [from, to], got %d items", i, len(p))
		}
		r.Traditional = append(r.Traditional, Pair{From: p[0], To: p[1]})
	}
	if err := r.validate(); err != nil {
		return nil, err
	}

	r.ratingRe = keywordPattern(r.Rating.Keywords)
	r.frequencyRe = keywordPattern(r.Frequency.Keywords)

	oldnew := make([]string, 0, len(r.Traditional)*2)
	for _, p := range r.Traditional {
		oldnew = append(oldnew, p.From, p.To)
	}
	r.converter = strings.NewReplacer(oldnew...)
	return r, nil
}

func (r *Rules) validate() error {
	if len(r.Rating.Keywords) == 0 || len(r.Frequency.Keywords) == 0 {
		return errors.New("rating and frequency keywords are required")
	}
	if !ratingAnnotation.MatchString(r.Rating.Annotation) {
		return fmt.Errorf("rating annotation %q lacks a (N-M分) range", r.Rating.Annotation)
	}
	if !optionAnnotation.MatchString(r.Frequency.Annotation) {
		return fmt.Errorf("frequency annotation %q lacks a slash option list", r.Frequency.Annotation)
	}
	if len(r.Fillers) == 0 {
		return errors.New("at least one filler question is required")
	}
	if len(r.Fallback) == 0 {
		return errors.New("at least one fallback question is required")
	}

	seen := make(map[string]bool, len(r.Traditional))
	for _, p := range r.Traditional {
		if p.From == "" {
			return errors.New("traditional: empty key")
		}
		if seen[p.From] {
			return fmt.Errorf("traditional: duplicate key %q", p.From)
		}
		seen[p.From] = true
	}
	// Overlapping keys would make the result depend on table order.
	for _, a := range r.Traditional {
		for _, b := range r.Traditional {
			if a.From != b.From && strings.Contains(a.From, b.From) {
				return fmt.Errorf("traditional: key %q overlaps %q", a.From, b.From)
			}
		}
	}
	// A replacement that produces another key would break idempotence.
	for _, a := range r.Traditional {
		for _, b := range r.Traditional {
			if a.To != a.From && strings.Contains(a.To, b.From) && b.From != b.To {
				return fmt.Errorf("traditional: value %q contains key %q", a.To, b.From)
			}
		}
	}
	return nil
}

func keywordPattern(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}

// Fill substitutes the topic into a question template.
func Fill(template, topic string) string {
	return strings.ReplaceAll(template, topicPlaceholder, topic)
}
