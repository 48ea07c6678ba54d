package model

// QuestionSet is the ordered list of questions shown to a respondent.
// Its length always equals the count that was requested from the synthesizer.
type QuestionSet []string

// ResponseSet holds one free-text answer per question, index-aligned with a QuestionSet.
type ResponseSet []string

// Align truncates both sets to their common length. It reports whether the
// lengths differed.
func Align(questions QuestionSet, responses ResponseSet) (QuestionSet, ResponseSet, bool) {
	if len(questions) == len(responses) {
		return questions, responses, false
	}
	n := min(len(questions), len(responses))
	return questions[:n], responses[:n], true
}
