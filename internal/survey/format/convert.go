package format

// ToTraditional replaces the simplified-script substrings of the table with
// their traditional forms. Applying it twice equals applying it once.
func (r *Rules) ToTraditional(s string) string {
	return r.converter.Replace(s)
}
