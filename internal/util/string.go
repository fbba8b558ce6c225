package util

// RuneLen counts characters rather than bytes; title-length rules are
// defined over characters so Korean titles measure correctly.
func RuneLen(s string) int {
	return len([]rune(s))
}
