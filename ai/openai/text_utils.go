package openai

import "strings"

// scrubString strips control characters that some OpenAI-compatible servers
// reject and trims surrounding whitespace. Newlines and tabs are kept.
func scrubString(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
