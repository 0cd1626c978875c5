package insights

import "strings"

// StripFences removes markdown code-fence markers the model wraps JSON in,
// plus surrounding whitespace. It only touches fence markers anchored at
// the start or end of the text, so backticks appearing inside legitimate
// string content are left alone. Text without fences comes back unchanged
// apart from trimming.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		trimmed := s
		if strings.HasSuffix(trimmed, "```") {
			trimmed = strings.TrimSpace(trimmed[:len(trimmed)-3])
		}
		if rest, ok := cutLeadingFence(trimmed); ok {
			trimmed = strings.TrimSpace(rest)
		}
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

// cutLeadingFence drops a leading ``` marker and its optional language tag
// (e.g. "json"), whether the tag is followed by a newline or glued straight
// onto the payload.
func cutLeadingFence(s string) (string, bool) {
	if !strings.HasPrefix(s, "```") {
		return s, false
	}
	rest := s[3:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 && isLanguageTag(strings.TrimSpace(rest[:i])) {
		return rest[i+1:], true
	}
	j := 0
	for j < len(rest) && isTagByte(rest[j]) {
		j++
	}
	if j > 0 && j <= 16 {
		return rest[j:], true
	}
	return rest, true
}

func isLanguageTag(s string) bool {
	if len(s) > 16 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTagByte(s[i]) {
			return false
		}
	}
	return true
}

func isTagByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
