package querygen

import (
	"regexp"
	"strings"
)

var (
	codeFence     = regexp.MustCompile("```(?:graphql)?\\s*")
	operationHead = regexp.MustCompile(`(?i)\b(query|mutation)\b[^{]*\{`)
)

// Clean extracts the first query or mutation block from a model answer and
// collapses its whitespace. Answers without one, such as NEED_INFO replies,
// are returned trimmed.
func Clean(response string) string {
	response = codeFence.ReplaceAllString(response, "")

	loc := operationHead.FindStringIndex(response)
	if loc == nil {
		return strings.TrimSpace(response)
	}
	end := matchingBrace(response, loc[1]-1)
	if end < 0 {
		return strings.TrimSpace(response)
	}
	return strings.Join(strings.Fields(response[loc[0]:end+1]), " ")
}

// matchingBrace returns the index of the brace closing the one at open,
// ignoring braces inside string literals, or -1.
func matchingBrace(s string, open int) int {
	depth := 0
	inString := false
	for i := open; i < len(s); i++ {
		switch c := s[i]; {
		case inString:
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
