package assistant

import "strings"

// Placeholder stands for the caller's readable ID in generated documents.
const Placeholder = "CURRENT_USER"

const needInfo = "NEED_INFO:"

// IsClarification reports whether a generator reply asks the user for more
// information instead of carrying a document.
func IsClarification(reply string) bool {
	return strings.Contains(reply, needInfo) || strings.Contains(reply, "Please provide")
}

// ClarificationText strips the sentinel from a clarification reply.
func ClarificationText(reply string) string {
	return strings.TrimSpace(strings.Replace(reply, needInfo, "", 1))
}

// Normalize collapses all runs of whitespace into single spaces.
func Normalize(doc string) string {
	return strings.Join(strings.Fields(doc), " ")
}

type Kind string

const (
	KindQuery    Kind = "query"
	KindMutation Kind = "mutation"
)

func Classify(doc string) Kind {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(doc)), "mutation") {
		return KindMutation
	}
	return KindQuery
}
