package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/printer"

	"alumni-directory/internal/auth"
)

// Policy controls how identity-bearing arguments are treated.
type Policy string

const (
	// PolicyStrict substitutes the placeholder and rejects mutations that
	// name anyone other than the caller.
	PolicyStrict Policy = "strict"
	// PolicyRewrite overwrites every identity-bearing literal with the caller.
	PolicyRewrite Policy = "rewrite"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", PolicyStrict:
		return PolicyStrict, nil
	case PolicyRewrite:
		return p, nil
	}
	return "", fmt.Errorf("unknown identity policy %q", s)
}

var identityFields = map[string]bool{
	"Alumni_id":    true,
	"Organizer_id": true,
}

// Caller is who the assistant acts as.
type Caller struct {
	AlumniID string
	Admin    bool
}

func CallerFromClaims(c *auth.Claims) Caller {
	if c == nil {
		return Caller{}
	}
	return Caller{AlumniID: c.AlumniID, Admin: c.IsAdmin()}
}

// PolicyError rejects a generated document before execution.
type PolicyError struct {
	Field  string
	Value  string
	Reason string
}

func (e *PolicyError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

var (
	quotedPlaceholder = regexp.MustCompile(`"` + Placeholder + `"`)
	identityLiteral   = regexp.MustCompile(`(Alumni_id|Organizer_id)\s*:\s*"[^"]*"`)
)

// InjectIdentity binds identity-bearing arguments of doc to the caller.
// The returned document is normalized whenever it was rewritten.
func InjectIdentity(doc string, caller Caller, policy Policy) (string, error) {
	parsed, err := parser.Parse(parser.ParseParams{Source: doc})
	if err != nil {
		return substituteText(doc, caller, policy), nil
	}

	w := &identityWalker{caller: caller, policy: policy}
	for _, def := range parsed.Definitions {
		if op, ok := def.(*ast.OperationDefinition); ok && op.Operation == ast.OperationTypeMutation {
			w.mutation = true
		}
	}
	for _, def := range parsed.Definitions {
		var set *ast.SelectionSet
		switch d := def.(type) {
		case *ast.OperationDefinition:
			set = d.SelectionSet
		case *ast.FragmentDefinition:
			set = d.SelectionSet
		}
		if err := w.selections(set); err != nil {
			return "", err
		}
	}
	if !w.changed {
		return doc, nil
	}
	return Normalize(fmt.Sprint(printer.Print(parsed))), nil
}

// substituteText is used when doc does not parse; execution reports the
// syntax error afterwards.
func substituteText(doc string, caller Caller, policy Policy) string {
	if caller.AlumniID == "" {
		return doc
	}
	quoted := strconv.Quote(caller.AlumniID)
	if policy == PolicyRewrite {
		doc = identityLiteral.ReplaceAllString(doc, "${1}: "+quoted)
	}
	return quotedPlaceholder.ReplaceAllString(doc, quoted)
}

type identityWalker struct {
	caller   Caller
	policy   Policy
	mutation bool
	changed  bool
}

func (w *identityWalker) selections(set *ast.SelectionSet) error {
	if set == nil {
		return nil
	}
	for _, sel := range set.Selections {
		switch s := sel.(type) {
		case *ast.Field:
			for _, arg := range s.Arguments {
				if err := w.value(arg.Name.Value, arg.Value); err != nil {
					return err
				}
			}
			if err := w.selections(s.SelectionSet); err != nil {
				return err
			}
		case *ast.InlineFragment:
			if err := w.selections(s.SelectionSet); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *identityWalker) value(name string, v ast.Value) error {
	switch val := v.(type) {
	case *ast.ObjectValue:
		for _, f := range val.Fields {
			if err := w.value(f.Name.Value, f.Value); err != nil {
				return err
			}
		}
		return nil
	case *ast.ListValue:
		for _, item := range val.Values {
			if err := w.value(name, item); err != nil {
				return err
			}
		}
		return nil
	}
	if !identityFields[name] {
		w.placeholder(v)
		return nil
	}
	if w.policy == PolicyRewrite {
		return w.rewrite(v)
	}
	return w.strict(name, v)
}

// placeholder binds CURRENT_USER outside the identity-bearing arguments.
func (w *identityWalker) placeholder(v ast.Value) {
	s, ok := v.(*ast.StringValue)
	if !ok || s.Value != Placeholder || w.caller.AlumniID == "" {
		return
	}
	s.Value = w.caller.AlumniID
	w.changed = true
}

func (w *identityWalker) rewrite(v ast.Value) error {
	s, ok := v.(*ast.StringValue)
	if !ok || w.caller.AlumniID == "" {
		return nil
	}
	if s.Value != w.caller.AlumniID {
		s.Value = w.caller.AlumniID
		w.changed = true
	}
	return nil
}

func (w *identityWalker) strict(name string, v ast.Value) error {
	switch val := v.(type) {
	case *ast.StringValue:
		if val.Value == Placeholder {
			if w.caller.AlumniID == "" {
				return &PolicyError{Field: name, Value: Placeholder, Reason: "requires an alumni identity"}
			}
			val.Value = w.caller.AlumniID
			w.changed = true
			return nil
		}
		if w.mutation && !w.caller.Admin && val.Value != w.caller.AlumniID {
			return &PolicyError{Field: name, Value: val.Value, Reason: "cannot act on behalf of another alumni"}
		}
	case *ast.Variable:
		if w.mutation && !w.caller.Admin {
			return &PolicyError{Field: name, Reason: "must be a literal value"}
		}
	default:
		if w.mutation && !w.caller.Admin {
			return &PolicyError{Field: name, Reason: "must be a string literal"}
		}
	}
	return nil
}
