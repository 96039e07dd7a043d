package group

import (
	"regexp"
	"strings"
)

// Kind says which label convention an [Identity] was recovered from.
type Kind int

const (
	// KindResource labels look like "Group Widget".
	KindResource Kind = iota
	// KindAction labels look like "GET /widgets".
	KindAction
)

func (k Kind) String() string {
	switch k {
	case KindResource:
		return "resource"
	case KindAction:
		return "action"
	}

	return "unknown"
}

var (
	resourcePattern = regexp.MustCompile(`Group\s(\w+)`)
	actionPattern   = regexp.MustCompile(`(?m)(GET|POST|PATCH|PUT|DELETE)\s(.+)$`)
)

// Identity is a label match at a specific node.
type Identity struct {
	Node *Node
	// Capture is the resource name for resources, and "METHOD path" for
	// actions.
	Capture string
	Method  string
	Path    string
	Kind    Kind
}

// Matcher recognises one label convention.
type Matcher struct {
	match func(text string) (Identity, bool)
	kind  Kind
}

var (
	// Resource matches "Group <Name>" labels.
	Resource = Matcher{kind: KindResource, match: func(text string) (Identity, bool) {
		name, ok := MatchResource(text)

		return Identity{Kind: KindResource, Capture: name}, ok
	}}
	// Action matches "<METHOD> <path>" labels.
	Action = Matcher{kind: KindAction, match: func(text string) (Identity, bool) {
		method, path, ok := MatchAction(text)

		return Identity{
			Kind:    KindAction,
			Capture: method + " " + path,
			Method:  method,
			Path:    path,
		}, ok
	}}
)

// Kind returns the convention m recognises.
func (m Matcher) Kind() Kind {
	return m.kind
}

// Match applies m to a single label.
func (m Matcher) Match(text string) (Identity, bool) {
	return m.match(text)
}

// MatchResource returns the resource name from the first "Group <Name>"
// occurrence in text.
func MatchResource(text string) (string, bool) {
	m := resourcePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	return m[1], true
}

// MatchAction returns the method and the rest of the line from the first
// "<METHOD> <path>" occurrence in text.
func MatchAction(text string) (method, path string, ok bool) {
	m := actionPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}

	return m[1], strings.TrimSuffix(m[2], "\r"), true
}
