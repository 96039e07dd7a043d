package comment

import (
	"fmt"
	"regexp"
)

// Syntax describes the comment conventions of the documented application's
// source language.
type Syntax struct {
	// Name identifies the syntax in configuration files and flags.
	Name string
	// Marker starts a line comment.
	Marker string
	// Extra is a character that may repeat right after the marker in
	// resource comments, such as the second "#" of "## Widgets".
	Extra string
	// Decl is the keyword that starts the primary declaration of a model.
	Decl string
	// Ext is the source file extension, including the dot.
	Ext string
	// TestSuffix ends the test file names that resource names are derived
	// from.
	TestSuffix string
}

var (
	// GoSyntax documents Go applications tested with Go tests.
	GoSyntax = Syntax{
		Name:       "go",
		Marker:     "//",
		Extra:      "/",
		Decl:       "type",
		Ext:        ".go",
		TestSuffix: "_test.go",
	}
	// HashSyntax documents Ruby-style applications with "#" comments and
	// "class" declarations, tested by "_spec.rb" files.
	HashSyntax = Syntax{
		Name:       "hash",
		Marker:     "#",
		Extra:      "#",
		Decl:       "class",
		Ext:        ".rb",
		TestSuffix: "_spec.rb",
	}
)

// LookupSyntax returns the built-in syntax with the given name.
func LookupSyntax(name string) (Syntax, error) {
	switch name {
	case GoSyntax.Name, "":
		return GoSyntax, nil
	case HashSyntax.Name:
		return HashSyntax, nil
	}

	return Syntax{}, fmt.Errorf("%w: %q", ErrUnknownSyntax, name)
}

// patterns are the compiled expressions for one [Syntax].
type patterns struct {
	testFile     *regexp.Regexp
	actionLine   *regexp.Regexp
	resourceLine *regexp.Regexp
	decl         *regexp.Regexp
}

func (s Syntax) compile() patterns {
	marker := regexp.QuoteMeta(s.Marker)

	extra := ""
	if s.Extra != "" {
		extra = "(?:" + regexp.QuoteMeta(s.Extra) + ")* ?"
	}

	return patterns{
		testFile:     regexp.MustCompile(`([A-Za-z_-]+)` + regexp.QuoteMeta(s.TestSuffix) + `$`),
		actionLine:   regexp.MustCompile(`^\s*` + marker + ` ?(.*)$`),
		resourceLine: regexp.MustCompile(`^\s*` + marker + ` ?` + extra + `(.*)$`),
		decl:         regexp.MustCompile(`^\s*` + regexp.QuoteMeta(s.Decl) + `\s+\w+`),
	}
}

// anchor matches a comment line holding exactly label.
func (s Syntax) anchor(label string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*` + regexp.QuoteMeta(s.Marker) + `\s*` + regexp.QuoteMeta(label) + `\s*$`)
}
