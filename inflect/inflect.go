// Package inflect converts resource names between the forms used in test
// file names, source file names, and output file names.
//
// Singular and plural forms come from [github.com/jinzhu/inflection]; case
// conversion comes from [github.com/iancoleman/strcase].
package inflect

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
)

// Singularize returns the singular form of word ("widgets" -> "widget").
func Singularize(word string) string {
	return inflection.Singular(word)
}

// Pluralize returns the plural form of word ("widget" -> "widgets").
func Pluralize(word string) string {
	return inflection.Plural(word)
}

// Underscore converts a camel-cased or hyphenated name to snake case
// ("UserProfile" -> "user_profile").
func Underscore(name string) string {
	return strcase.ToSnake(strings.TrimSpace(name))
}

// Camelize converts a snake-cased name to upper camel case
// ("user_profile" -> "UserProfile").
func Camelize(name string) string {
	return strcase.ToCamel(strings.TrimSpace(name))
}
