package inflect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/apidocs/inflect"
)

func TestInflect(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		fn    func(string) string
		input string
		want  string
	}{
		"singularize regular": {
			fn:    inflect.Singularize,
			input: "widgets",
			want:  "widget",
		},
		"singularize irregular": {
			fn:    inflect.Singularize,
			input: "people",
			want:  "person",
		},
		"pluralize regular": {
			fn:    inflect.Pluralize,
			input: "widget",
			want:  "widgets",
		},
		"pluralize y ending": {
			fn:    inflect.Pluralize,
			input: "category",
			want:  "categories",
		},
		"underscore camel case": {
			fn:    inflect.Underscore,
			input: "UserProfile",
			want:  "user_profile",
		},
		"underscore single word": {
			fn:    inflect.Underscore,
			input: "Widget",
			want:  "widget",
		},
		"underscore hyphenated": {
			fn:    inflect.Underscore,
			input: "user-profile",
			want:  "user_profile",
		},
		"camelize snake case": {
			fn:    inflect.Camelize,
			input: "user_profile",
			want:  "UserProfile",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.fn(tc.input))
		})
	}
}
