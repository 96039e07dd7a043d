package blueprint

import (
	"bytes"
	"mime"
	"strings"
)

// Content types with special handling.
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// Exchange is a read-only snapshot of one captured request/response pair.
type Exchange struct {
	RequestContentType  string
	Authorization       string
	ResponseContentType string
	RequestBody         []byte
	ResponseBody        []byte
	ResponseStatus      int
}

// Excluded reports whether responses with status are left out of the
// documentation.
func Excluded(status int) bool {
	switch status {
	case 301, 401, 403:
		return true
	}

	return false
}

// present reports whether b holds anything besides whitespace.
func present(b []byte) bool {
	return len(bytes.TrimSpace(b)) > 0
}

func isJSON(contentType string) bool {
	return strings.Contains(contentType, ContentTypeJSON)
}

func isForm(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mt == ContentTypeForm
}
