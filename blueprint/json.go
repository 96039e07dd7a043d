package blueprint

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Sentinel errors returned by the writer.
var (
	ErrDataFormat = errors.New("data format")
	ErrIO         = errors.New("write documentation")
)

// prettyJSON re-indents body with two spaces per level, keeping key order.
func prettyJSON(body []byte) (string, error) {
	var buf bytes.Buffer

	err := json.Indent(&buf, bytes.TrimSpace(body), "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDataFormat, err)
	}

	return buf.String(), nil
}

// formParams is a string-keyed object that remembers insertion order.
type formParams struct {
	values map[string]any
	keys   []string
}

func newFormParams() *formParams {
	return &formParams{values: map[string]any{}}
}

func (p *formParams) get(k string) (any, bool) {
	v, ok := p.values[k]

	return v, ok
}

func (p *formParams) set(k string, v any) {
	if _, ok := p.values[k]; !ok {
		p.keys = append(p.keys, k)
	}

	p.values[k] = v
}

var (
	formKeyPattern   = regexp.MustCompile(`^[\[\]]*([^\[\]]+)\]*`)
	formChildPattern = regexp.MustCompile(`^\[\]\[([^\[\]]+)\]$`)
	formNestPattern  = regexp.MustCompile(`^\[\](.+)$`)
)

// FormToJSON converts an application/x-www-form-urlencoded body into the
// equivalent JSON object. Bracketed keys nest: "a[b]=1" becomes
// {"a": {"b": "1"}} and "a[]=1&a[]=2" becomes {"a": ["1", "2"]}. Keys keep
// their first-seen order; a key without "=" maps to null.
func FormToJSON(body []byte) ([]byte, error) {
	params := newFormParams()

	for pair := range strings.SplitSeq(string(body), "&") {
		if pair == "" {
			continue
		}

		rawKey, rawValue, hasValue := strings.Cut(pair, "=")

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("%w: form key %q: %w", ErrDataFormat, rawKey, err)
		}

		var value any

		if hasValue {
			s, err := url.QueryUnescape(rawValue)
			if err != nil {
				return nil, fmt.Errorf("%w: form value for %q: %w", ErrDataFormat, key, err)
			}

			value = s
		}

		err = normalizeParam(params, key, value)
		if err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer

	err := encodeForm(&buf, params)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// normalizeParam stores value under the bracketed name inside params.
func normalizeParam(params *formParams, name string, value any) error {
	m := formKeyPattern.FindStringSubmatchIndex(name)
	if m == nil {
		return nil
	}

	k := name[m[2]:m[3]]
	after := name[m[1]:]

	switch {
	case after == "" || after == "[":
		params.set(k, value)

	case after == "[]":
		list, err := listParam(params, k)
		if err != nil {
			return err
		}

		params.set(k, append(list, value))

	case formChildPattern.MatchString(after) || formNestPattern.MatchString(after):
		child := after[2:]
		if sm := formChildPattern.FindStringSubmatch(after); sm != nil {
			child = sm[1]
		}

		list, err := listParam(params, k)
		if err != nil {
			return err
		}

		if n := len(list); n > 0 {
			if last, ok := list[n-1].(*formParams); ok && !nestedHas(last, child) {
				return normalizeParam(last, child, value)
			}
		}

		next := newFormParams()

		err = normalizeParam(next, child, value)
		if err != nil {
			return err
		}

		params.set(k, append(list, next))

	default:
		v, ok := params.get(k)
		if !ok {
			v = newFormParams()
			params.set(k, v)
		}

		child, ok := v.(*formParams)
		if !ok {
			return fmt.Errorf("%w: form key %q expected an object", ErrDataFormat, k)
		}

		return normalizeParam(child, after, value)
	}

	return nil
}

func listParam(params *formParams, k string) ([]any, error) {
	v, ok := params.get(k)
	if !ok {
		return nil, nil
	}

	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: form key %q expected an array", ErrDataFormat, k)
	}

	return list, nil
}

// nestedHas reports whether the bracketed name is already set in params.
func nestedHas(params *formParams, name string) bool {
	m := formKeyPattern.FindStringSubmatchIndex(name)
	if m == nil {
		return false
	}

	v, ok := params.get(name[m[2]:m[3]])
	if !ok {
		return false
	}

	after := name[m[1]:]
	if after == "" {
		return true
	}

	child, ok := v.(*formParams)
	if !ok {
		return true
	}

	return nestedHas(child, after)
}

// encodeForm writes v as compact JSON without HTML escaping.
func encodeForm(buf *bytes.Buffer, v any) error {
	switch v := v.(type) {
	case nil:
		buf.WriteString("null")

	case string:
		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)

		err := enc.Encode(v)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDataFormat, err)
		}

		buf.Truncate(buf.Len() - 1) // Encode appends a newline.

	case []any:
		buf.WriteByte('[')

		for i, item := range v {
			if i > 0 {
				buf.WriteByte(',')
			}

			err := encodeForm(buf, item)
			if err != nil {
				return err
			}
		}

		buf.WriteByte(']')

	case *formParams:
		buf.WriteByte('{')

		for i, k := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}

			err := encodeForm(buf, k)
			if err != nil {
				return err
			}

			buf.WriteByte(':')

			err = encodeForm(buf, v.values[k])
			if err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	}

	return nil
}
