package blueprint

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Entry is everything known about one documented test case.
type Entry struct {
	Exchange *Exchange
	// ResourceKey names the output file, without extension.
	ResourceKey  string
	ResourceName string
	ActionHeader string
	Description  string
	// ResourceComment and ActionComment are written line by line below
	// their headers. A nil or empty comment still writes one empty line.
	ResourceComment []string
	ActionComment   []string
}

// Writer maintains the per-resource Markdown files of a single run.
//
// Create instances with [NewWriter]. A Writer is safe for concurrent use;
// entries for the same resource are serialised.
type Writer struct {
	logger *slog.Logger
	docs   map[string]*document
	dir    string
	schema bool
	mu     sync.Mutex
}

// document is the run state of one resource file.
type document struct {
	headers map[string]struct{}
	mu      sync.Mutex
	touched bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithSchema adds an inferred JSON Schema section to every JSON payload.
func WithSchema(schema bool) Option {
	return func(w *Writer) {
		w.schema = schema
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		w.logger = logger
	}
}

// NewWriter creates a Writer for files in dir. The directory must exist
// before the first [Writer.Append].
func NewWriter(dir string, opts ...Option) *Writer {
	w := &Writer{
		dir:    dir,
		docs:   map[string]*document{},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Path returns the file written for a resource key.
func (w *Writer) Path(key string) string {
	return filepath.Join(w.dir, key+".md")
}

// Touched returns the resource keys written so far in this run, sorted.
func (w *Writer) Touched() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var keys []string

	for k, doc := range w.docs {
		doc.mu.Lock()
		if doc.touched {
			keys = append(keys, k)
		}
		doc.mu.Unlock()
	}

	slices.Sort(keys)

	return keys
}

// Append documents one test case. Entries whose response status is
// [Excluded] leave the file system untouched. The first entry for a resource
// replaces any file left by an earlier run.
//
// The entry is rendered completely before the file is opened, so malformed
// bodies fail with [ErrDataFormat] without writing anything. File system
// failures return [ErrIO]; a failure part way through a write can leave a
// partial section behind.
func (w *Writer) Append(e Entry) error {
	if e.Exchange == nil {
		return fmt.Errorf("%w: entry for %q has no exchange", ErrDataFormat, e.ResourceKey)
	}

	if Excluded(e.Exchange.ResponseStatus) {
		return nil
	}

	doc := w.document(e.ResourceKey)

	doc.mu.Lock()
	defer doc.mu.Unlock()

	first := !doc.touched
	_, seen := doc.headers[e.ActionHeader]
	newAction := first || !seen

	var buf bytes.Buffer

	if first {
		buf.WriteString("# Group " + e.ResourceName + "\n\n")
		writeLines(&buf, e.ResourceComment)
	}

	if newAction {
		buf.WriteString("## " + e.ActionHeader + "\n")
		writeLines(&buf, e.ActionComment)
	}

	err := w.renderExchange(&buf, e)
	if err != nil {
		return fmt.Errorf("%s: %w", e.ResourceKey, err)
	}

	path := w.Path(e.ResourceKey)

	err = writeFile(path, buf.Bytes(), first)
	if err != nil {
		return err
	}

	if first {
		doc.touched = true
		doc.headers = map[string]struct{}{}
	}

	doc.headers[e.ActionHeader] = struct{}{}

	w.logger.Debug("documented test case",
		slog.String("file", path),
		slog.String("action", e.ActionHeader),
		slog.Bool("new_file", first),
		slog.Bool("new_action", newAction),
	)

	return nil
}

func (w *Writer) document(key string) *document {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc, ok := w.docs[key]
	if !ok {
		doc = &document{}
		w.docs[key] = doc
	}

	return doc
}

// renderExchange writes the request and response sections of e.
func (w *Writer) renderExchange(buf *bytes.Buffer, e Entry) error {
	xc := e.Exchange

	reqBody := xc.RequestBody
	reqType := xc.RequestContentType
	hasBody := present(reqBody)
	hasAuth := strings.TrimSpace(xc.Authorization) != ""

	if hasBody || hasAuth {
		if isForm(reqType) {
			reqType = ContentTypeJSON

			var err error

			reqBody, err = FormToJSON(reqBody)
			if err != nil {
				return err
			}
		}

		buf.WriteString("+ Request " + e.Description + " (" + reqType + ")\n\n")

		var headers []string
		if hasAuth {
			headers = []string{"Authorization: " + xc.Authorization}
		}

		var body []byte
		if hasBody && isJSON(reqType) {
			body = reqBody
		}

		err := w.renderPayload(buf, headers, body)
		if err != nil {
			return fmt.Errorf("request body: %w", err)
		}
	}

	buf.WriteString("+ Response " + strconv.Itoa(xc.ResponseStatus) + " (" + xc.ResponseContentType + ")\n\n")

	var body []byte
	if present(xc.ResponseBody) && isJSON(xc.ResponseContentType) {
		body = xc.ResponseBody
	}

	err := w.renderPayload(buf, nil, body)
	if err != nil {
		return fmt.Errorf("response body: %w", err)
	}

	return nil
}

// renderPayload writes the headers and body sections of a request or
// response. Without a schema, a body with no headers is written directly
// under the payload line, and a body following headers gets a "+ Body"
// marker with deeper indentation. With a schema, every part is an explicit
// nested section.
func (w *Writer) renderPayload(buf *bytes.Buffer, headers []string, body []byte) error {
	var pretty, schema string

	if body != nil {
		var err error

		pretty, err = prettyJSON(body)
		if err != nil {
			return err
		}

		if w.schema {
			schema, err = prettySchema(body)
			if err != nil {
				return err
			}
		}
	}

	if w.schema {
		if len(headers) > 0 {
			buf.WriteString(indent("+ Headers\n\n", 4))
			buf.WriteString(indent(strings.Join(headers, "\n")+"\n\n", 12))
		}

		if body != nil {
			buf.WriteString(indent("+ Body\n\n", 4))
			buf.WriteString(indent(pretty+"\n\n", 12))
			buf.WriteString(indent("+ Schema\n\n", 4))
			buf.WriteString(indent(schema+"\n\n", 12))
		}

		return nil
	}

	if len(headers) > 0 {
		buf.WriteString("+ Headers\n\n")
		buf.WriteString(indent(strings.Join(headers, "\n")+"\n\n", 4))
	}

	if body != nil {
		if len(headers) > 0 {
			buf.WriteString("+ Body\n")
			buf.WriteString(indent(pretty+"\n\n", 6))
		} else {
			buf.WriteString(indent(pretty+"\n\n", 4))
		}
	}

	return nil
}

// writeLines writes each line followed by a newline; an empty list writes a
// single empty line.
func writeLines(buf *bytes.Buffer, lines []string) {
	if len(lines) == 0 {
		buf.WriteByte('\n')

		return
	}

	for _, line := range lines {
		buf.WriteString(line)

		if !strings.HasSuffix(line, "\n") {
			buf.WriteByte('\n')
		}
	}
}

// indent prefixes every non-empty line of s with n spaces.
func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.SplitAfter(s, "\n")

	var sb strings.Builder

	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			sb.WriteString(pad)
		}

		sb.WriteString(line)
	}

	return sb.String()
}

// writeFile appends data to path. When reset is set, any existing file is
// removed first.
func writeFile(path string, data []byte, reset bool) error {
	if reset {
		err := os.Remove(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	_, err = f.Write(data)
	if err != nil {
		_ = f.Close()

		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	return nil
}
