package blueprint

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Header is the preamble written before the resource sections by
// [Assemble].
type Header struct {
	Title       string
	Description string
	Host        string
}

// Assemble writes a single API Blueprint document to w, made of a
// "FORMAT: 1A" preamble followed by every "*.md" file in dir in name order.
// It returns the number of resource files included.
func Assemble(dir string, w io.Writer, h Header) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}

		names = append(names, entry.Name())
	}

	slices.Sort(names)

	var buf bytes.Buffer

	buf.WriteString("FORMAT: 1A\n")

	if h.Host != "" {
		buf.WriteString("HOST: " + h.Host + "\n")
	}

	buf.WriteByte('\n')

	if h.Title != "" {
		buf.WriteString("# " + h.Title + "\n\n")
	}

	if d := strings.TrimSpace(h.Description); d != "" {
		buf.WriteString(d + "\n\n")
	}

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrIO, err)
		}

		buf.Write(data)

		if len(data) > 0 && !bytes.HasSuffix(data, []byte("\n")) {
			buf.WriteByte('\n')
		}
	}

	_, err = w.Write(buf.Bytes())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}

	return len(names), nil
}
