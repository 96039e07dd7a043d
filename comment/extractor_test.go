package comment_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/apidocs/comment"
	"go.jacobcolvin.com/apidocs/group"
	"go.jacobcolvin.com/apidocs/stringtest"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func actionID(t *testing.T, testFile, label string) group.Identity {
	t.Helper()

	n := group.NewAt(group.NewAt(nil, testFile, "Group Widget"), testFile, label)

	id, ok := group.FindAction(n)
	require.True(t, ok)

	return id
}

func resourceID(t *testing.T, testFile string) group.Identity {
	t.Helper()

	id, ok := group.Find(group.NewAt(nil, testFile, "Group Widget"), group.Resource)
	require.True(t, ok)

	return id
}

func TestActionComment(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		source string
		label  string
		want   comment.Block
		notice bool
	}{
		"block followed by code": {
			label: "GET /widgets",
			source: stringtest.Input(`
				package handlers

				// GET /widgets
				// Lists widgets.
				//
				// Newest first.
				func (h *Handler) List() {}
			`),
			want: comment.Block{"Lists widgets.", "", "Newest first.", ""},
		},
		"indented anchor with trailing space": {
			label:  "POST /widgets",
			source: "\t//   POST /widgets   \n\t// Creates a widget.\nfunc create() {}\n",
			want:   comment.Block{"Creates a widget.", ""},
		},
		"block runs to end of file": {
			label:  "GET /widgets",
			source: "// GET /widgets\n// Lists widgets.",
			want:   comment.Block{"Lists widgets."},
		},
		"anchor without comment lines": {
			label:  "GET /widgets",
			source: "// GET /widgets\nfunc list() {}\n",
			want:   comment.Block{""},
		},
		"anchor is matched literally": {
			label:  "GET /widgets/{id}",
			source: "// GET /widgets/1\n// Wrong one.\nfunc show() {}\n",
			want:   comment.Block{},
			notice: true,
		},
		"anchor must fill the line": {
			label:  "GET /widgets",
			source: "// GET /widgets/{id}\n// Shows a widget.\nfunc show() {}\n",
			want:   comment.Block{},
			notice: true,
		},
		"anchor on last line": {
			label:  "GET /widgets",
			source: "func list() {}\n// GET /widgets\n",
			want:   comment.Block{},
			notice: true,
		},
		"crlf line endings": {
			label:  "GET /widgets",
			source: "// GET /widgets\r\n// Lists widgets.\r\nfunc list() {}\r\n",
			want:   comment.Block{"Lists widgets.", ""},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "handlers", "widgets_controller.go"), tc.source)

			var logs bytes.Buffer

			e := &comment.Extractor{
				Logger:      slog.New(slog.NewTextHandler(&logs, nil)),
				Controllers: comment.Dir(filepath.Join(dir, "handlers")),
			}

			got, err := e.ActionComment(actionID(t, filepath.Join(dir, "widgets_test.go"), tc.label))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			if tc.notice {
				assert.Contains(t, logs.String(), "cannot find docs for action")
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}

func TestActionCommentLocator(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "api", "widget_routes.go")
	writeFile(t, path, "// DELETE /widgets/{id}\n// Removes a widget.\n")

	var gotResource string

	e := &comment.Extractor{
		Controllers: comment.Func(func(resource string) string {
			gotResource = resource

			return path
		}),
	}

	got, err := e.ActionComment(actionID(t, "/spec/widgets_test.go", "DELETE /widgets/{id}"))
	require.NoError(t, err)
	assert.Equal(t, comment.Block{"Removes a widget."}, got)
	assert.Equal(t, "widget", gotResource)
}

func TestActionCommentErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		testFile string
	}{
		"missing controller": {
			testFile: "widgets_test.go",
		},
		"test file without suffix": {
			testFile: "widgets.go",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			e := &comment.Extractor{Controllers: comment.Dir(t.TempDir())}

			_, err := e.ActionComment(actionID(t, tc.testFile, "GET /widgets"))
			require.ErrorIs(t, err, comment.ErrSourceNotFound)
		})
	}
}

func TestResourceComment(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		syntax comment.Syntax
		file   string
		source string
		want   comment.Block
		wantOK bool
		notice bool
	}{
		"go doc comment above type": {
			syntax: comment.GoSyntax,
			file:   "widget.go",
			source: stringtest.Input(`
				package models

				import "time"

				// Widget is something you can buy.
				// It has a name.
				type Widget struct {
					CreatedAt time.Time
				}
			`),
			want:   comment.Block{"Widget is something you can buy.", "It has a name.", ""},
			wantOK: true,
		},
		"anchored block wins": {
			syntax: comment.GoSyntax,
			file:   "widget.go",
			source: stringtest.Input(`
				// Group Widget
				/// Widgets
				// A widget resource.

				// Widget is a model.
				type Widget struct{}
			`),
			want:   comment.Block{"Widgets", "A widget resource.", ""},
			wantOK: true,
		},
		"hash syntax class": {
			syntax: comment.HashSyntax,
			file:   "widget.rb",
			source: "# Widget resource\nclass Widget < ApplicationRecord\nend\n",
			want:   comment.Block{"Widget resource", ""},
			wantOK: true,
		},
		"hash syntax anchored with heading marks": {
			syntax: comment.HashSyntax,
			file:   "widget.rb",
			source: "# Group Widget\n## Widgets\n# Things.\nclass Widget\nend\n",
			want:   comment.Block{"Widgets", "Things.", ""},
			wantOK: true,
		},
		"declaration without comment": {
			syntax: comment.GoSyntax,
			file:   "widget.go",
			source: "package models\n\ntype Widget struct{}\n",
			want:   comment.Block{""},
			wantOK: true,
		},
		"declaration on first line": {
			syntax: comment.GoSyntax,
			file:   "widget.go",
			source: "type Widget struct{}\n",
			want:   comment.Block{""},
			wantOK: true,
		},
		"no declaration": {
			syntax: comment.GoSyntax,
			file:   "widget.go",
			source: "package models\n\n// Helpers only.\nfunc helper() {}\n",
			wantOK: false,
			notice: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "models", tc.file), tc.source)

			var logs bytes.Buffer

			e := &comment.Extractor{
				Logger: slog.New(slog.NewTextHandler(&logs, nil)),
				Models: comment.Dir(filepath.Join(dir, "models")),
				Syntax: tc.syntax,
			}

			got, ok, err := e.ResourceComment(resourceID(t, filepath.Join(dir, "widgets"+tc.syntax.TestSuffix)))
			require.NoError(t, err)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)

			if tc.notice {
				assert.Contains(t, logs.String(), "cannot find docs for resource")
				assert.Contains(t, logs.String(), "resource=Widget")
			}
		})
	}
}

func TestResourceCommentMissingModel(t *testing.T) {
	t.Parallel()

	e := &comment.Extractor{Models: comment.Dir(t.TempDir())}

	_, _, err := e.ResourceComment(resourceID(t, "widgets_test.go"))
	require.ErrorIs(t, err, comment.ErrSourceNotFound)
}

func TestLookupSyntax(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want    comment.Syntax
		input   string
		wantErr bool
	}{
		"default": {input: "", want: comment.GoSyntax},
		"go":      {input: "go", want: comment.GoSyntax},
		"hash":    {input: "hash", want: comment.HashSyntax},
		"unknown": {input: "lisp", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := comment.LookupSyntax(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, comment.ErrUnknownSyntax)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
