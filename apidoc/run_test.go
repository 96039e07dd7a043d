package apidoc_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/apidocs/apidoc"
	"go.jacobcolvin.com/apidocs/blueprint"
	"go.jacobcolvin.com/apidocs/group"
	"go.jacobcolvin.com/apidocs/log"
)

func TestRecordSkips(t *testing.T) {
	t.Parallel()

	widgets := group.New(nil, "Group Widget")
	list := widgets.Child("GET /widgets")
	ok := &blueprint.Exchange{ResponseStatus: http.StatusOK}

	tcs := map[string]struct {
		ex        apidoc.Example
		xc        *blueprint.Exchange
		want      apidoc.Result
		whitelist bool
	}{
		"opted out": {
			ex:   apidoc.Example{Group: list, Docs: apidoc.MarkSkip},
			xc:   ok,
			want: apidoc.SkippedOptOut,
		},
		"opted out in whitelist mode": {
			ex:        apidoc.Example{Group: list, Docs: apidoc.MarkSkip},
			xc:        ok,
			whitelist: true,
			want:      apidoc.SkippedOptOut,
		},
		"not whitelisted": {
			ex:        apidoc.Example{Group: list},
			xc:        ok,
			whitelist: true,
			want:      apidoc.SkippedNotWhitelisted,
		},
		"no exchange": {
			ex:   apidoc.Example{Group: list},
			want: apidoc.SkippedNoExchange,
		},
		"no group": {
			ex:   apidoc.Example{},
			xc:   ok,
			want: apidoc.SkippedNoAction,
		},
		"no action group": {
			ex:   apidoc.Example{Group: widgets.Child("helpers")},
			xc:   ok,
			want: apidoc.SkippedNoAction,
		},
		"no resource group": {
			ex:   apidoc.Example{Group: group.New(nil, "Widgets").Child("GET /widgets")},
			xc:   ok,
			want: apidoc.SkippedNoResource,
		},
		"unauthorized": {
			ex:   apidoc.Example{Group: list},
			xc:   &blueprint.Exchange{ResponseStatus: http.StatusUnauthorized},
			want: apidoc.SkippedStatus,
		},
		"forbidden": {
			ex:   apidoc.Example{Group: list, Docs: apidoc.MarkDocs},
			xc:   &blueprint.Exchange{ResponseStatus: http.StatusForbidden},
			want: apidoc.SkippedStatus,
		},
		"moved permanently": {
			ex:   apidoc.Example{Group: list},
			xc:   capture(t, httptest.NewRequest(http.MethodGet, "/gadgets", nil)),
			want: apidoc.SkippedStatus,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			writeFiles(t, root, goSources)

			run := newRun(t, root, func(cfg *apidoc.Config) {
				cfg.Whitelist = tc.whitelist
			})

			got, err := run.Record(tc.ex, tc.xc)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			entries, err := os.ReadDir(run.Dir())
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestRecordWhitelist(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, goSources)

	run := newRun(t, root, func(cfg *apidoc.Config) {
		cfg.Whitelist = true
	})

	list := group.New(nil, "Group Widget").Child("GET /widgets")
	xc := capture(t, httptest.NewRequest(http.MethodGet, "/widgets", nil))

	res, err := run.Record(apidoc.Example{Group: list, Description: "lists widgets"}, xc)
	require.NoError(t, err)
	assert.Equal(t, apidoc.SkippedNotWhitelisted, res)
	assert.NoFileExists(t, filepath.Join(run.Dir(), "widget.md"))

	res, err = run.Record(apidoc.Example{Group: list, Description: "lists widgets", Docs: apidoc.MarkDocs}, xc)
	require.NoError(t, err)
	assert.Equal(t, apidoc.Written, res)
	assert.FileExists(t, filepath.Join(run.Dir(), "widget.md"))
}

func TestRecordStatusKeepsPreviousRun(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, goSources)

	run := newRun(t, root, nil)
	stale := filepath.Join(run.Dir(), "widget.md")
	require.NoError(t, os.WriteFile(stale, []byte("# Group Widget\n"), 0o644))

	res, err := run.Record(
		apidoc.Example{Group: group.New(nil, "Group Widget").Child("POST /widgets")},
		capture(t, postWidget("")),
	)
	require.NoError(t, err)
	assert.Equal(t, apidoc.SkippedStatus, res)

	data, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.Equal(t, "# Group Widget\n", string(data))
}

func TestRecordLogs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"handlers/widgets_controller.go": "package handlers\n",
		"models/widget.go":               "package models\n",
	})

	var buf bytes.Buffer

	cfg := apidoc.NewConfig()
	cfg.Output = filepath.Join(root, "api_docs")
	cfg.Controllers = filepath.Join(root, "handlers")
	cfg.Models = filepath.Join(root, "models")

	run, err := apidoc.NewRun(cfg, apidoc.WithLogger(newLogger(&buf)))
	require.NoError(t, err)

	list := group.New(nil, "Group Widget").Child("GET /widgets")
	xc := capture(t, httptest.NewRequest(http.MethodGet, "/widgets", nil))

	res, err := run.Record(apidoc.Example{Group: list, Docs: apidoc.MarkSkip}, xc)
	require.NoError(t, err)
	assert.Equal(t, apidoc.SkippedOptOut, res)

	res, err = run.Record(apidoc.Example{Group: list, Description: "lists widgets"}, xc)
	require.NoError(t, err)
	assert.Equal(t, apidoc.Written, res)

	out := buf.String()
	assert.Contains(t, out, `"msg":"skip example"`)
	assert.Contains(t, out, `"reason":"opted out"`)
	assert.Contains(t, out, `"msg":"cannot find docs for resource"`)
	assert.Contains(t, out, `"msg":"cannot find docs for action"`)
	assert.Contains(t, out, `"action":"GET /widgets"`)

	want := "# Group Widget\n\n\n## GET /widgets\n\n+ Response 200 (application/json)\n\n    {\n      \"id\": 1\n    }\n\n"
	assert.Equal(t, want, readDoc(t, run, "widget"))
}

func TestNewRun(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	cfg := apidoc.NewConfig()
	cfg.Output = filepath.Join(root, "docs", "api")

	run, err := apidoc.NewRun(cfg)
	require.NoError(t, err)
	assert.DirExists(t, run.Dir())
	assert.Empty(t, run.Touched())

	cfg.Syntax = "cobol"
	_, err = apidoc.NewRun(cfg)
	require.ErrorIs(t, err, apidoc.ErrInvalidConfig)

	file := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	cfg = apidoc.NewConfig()
	cfg.Output = filepath.Join(file, "docs")
	_, err = apidoc.NewRun(cfg)
	require.ErrorIs(t, err, blueprint.ErrIO)
}

func TestResultString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "written", apidoc.Written.String())
	assert.Equal(t, "not whitelisted", apidoc.SkippedNotWhitelisted.String())
	assert.Equal(t, "Result(42)", apidoc.Result(42).String())
}

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(log.NewHandler(buf, log.LevelDebug, log.FormatJSON))
}
