package comment

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.jacobcolvin.com/apidocs/group"
	"go.jacobcolvin.com/apidocs/inflect"
)

// Sentinel errors returned by the extractor.
var (
	ErrSourceNotFound = errors.New("source not found")
	ErrRead           = errors.New("read source")
	ErrUnknownSyntax  = errors.New("unknown syntax")
)

// DefaultControllerSuffix follows the pluralized resource name in controller
// file names, as in "widgets_controller.go".
const DefaultControllerSuffix = "_controller"

// Extractor reads action comments from controller files and resource
// comments from model files.
//
// The zero value is not usable; set at least the locators. A zero Syntax
// means [GoSyntax].
type Extractor struct {
	Logger           *slog.Logger
	Controllers      Locator
	Models           Locator
	ControllerSuffix string
	Syntax           Syntax
}

// ActionComment returns the comment block documenting the action identified
// by id. A controller file that exists but carries no matching block yields
// an empty block and a warning; a controller file that does not exist is an
// error wrapping [ErrSourceNotFound].
func (e *Extractor) ActionComment(id group.Identity) (Block, error) {
	syn := e.syntax()
	pat := syn.compile()

	resource, err := resourceToken(id, pat)
	if err != nil {
		return nil, err
	}

	suffix := e.ControllerSuffix
	if suffix == "" {
		suffix = DefaultControllerSuffix
	}

	path := e.Controllers.Resolve(resource, inflect.Pluralize(resource)+suffix+syn.Ext)

	f, err := open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	block, err := newScanner(syn.anchor(id.Capture), pat.actionLine).scan(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if len(block) == 0 {
		e.logger().Warn("cannot find docs for action",
			slog.String("action", id.Capture),
			slog.String("file", path),
		)

		return Block{}, nil
	}

	return block, nil
}

// ResourceComment returns the comment block documenting the resource
// identified by id. It first looks for a block anchored by the resource
// label, then for the comment immediately above the first declaration. The
// boolean is false when neither exists.
func (e *Extractor) ResourceComment(id group.Identity) (Block, bool, error) {
	syn := e.syntax()
	pat := syn.compile()

	resource, err := resourceToken(id, pat)
	if err != nil {
		return nil, false, err
	}

	path := e.Models.Resolve(resource, resource+syn.Ext)

	src, err := readFile(path)
	if err != nil {
		return nil, false, err
	}

	block, err := newScanner(syn.anchor(id.Node.Label()), pat.resourceLine).scan(bytes.NewReader(src))
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}

	if len(block) > 0 {
		return block, true, nil
	}

	block, ok := precedingComment(splitLines(src), pat)
	if !ok {
		e.logger().Warn("cannot find docs for resource",
			slog.String("resource", inflect.Camelize(resource)),
			slog.String("file", path),
		)

		return nil, false, nil
	}

	return block, true, nil
}

// precedingComment returns the comment lines directly above the first
// declaration in lines, in file order, followed by an empty separator.
func precedingComment(lines []string, pat patterns) (Block, bool) {
	row := -1

	for i, line := range lines {
		if pat.decl.MatchString(line) {
			row = i

			break
		}
	}

	if row < 0 {
		return nil, false
	}

	block := Block{""}

	for row--; row >= 0; row-- {
		m := pat.actionLine.FindStringSubmatch(lines[row])
		if m == nil {
			break
		}

		block = append(Block{strings.TrimRight(m[1], " \t")}, block...)
	}

	return block, true
}

// resourceToken derives the singular resource name from the test file that
// declared the group, e.g. "widgets_test.go" gives "widget".
func resourceToken(id group.Identity, pat patterns) (string, error) {
	if id.Node == nil {
		return "", fmt.Errorf("%w: identity has no group", ErrSourceNotFound)
	}

	m := pat.testFile.FindStringSubmatch(filepath.Base(id.Node.SourceFile))
	if m == nil {
		return "", fmt.Errorf("%w: cannot derive resource from test file %q",
			ErrSourceNotFound, id.Node.SourceFile)
	}

	return inflect.Singularize(m[1]), nil
}

func (e *Extractor) syntax() Syntax {
	if e.Syntax.Marker == "" {
		return GoSyntax
	}

	return e.Syntax
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}

	return slog.Default()
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrSourceNotFound, err)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return f, nil
}

func readFile(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrSourceNotFound, err)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return src, nil
}

func splitLines(src []byte) []string {
	s := strings.ReplaceAll(string(src), "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")

	if s == "" {
		return nil
	}

	return strings.Split(s, "\n")
}
