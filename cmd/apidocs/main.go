// Package main provides the CLI entry point for apidocs, a companion to the
// apidoc package that works with the documentation it records.
//
// # Usage
//
//	apidocs assemble [dir] [-o api.apib] [--title T] [--host URL]
//	apidocs comments <test-file> <group label> ... [--docs-* flags]
//	apidocs schema <file.json|->
//	apidocs version
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"go.jacobcolvin.com/apidocs/apidoc"
	"go.jacobcolvin.com/apidocs/blueprint"
	"go.jacobcolvin.com/apidocs/group"
	"go.jacobcolvin.com/apidocs/log"
	"go.jacobcolvin.com/apidocs/version"
)

var (
	// ErrReadInput indicates an input file that could not be read.
	ErrReadInput = errors.New("read input")
	// ErrWriteOutput indicates output that could not be written.
	ErrWriteOutput = errors.New("write output")
	// ErrNoAction indicates group labels without an action label.
	ErrNoAction = errors.New("no action group")
	// ErrNoResource indicates group labels without a resource label.
	ErrNoResource = errors.New("no resource group")
)

func main() {
	rootCmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// cli holds the state shared by every subcommand.
type cli struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	logConfig  *log.Config
	docsConfig *apidoc.Config
	configPath string
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &cli{
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
		logConfig:  log.NewConfig(),
		docsConfig: apidoc.NewConfig(),
	}

	rootCmd := &cobra.Command{
		Use:   "apidocs",
		Short: "Work with API Blueprint documentation recorded by tests",
		Long: `apidocs works with the per-resource API Blueprint files that the apidoc
package writes while HTTP handler tests run. It joins them into one document,
previews the comments a test would pick up, and infers JSON Schemas.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: c.setupLogging,
	}

	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "",
		"YAML file with documentation settings")
	c.logConfig.RegisterFlags(flags)
	c.docsConfig.RegisterFlags(flags)

	rootCmd.AddCommand(
		c.newAssembleCmd(),
		c.newCommentsCmd(),
		c.newSchemaCmd(),
		c.newVersionCmd(),
	)

	for _, register := range []func(*cobra.Command) error{
		c.logConfig.RegisterCompletions,
		c.docsConfig.RegisterCompletions,
	} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(stderr, "register completions: %v\n", err)
		}
	}

	return rootCmd
}

// setupLogging installs the default logger. Without an explicit format,
// output that is not a terminal gets logfmt.
func (c *cli) setupLogging(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed(c.logConfig.Flags.Format) && !isTerminal(c.stderr) {
		c.logConfig.Format = string(log.FormatLogfmt)
	}

	handler, err := c.logConfig.NewHandler(c.stderr)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// loadDocsConfig reads the config file, if any, and applies the
// documentation flags given on the command line on top of it.
func (c *cli) loadDocsConfig(cmd *cobra.Command) (*apidoc.Config, error) {
	cfg, err := apidoc.LoadConfigFile(c.configPath)
	if err != nil {
		return nil, err
	}

	overlay := pflag.NewFlagSet("docs", pflag.ContinueOnError)
	cfg.RegisterFlags(overlay)

	var setErr error

	cmd.Flags().Visit(func(f *pflag.Flag) {
		if setErr != nil || overlay.Lookup(f.Name) == nil {
			return
		}

		setErr = overlay.Set(f.Name, f.Value.String())
	})

	if setErr != nil {
		return nil, fmt.Errorf("%w: %w", apidoc.ErrInvalidConfig, setErr)
	}

	return cfg, nil
}

func (c *cli) newAssembleCmd() *cobra.Command {
	var (
		output string
		header blueprint.Header
	)

	cmd := &cobra.Command{
		Use:   "assemble [dir]",
		Short: "Join the per-resource documents into one API Blueprint",
		Long: `assemble concatenates every Markdown file in dir, in name order, below a
"FORMAT: 1A" preamble. dir defaults to the configured output directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadDocsConfig(cmd)
			if err != nil {
				return err
			}

			dir := cfg.Output
			if len(args) > 0 {
				dir = args[0]
			}

			return c.assemble(dir, output, header)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "-", "output file path (- for stdout)")
	flags.StringVar(&header.Title, "title", "", "document title")
	flags.StringVar(&header.Description, "description", "", "document description")
	flags.StringVar(&header.Host, "host", "", "API host written as HOST metadata")

	return cmd
}

func (c *cli) assemble(dir, output string, h blueprint.Header) error {
	var sb strings.Builder

	n, err := blueprint.Assemble(dir, &sb, h)
	if err != nil {
		return err
	}

	err = c.write(output, []byte(sb.String()))
	if err != nil {
		return err
	}

	slog.Info("assembled documentation",
		slog.String("dir", dir),
		slog.Int("resources", n),
		slog.String("output", output),
	)

	return nil
}

func (c *cli) newCommentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comments <test-file> <group label>...",
		Short: "Show the comments documenting a test group",
		Long: `comments resolves the resource and action of a group chain the way a test
would, and prints the headers and comments that would open its documentation.
Labels are given from the outermost group inward, for example:

  apidocs comments widgets_test.go "Group Widget" "GET /widgets"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadDocsConfig(cmd)
			if err != nil {
				return err
			}

			return c.comments(cfg, args[0], args[1:])
		},
	}
}

func (c *cli) comments(cfg *apidoc.Config, testFile string, labels []string) error {
	err := cfg.Validate()
	if err != nil {
		return err
	}

	ex, err := cfg.NewExtractor()
	if err != nil {
		return err
	}

	var node *group.Node
	for _, label := range labels {
		node = group.NewAt(node, testFile, label)
	}

	action, ok := group.FindAction(node)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoAction, node)
	}

	resource, ok := group.FindResource(action)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoResource, node)
	}

	resourceComment, _, err := ex.ResourceComment(resource)
	if err != nil {
		return err
	}

	actionComment, err := ex.ActionComment(action)
	if err != nil {
		return err
	}

	var sb strings.Builder

	sb.WriteString("# Group " + resource.Capture + "\n\n")

	for _, line := range resourceComment {
		sb.WriteString(line + "\n")
	}

	sb.WriteString("## " + action.Capture + "\n")

	for _, line := range actionComment {
		sb.WriteString(line + "\n")
	}

	return c.write("-", []byte(sb.String()))
}

func (c *cli) newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <file.json|->",
		Short: "Print the JSON Schema inferred from a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.schema(args[0])
		},
	}
}

func (c *cli) schema(path string) error {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(c.stdin)
		if err != nil {
			return fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReadInput, err)
		}
	}

	s, err := blueprint.InferSchema(data)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return c.write("-", append(out, '\n'))
}

func (c *cli) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.write("-", []byte(version.Get().String()+"\n"))
		},
	}
}

// write sends data to stdout for "-" and to a file otherwise.
func (c *cli) write(output string, data []byte) error {
	if output == "" || output == "-" {
		_, err := c.stdout.Write(data)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}

		return nil
	}

	err := os.WriteFile(output, data, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}
