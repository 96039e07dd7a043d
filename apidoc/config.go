package apidoc

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/apidocs/comment"
)

// Environment variables consulted by [LoadConfigFile].
const (
	EnvOutput    = "APIDOCS_OUTPUT"
	EnvWhitelist = "APIDOCS_WHITELIST"
)

var (
	// ErrInvalidConfig indicates a configuration that cannot start a run.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrReadConfig indicates a configuration file that could not be read or
	// decoded.
	ErrReadConfig = errors.New("read config")
)

// Flags holds CLI flag names for documentation configuration, allowing
// callers to customize flag names while keeping sensible defaults via
// [NewConfig].
type Flags struct {
	Output           string
	Controllers      string
	Models           string
	ControllerSuffix string
	Syntax           string
	Whitelist        string
	Schema           string
}

// Config holds the settings of a documentation run.
//
// Create instances with [NewConfig] or [LoadConfigFile], and register CLI
// flags with [Config.RegisterFlags]. Use [NewRun] to start a run.
type Config struct {
	// ControllerLocator, when set, replaces the Controllers folder. It
	// receives the singular resource name and returns a path.
	ControllerLocator func(resource string) string `yaml:"-"`
	// ModelLocator, when set, replaces the Models folder.
	ModelLocator func(resource string) string `yaml:"-"`

	Flags Flags `yaml:"-" validate:"-"`

	// Output is the directory receiving one Markdown file per resource.
	Output string `yaml:"output" validate:"required"`
	// Controllers is the folder holding "<plural><suffix>" source files.
	Controllers string `yaml:"controllers" validate:"required_without=ControllerLocator"`
	// Models is the folder holding "<singular>" source files.
	Models           string `yaml:"models" validate:"required_without=ModelLocator"`
	ControllerSuffix string `yaml:"controller_suffix" validate:"required,excludesall=/\\"`
	// Syntax names the comment conventions of the documented sources.
	Syntax string `yaml:"syntax" validate:"omitempty,oneof=go hash"`

	// Whitelist limits documentation to examples marked [MarkDocs].
	Whitelist bool `yaml:"whitelist"`
	// Schema adds inferred JSON Schema sections to JSON payloads.
	Schema bool `yaml:"schema"`
}

// NewConfig returns a new [Config] with default flag names and values.
func NewConfig() *Config {
	f := Flags{
		Output:           "docs-output",
		Controllers:      "docs-controllers",
		Models:           "docs-models",
		ControllerSuffix: "docs-controller-suffix",
		Syntax:           "docs-syntax",
		Whitelist:        "docs-whitelist",
		Schema:           "docs-schema",
	}

	return f.NewConfig()
}

// NewConfig creates a new [Config] with default values, embedding these
// flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags:            f,
		Output:           "api_docs",
		Controllers:      "handlers",
		Models:           "models",
		ControllerSuffix: comment.DefaultControllerSuffix,
		Syntax:           comment.GoSyntax.Name,
	}
}

// LoadConfigFile returns the defaults of [NewConfig], overlaid with the YAML
// document at path and then with the environment. An empty path skips the
// file.
//
//	output: docs/api
//	controllers: internal/handlers
//	models: internal/models
//	whitelist: true
func LoadConfigFile(path string) (*Config, error) {
	cfg := NewConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
		}

		err = yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField())
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadConfig, path, err)
		}
	}

	err := cfg.ApplyEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv overrides fields from environment variables found by lookup,
// typically [os.LookupEnv].
func (c *Config) ApplyEnv(lookup func(key string) (string, bool)) error {
	if v, ok := lookup(EnvOutput); ok && v != "" {
		c.Output = v
	}

	if v, ok := lookup(EnvWhitelist); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvWhitelist, err)
		}

		c.Whitelist = b
	}

	return nil
}

// RegisterFlags adds documentation flags to the given [*pflag.FlagSet]. The
// current field values become the flag defaults.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Output, c.Flags.Output, c.Output,
		"directory receiving the per-resource documentation")
	flags.StringVar(&c.Controllers, c.Flags.Controllers, c.Controllers,
		"folder of controller sources carrying action comments")
	flags.StringVar(&c.Models, c.Flags.Models, c.Models,
		"folder of model sources carrying resource comments")
	flags.StringVar(&c.ControllerSuffix, c.Flags.ControllerSuffix, c.ControllerSuffix,
		"suffix after the plural resource name in controller file names")
	flags.StringVar(&c.Syntax, c.Flags.Syntax, c.Syntax,
		fmt.Sprintf("comment syntax of the sources, one of: %s", syntaxNames()))
	flags.BoolVar(&c.Whitelist, c.Flags.Whitelist, c.Whitelist,
		"only document examples explicitly marked for documentation")
	flags.BoolVar(&c.Schema, c.Flags.Schema, c.Schema,
		"add inferred JSON Schema sections to JSON payloads")
}

// RegisterCompletions registers shell completions for documentation flags
// on cmd. Flags that are not registered on cmd are ignored.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	if cmd.Flag(c.Flags.Syntax) != nil {
		err := cmd.RegisterFlagCompletionFunc(c.Flags.Syntax,
			cobra.FixedCompletions(syntaxNames(), cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", c.Flags.Syntax, err)
		}
	}

	dirComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveFilterDirs
	}

	for _, flag := range []string{c.Flags.Output, c.Flags.Controllers, c.Flags.Models} {
		if cmd.Flag(flag) == nil {
			continue
		}

		err := cmd.RegisterFlagCompletionFunc(flag, dirComp)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// Validate reports whether the configuration can start a run. Errors wrap
// [ErrInvalidConfig].
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// NewExtractor creates a [comment.Extractor] reading the configured sources.
func (c *Config) NewExtractor() (*comment.Extractor, error) {
	syn, err := comment.LookupSyntax(c.Syntax)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	ex := &comment.Extractor{
		Controllers:      comment.Dir(c.Controllers),
		Models:           comment.Dir(c.Models),
		ControllerSuffix: c.ControllerSuffix,
		Syntax:           syn,
	}

	if c.ControllerLocator != nil {
		ex.Controllers = comment.Func(c.ControllerLocator)
	}

	if c.ModelLocator != nil {
		ex.Models = comment.Func(c.ModelLocator)
	}

	return ex, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func syntaxNames() []string {
	return []string{comment.GoSyntax.Name, comment.HashSyntax.Name}
}
