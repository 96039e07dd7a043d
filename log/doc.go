// Package log provides structured logging handler construction for use with
// [log/slog].
//
// It supports three output formats ([FormatJSON], [FormatLogfmt], and
// [FormatText]) and four severity levels ([LevelError], [LevelWarn],
// [LevelInfo], and [LevelDebug]). The text format is rendered by
// [charm.land/log/v2] and is meant for people watching a terminal; the other
// two are plain [slog] handlers meant for machines.
//
// Use [NewHandler] to create a handler directly, or use [Config] with CLI flag
// integration via [github.com/spf13/pflag] and shell completion support via
// [github.com/spf13/cobra]:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	slog.SetDefault(slog.New(handler))
//
// Documentation runs report missing comment blocks at [LevelWarn] and skipped
// test cases at [LevelDebug], so the default [LevelInfo] shows the former and
// hides the latter.
package log
