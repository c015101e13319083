package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/promptloom-dev/promptloom/internal/output"
	"github.com/promptloom-dev/promptloom/internal/profile"
)

// formatText is the plain-text mode of generate, batch, and mix: raw prompt
// text on stdout with no framing, so output can be piped straight into other
// tools.
const formatText = "text"

// CommonOptions contains output flags shared across commands.
type CommonOptions struct {
	Format  string
	Output  string
	NoColor bool

	// text marks commands whose default output is unframed prompt text.
	text bool
}

// DefaultCommonOptions returns sensible defaults.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{
		Format: "table",
	}
}

// TextCommonOptions returns defaults for commands that emit plain text
// unless a structured format is requested.
func TextCommonOptions() CommonOptions {
	return CommonOptions{
		Format: formatText,
		text:   true,
	}
}

// RegisterFlags adds common output flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&opts.Format, "format", opts.Format,
		"Output format: "+strings.Join(opts.formats(), ", "))
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false,
		"Disable ANSI colors in table output")
}

// ValidateFlags validates common options.
func (opts *CommonOptions) ValidateFlags() error {
	for _, f := range opts.formats() {
		if opts.Format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s (valid: %s)", opts.Format, strings.Join(opts.formats(), ", "))
}

// formats lists the formats this command accepts. Commands whose default is
// plain text accept "text" on top of the formatter set.
func (opts *CommonOptions) formats() []string {
	if opts.text {
		return append([]string{formatText}, output.SupportedFormats()...)
	}
	return output.SupportedFormats()
}

// OpenFormatter resolves the output writer and builds the formatter for it.
// The returned cleanup closes the file when --output was given.
func (opts *CommonOptions) OpenFormatter() (output.Formatter, func(), error) {
	writer, cleanup, err := opts.openWriter()
	if err != nil {
		return nil, nil, err
	}

	formatter, err := output.NewFormatter(opts.Format, writer, output.Options{
		Indent: true,
		Color:  !opts.NoColor && opts.Output == "",
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return formatter, cleanup, nil
}

// openWriter returns stdout or the --output file.
func (opts *CommonOptions) openWriter() (io.Writer, func(), error) {
	if opts.Output == "" {
		return os.Stdout, func() {}, nil
	}

	//nolint:gosec // G304: User-controlled output file path is intentional
	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}

// emitText writes one line of plain text to stdout or the --output file.
func emitText(opts *CommonOptions, text string) error {
	writer, cleanup, err := opts.openWriter()
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = fmt.Fprintln(writer, text)
	return err
}

// parseUint32 parses a decimal or 0x-prefixed 32-bit seed component.
func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// resolveProfilesDir picks the profiles directory. The --profiles flag wins,
// then the PROMPTLOOM_PROFILES environment variable or config key, then a
// profiles/ directory next to the executable, then one in the working
// directory.
func resolveProfilesDir() (string, error) {
	if profilesDir != "" {
		return profilesDir, nil
	}
	if dir := viper.GetString("profiles"); dir != "" {
		return dir, nil
	}

	if exePath, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(exePath), "profiles")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(cwd, "profiles")
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir, nil
	}

	return "", fmt.Errorf("no profiles directory found; pass --profiles or create %s", dir)
}

// newLoader builds the profile loader for the resolved directory.
func newLoader() (*profile.Loader, error) {
	dir, err := resolveProfilesDir()
	if err != nil {
		return nil, err
	}
	return profile.NewLoader(dir), nil
}

// newStore builds the cached profile source every generation command
// resolves through.
func newStore() (*profile.Loader, *profile.Store, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, nil, err
	}
	return loader, profile.NewStore(loader), nil
}
