package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

const (
	CommandIconSet = "iconset"
	CommandICNS    = "icns"
	CommandAll     = "all"
)

type Options struct {
	Root        string `long:"root" env:"ICONS_ROOT" default:"." description:"Project root that relative paths are resolved against"`
	Debug       bool   `long:"debug" env:"ICONS_DEBUG" description:"Enable verbose debug output"`
	PersistLogs bool   `long:"persist-logs" env:"ICONS_PERSIST_LOGS" description:"Also write JSONL logs under the user cache directory"`

	IconSet IconSetOptions `command:"iconset" description:"Render rounded PNG icons from the source logo"`
	ICNS    ICNSOptions    `command:"icns" description:"Package a PNG into a macOS .icns container"`
	All     AllOptions     `command:"all" description:"Run iconset, then icns on its output"`

	// Command is the name of the subcommand that was selected.
	Command string `no-flag:"true"`
}

type IconSetOptions struct {
	Source string `long:"source" env:"ICONS_SOURCE" default:"trans_bg.png" description:"Source logo image"`
	OutDir string `long:"out-dir" env:"ICONS_OUT_DIR" default:"src-tauri/icons" description:"Directory the PNG icons are written to"`
	Sizes  []int  `long:"size" default:"32" default:"128" default:"256" description:"Icon size to render (repeatable)"`
}

type ICNSOptions struct {
	Input     string `long:"input" env:"ICONS_ICNS_INPUT" default:"src-tauri/icons/256x256.png" description:"Square PNG the iconset is derived from"`
	Output    string `long:"output" env:"ICONS_ICNS_OUTPUT" default:"src-tauri/icons/icon.icns" description:"Path of the .icns container"`
	Converter string `long:"converter" env:"ICONS_CONVERTER" default:"iconutil" choice:"iconutil" choice:"native" description:"Tool that bundles the iconset"`
}

type AllOptions struct {
	IconSet IconSetOptions `group:"Icon set options"`
	ICNS    ICNSOptions    `group:"ICNS options"`
}

// ParseOptions loads an optional .env file from the project root and
// parses args (os.Args[1:] when nil). Variables already set in the
// environment win over the file.
func ParseOptions(args []string) (Options, error) {
	if args == nil {
		args = os.Args[1:]
	}
	loadDotEnv(args)

	opts := Options{}
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return Options{}, err
	}
	if parser.Active != nil {
		opts.Command = parser.Active.Name
	}
	return opts, nil
}

// loadDotEnv reads <root>/.env, where root comes from --root or ICONS_ROOT.
// Parse errors are left for the real parse to report.
func loadDotEnv(args []string) {
	var pre struct {
		Root string `long:"root" env:"ICONS_ROOT" default:"."`
	}
	parser := flags.NewParser(&pre, flags.IgnoreUnknown)
	_, _ = parser.ParseArgs(args)
	_ = godotenv.Load(DotEnvPath(pre.Root))
}

// DotEnvPath is the .env file consulted for a project root.
func DotEnvPath(root string) string {
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	return filepath.Join(root, ".env")
}

// Resolve returns path as an absolute path, joining it onto root when it
// is relative.
func Resolve(root, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("empty path")
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	return filepath.Abs(filepath.Join(root, path))
}

func (o IconSetOptions) Validate() error {
	if strings.TrimSpace(o.Source) == "" {
		return errors.New("source image is required")
	}
	if strings.TrimSpace(o.OutDir) == "" {
		return errors.New("output directory is required")
	}
	if len(o.Sizes) == 0 {
		return errors.New("at least one icon size is required")
	}
	for _, size := range o.Sizes {
		if size <= 0 {
			return fmt.Errorf("icon size must be positive, got %d", size)
		}
	}
	return nil
}

// Resolved validates o and returns a copy with absolute paths.
func (o IconSetOptions) Resolved(root string) (IconSetOptions, error) {
	if err := o.Validate(); err != nil {
		return IconSetOptions{}, err
	}
	var err error
	if o.Source, err = Resolve(root, o.Source); err != nil {
		return IconSetOptions{}, fmt.Errorf("resolve source: %w", err)
	}
	if o.OutDir, err = Resolve(root, o.OutDir); err != nil {
		return IconSetOptions{}, fmt.Errorf("resolve output directory: %w", err)
	}
	return o, nil
}

func (o ICNSOptions) Validate() error {
	if strings.TrimSpace(o.Input) == "" {
		return errors.New("input PNG is required")
	}
	if strings.TrimSpace(o.Output) == "" {
		return errors.New("output path is required")
	}
	if filepath.Clean(o.Input) == filepath.Clean(o.Output) {
		return errors.New("input and output must differ")
	}
	return nil
}

func (o ICNSOptions) Resolved(root string) (ICNSOptions, error) {
	if err := o.Validate(); err != nil {
		return ICNSOptions{}, err
	}
	var err error
	if o.Input, err = Resolve(root, o.Input); err != nil {
		return ICNSOptions{}, fmt.Errorf("resolve input: %w", err)
	}
	if o.Output, err = Resolve(root, o.Output); err != nil {
		return ICNSOptions{}, fmt.Errorf("resolve output: %w", err)
	}
	return o, nil
}
