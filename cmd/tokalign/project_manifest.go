package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tokalign/internal/align"
	"tokalign/internal/lexer"
	"tokalign/internal/report"
)

const configFileName = "tokalign.toml"

type projectConfig struct {
	Scoring align.Scoring `toml:"scoring"`
	Render  renderConfig  `toml:"render"`
}

type renderConfig struct {
	Filler    string `toml:"filler"`
	Splitter  string `toml:"splitter"`
	Normalize bool   `toml:"normalize"`
	Width     int    `toml:"width"`
	MaxLines  int    `toml:"max_lines"`
}

func defaultProjectConfig() projectConfig {
	return projectConfig{Scoring: align.DefaultScoring()}
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectConfig decodes path over the defaults, so missing keys keep
// their stock values. Unknown keys are rejected.
func loadProjectConfig(path string) (projectConfig, error) {
	cfg := defaultProjectConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return projectConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("render", "filler") && utf8.RuneCountInString(cfg.Render.Filler) != 1 {
		return projectConfig{}, fmt.Errorf("%s: [render].filler must be a single character", path)
	}
	if err := cfg.Scoring.Validate(); err != nil {
		return projectConfig{}, fmt.Errorf("%s: [scoring]: %w", path, err)
	}
	return cfg, nil
}

// settings is the resolved configuration of one command run.
type settings struct {
	ConfigPath string
	Scoring    align.Scoring
	Splitter   string
	Lexer      lexer.Options
	Report     report.Options
	Quiet      bool
	Timings    bool
}

func (s *settings) filler() rune { return s.Report.Filler }

func (s *settings) lexer() *lexer.Lexer { return lexer.New(s.Lexer) }

// loadSettings merges tokalign.toml with the persistent flags.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg := defaultProjectConfig()
	if configPath == "" {
		found, ok, findErr := findConfig(".")
		if findErr != nil {
			return nil, findErr
		}
		if ok {
			configPath = found
		}
	}
	if configPath != "" {
		if cfg, err = loadProjectConfig(configPath); err != nil {
			return nil, err
		}
	}

	s := &settings{
		ConfigPath: configPath,
		Scoring:    cfg.Scoring,
		Splitter:   cfg.Render.Splitter,
		Report:     report.DefaultOptions(),
	}
	if cfg.Render.Filler != "" {
		s.Report.Filler, _ = utf8.DecodeRuneInString(cfg.Render.Filler)
	}
	if cfg.Render.Width > 0 {
		s.Report.Width = cfg.Render.Width
	}
	if cfg.Render.MaxLines > 0 {
		s.Report.MaxLines = cfg.Render.MaxLines
	}

	if splitter, _ := flags.GetString("splitter"); splitter != "" {
		s.Splitter = splitter
	}
	split, err := lexer.SplitterByName(s.Splitter)
	if err != nil {
		return nil, err
	}
	s.Lexer = lexer.Options{Splitter: split, NormalizeNFC: cfg.Render.Normalize}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(colorFlag) {
	case "on":
		s.Report.Color = true
	case "off":
		s.Report.Color = false
	case "auto", "":
		s.Report.Color = isTerminal(os.Stdout)
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	color.NoColor = !s.Report.Color

	s.Quiet, _ = flags.GetBool("quiet")
	s.Timings, _ = flags.GetBool("timings")
	return s, nil
}
