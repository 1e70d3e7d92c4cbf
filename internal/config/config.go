// Package config parses command-line flags and merges them with the optional
// config file and FOLIO_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/spf13/viper"

	"github.com/csheth/folio/internal/advice"
)

// ErrHelp and ErrVersion are returned by Parse after it printed the help or
// version text. Callers exit successfully on either.
var (
	ErrHelp    = arg.ErrHelp
	ErrVersion = arg.ErrVersion
)

// Args holds the command-line flags. Zero values mean "not given" so the
// file and environment layers can fill them in.
type Args struct {
	Config         string `arg:"--config" help:"path to a TOML config file"`
	Content        string `arg:"--content" help:"path to a JSON file with page content"`
	Prefs          string `arg:"--prefs" help:"path to the preferences file"`
	AdviceEndpoint string `arg:"--advice-endpoint" help:"URL of the advice service"`
	ReducedMotion  bool   `arg:"--reduced-motion" help:"disable animations"`
	NoAltScreen    bool   `arg:"--no-alt-screen" help:"render inline instead of the alternate screen"`
	LogFile        string `arg:"--log-file" help:"write debug logs to this file"`
}

// Description returns the program description for go-arg
func (Args) Description() string {
	return "folio renders a portfolio page in the terminal"
}

// Version returns the version string for go-arg
func (Args) Version() string {
	return "folio 0.3.0"
}

// Timings are the page's timer delays.
type Timings struct {
	AutoHide       time.Duration
	HideCompletion time.Duration
	SubmitDelay    time.Duration
	Pulse          time.Duration
}

// Config is the resolved configuration.
type Config struct {
	AdviceEndpoint string
	ContentPath    string
	PrefsPath      string
	LogFile        string
	ReducedMotion  bool
	AltScreen      bool
	Timings        Timings
}

// Parse parses argv (without the program name), printing help or version
// text to out when asked for, and loads the merged configuration.
func Parse(argv []string, out io.Writer) (Config, error) {
	var args Args
	parser, err := arg.NewParser(arg.Config{Program: "folio"}, &args)
	if err != nil {
		return Config{}, fmt.Errorf("build parser: %w", err)
	}
	switch err := parser.Parse(argv); {
	case errors.Is(err, arg.ErrHelp):
		parser.WriteHelp(out)
		return Config{}, ErrHelp
	case errors.Is(err, arg.ErrVersion):
		fmt.Fprintln(out, args.Version())
		return Config{}, ErrVersion
	case err != nil:
		return Config{}, err
	}
	return Load(args)
}

// Load merges defaults, the config file, FOLIO_* environment variables and
// the given flags, in increasing priority. A config file named by --config
// or FOLIO_CONFIG must exist; the default location is optional.
func Load(args Args) (Config, error) {
	v := viper.New()

	v.SetDefault("advice.endpoint", advice.DefaultEndpoint)
	v.SetDefault("content.path", "")
	v.SetDefault("prefs.path", defaultPrefsPath())
	v.SetDefault("log.file", "")
	v.SetDefault("motion.reduced", false)
	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("timings.auto_hide", 4000*time.Millisecond)
	v.SetDefault("timings.hide_completion", 300*time.Millisecond)
	v.SetDefault("timings.submit_delay", 600*time.Millisecond)
	v.SetDefault("timings.pulse", 500*time.Millisecond)

	v.SetConfigType("toml")
	v.SetEnvPrefix("FOLIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgPath := args.Config
	if cfgPath == "" {
		cfgPath = os.Getenv("FOLIO_CONFIG")
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "folio"))
		v.SetConfigName("config")
		// the default location is optional
		_ = v.ReadInConfig()
	}

	cfg := Config{
		AdviceEndpoint: v.GetString("advice.endpoint"),
		ContentPath:    v.GetString("content.path"),
		PrefsPath:      v.GetString("prefs.path"),
		LogFile:        v.GetString("log.file"),
		ReducedMotion:  v.GetBool("motion.reduced"),
		AltScreen:      v.GetBool("ui.alt_screen"),
		Timings: Timings{
			AutoHide:       v.GetDuration("timings.auto_hide"),
			HideCompletion: v.GetDuration("timings.hide_completion"),
			SubmitDelay:    v.GetDuration("timings.submit_delay"),
			Pulse:          v.GetDuration("timings.pulse"),
		},
	}

	if args.AdviceEndpoint != "" {
		cfg.AdviceEndpoint = args.AdviceEndpoint
	}
	if args.Content != "" {
		cfg.ContentPath = args.Content
	}
	if args.Prefs != "" {
		cfg.PrefsPath = args.Prefs
	}
	if args.LogFile != "" {
		cfg.LogFile = args.LogFile
	}
	if args.ReducedMotion {
		cfg.ReducedMotion = true
	}
	if args.NoAltScreen {
		cfg.AltScreen = false
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the page cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.AdviceEndpoint) == "" {
		return errors.New("advice endpoint is required")
	}
	for name, d := range map[string]time.Duration{
		"auto_hide":       c.Timings.AutoHide,
		"hide_completion": c.Timings.HideCompletion,
		"submit_delay":    c.Timings.SubmitDelay,
		"pulse":           c.Timings.Pulse,
	} {
		if d < 0 {
			return fmt.Errorf("timings.%s must not be negative, got %s", name, d)
		}
	}
	return nil
}

func defaultPrefsPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "folio", "prefs.toml")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "folio", "prefs.toml")
}
