package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/csheth/folio/internal/advice"
	"github.com/csheth/folio/internal/config"
)

// isolate points the default config location at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folio.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseDefaults(t *testing.T) {
	isolate(t)
	g := NewWithT(t)

	cfg, err := config.Parse(nil, &bytes.Buffer{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.AdviceEndpoint).To(Equal(advice.DefaultEndpoint))
	g.Expect(cfg.AltScreen).To(BeTrue())
	g.Expect(cfg.ReducedMotion).To(BeFalse())
	g.Expect(cfg.PrefsPath).To(HaveSuffix(filepath.Join("folio", "prefs.toml")))
	g.Expect(cfg.Timings).To(Equal(config.Timings{
		AutoHide:       4000 * time.Millisecond,
		HideCompletion: 300 * time.Millisecond,
		SubmitDelay:    600 * time.Millisecond,
		Pulse:          500 * time.Millisecond,
	}))
}

func TestParseFlags(t *testing.T) {
	isolate(t)
	g := NewWithT(t)

	cfg, err := config.Parse([]string{
		"--advice-endpoint", "http://localhost:9999/advice",
		"--content", "page.json",
		"--reduced-motion",
		"--no-alt-screen",
		"--log-file", "folio.log",
	}, &bytes.Buffer{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.AdviceEndpoint).To(Equal("http://localhost:9999/advice"))
	g.Expect(cfg.ContentPath).To(Equal("page.json"))
	g.Expect(cfg.ReducedMotion).To(BeTrue())
	g.Expect(cfg.AltScreen).To(BeFalse())
	g.Expect(cfg.LogFile).To(Equal("folio.log"))
}

func TestFileEnvAndFlagPrecedence(t *testing.T) {
	isolate(t)
	g := NewWithT(t)

	path := writeConfig(t, `
[advice]
endpoint = "http://file.example/advice"

[content]
path = "file.json"

[motion]
reduced = true

[timings]
auto_hide = "2s"
submit_delay = "100ms"
`)
	t.Setenv("FOLIO_CONTENT_PATH", "env.json")

	cfg, err := config.Parse([]string{"--config", path}, &bytes.Buffer{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.AdviceEndpoint).To(Equal("http://file.example/advice"))
	g.Expect(cfg.ContentPath).To(Equal("env.json"))
	g.Expect(cfg.ReducedMotion).To(BeTrue())
	g.Expect(cfg.Timings.AutoHide).To(Equal(2 * time.Second))
	g.Expect(cfg.Timings.SubmitDelay).To(Equal(100 * time.Millisecond))
	g.Expect(cfg.Timings.HideCompletion).To(Equal(300 * time.Millisecond))

	cfg, err = config.Parse([]string{"--config", path, "--advice-endpoint", "http://flag.example"}, &bytes.Buffer{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.AdviceEndpoint).To(Equal("http://flag.example"))
}

func TestExplicitConfigMustExist(t *testing.T) {
	dir := isolate(t)
	g := NewWithT(t)

	_, err := config.Parse([]string{"--config", filepath.Join(dir, "missing.toml")}, &bytes.Buffer{})
	g.Expect(err).To(MatchError(ContainSubstring("read config")))
}

func TestNegativeTimingRejected(t *testing.T) {
	isolate(t)
	g := NewWithT(t)

	path := writeConfig(t, "[timings]\npulse = \"-1s\"\n")
	_, err := config.Parse([]string{"--config", path}, &bytes.Buffer{})
	g.Expect(err).To(MatchError(ContainSubstring("timings.pulse")))
}

func TestHelpAndVersion(t *testing.T) {
	isolate(t)
	g := NewWithT(t)

	var out bytes.Buffer
	_, err := config.Parse([]string{"--help"}, &out)
	g.Expect(err).To(MatchError(config.ErrHelp))
	g.Expect(out.String()).To(ContainSubstring("--advice-endpoint"))

	out.Reset()
	_, err = config.Parse([]string{"--version"}, &out)
	g.Expect(err).To(MatchError(config.ErrVersion))
	g.Expect(out.String()).To(ContainSubstring("folio"))
}

func TestUnknownFlag(t *testing.T) {
	isolate(t)
	g := NewWithT(t)

	_, err := config.Parse([]string{"--bogus"}, &bytes.Buffer{})
	g.Expect(err).To(HaveOccurred())
	g.Expect(err).NotTo(MatchError(config.ErrHelp))
}
