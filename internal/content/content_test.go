package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePage(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write page: %v", err)
	}
	return path
}

func TestDefaultPageHasProjects(t *testing.T) {
	t.Parallel()

	page := Default()
	if len(page.Projects) == 0 {
		t.Fatal("expected built-in projects")
	}
	if err := page.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	expanded := 0
	for _, p := range page.Projects {
		if p.StartExpanded {
			expanded++
		}
	}
	if expanded != 1 {
		t.Fatalf("expected exactly one project to start expanded, got %d", expanded)
	}
}

func TestLoadFillsHeaderFromDefaults(t *testing.T) {
	t.Parallel()

	path := writePage(t, `{
  "about": "Custom about.",
  "projects": [
    {"title": "one", "summary": "first", "body": "body one", "tags": ["a"], "startExpanded": true},
    {"title": "two"}
  ]
}`)

	page, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if page.Name != Default().Name {
		t.Fatalf("expected default name, got %q", page.Name)
	}
	if page.About != "Custom about." {
		t.Fatalf("unexpected about %q", page.About)
	}
	if len(page.Projects) != 2 || !page.Projects[0].StartExpanded || page.Projects[1].StartExpanded {
		t.Fatalf("unexpected projects: %#v", page.Projects)
	}
}

func TestLoadWithoutProjects(t *testing.T) {
	t.Parallel()

	page, err := Load(writePage(t, `{"name": "Someone"}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(page.Projects) != 0 {
		t.Fatalf("expected no projects, got %d", len(page.Projects))
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := Load(writePage(t, `{"projects": [`)); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
	if _, err := Load(writePage(t, `{"projects": [{"title": " "}]}`)); err == nil || !strings.Contains(err.Error(), "project 1 has no title") {
		t.Fatalf("expected validation error, got %v", err)
	}
}
