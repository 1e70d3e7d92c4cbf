// Package content holds the text rendered on the page.
package content

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Project is one collapsible card in the projects section.
type Project struct {
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	Body          string   `json:"body"`
	Tags          []string `json:"tags"`
	StartExpanded bool     `json:"startExpanded"`
}

// Page is the full page content.
type Page struct {
	Name     string    `json:"name"`
	Tagline  string    `json:"tagline"`
	About    string    `json:"about"`
	Projects []Project `json:"projects"`
}

// Load reads a page from a JSON file. Missing header fields fall back to the
// built-in page; a missing projects list means no projects.
func Load(path string) (Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Page{}, err
	}
	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		return Page{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := page.Validate(); err != nil {
		return Page{}, fmt.Errorf("%s: %w", path, err)
	}
	def := Default()
	if strings.TrimSpace(page.Name) == "" {
		page.Name = def.Name
	}
	if strings.TrimSpace(page.Tagline) == "" {
		page.Tagline = def.Tagline
	}
	if strings.TrimSpace(page.About) == "" {
		page.About = def.About
	}
	return page, nil
}

// Validate rejects projects without a title.
func (p Page) Validate() error {
	for i, project := range p.Projects {
		if strings.TrimSpace(project.Title) == "" {
			return fmt.Errorf("project %d has no title", i+1)
		}
	}
	return nil
}

// Default returns the built-in page.
func Default() Page {
	return Page{
		Name:    "Chintak Sheth",
		Tagline: "Backend engineer. Terminal enthusiast. Occasional writer.",
		About: "I build services and the tools around them: schedulers, caches, small " +
			"CLIs that make a team's day shorter. Lately that means Go, queues and a lot " +
			"of time reading traces. Outside work I tinker with keyboards and write about " +
			"what I learn.",
		Projects: []Project{
			{
				Title:   "paperscout",
				Summary: "A terminal reader for arXiv papers.",
				Body: "Search arXiv, skim abstracts, and keep notes without leaving the " +
					"terminal. Results are cached on disk and fetched in the background " +
					"so the interface never blocks.",
				Tags:          []string{"go", "bubbletea", "http"},
				StartExpanded: true,
			},
			{
				Title:   "tidewatch",
				Summary: "Alerting for queue backlogs.",
				Body: "Samples queue depth every few seconds, fits a trend line and pages " +
					"only when the backlog will not drain before the deadline.",
				Tags: []string{"go", "metrics"},
			},
			{
				Title:   "inkwell",
				Summary: "A static site generator for long-form notes.",
				Body: "Markdown in, one HTML page per note out, with backlinks computed at " +
					"build time and no client-side script.",
				Tags: []string{"markdown", "static"},
			},
		},
	}
}
