package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/folio/internal/advice"
	"github.com/csheth/folio/internal/prefs"
)

func fetchAdviceJob(fetcher advice.Fetcher, epoch uint64) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		result := fetcher.Fetch(ctx)
		return adviceResultMsg{epoch: epoch, result: result}, result.Err
	}
}

func saveThemeJob(store prefs.Store, theme prefs.Theme) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		err := prefs.SaveTheme(store, theme)
		return themeSavedMsg{theme: theme, err: err}, err
	}
}
