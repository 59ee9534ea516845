package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/dbug/internal/config"
	"github.com/zjrosen/dbug/internal/payload"
)

// payloadsLoadedMsg carries a fresh snapshot of the store, newest first.
type payloadsLoadedMsg struct {
	payloads []*payload.Payload
	err      error
}

type deletedMsg struct {
	id  string
	err error
}

type clearedMsg struct {
	removed int
	err     error
}

type themeSavedMsg struct {
	preset string
	err    error
}

// ageTickMsg re-renders relative timestamps.
type ageTickMsg struct{}

func loadPayloads(ctx context.Context, svc *payload.Service, limit int) tea.Cmd {
	return func() tea.Msg {
		ps, err := svc.List(ctx, limit)
		return payloadsLoadedMsg{payloads: ps, err: err}
	}
}

func deletePayload(ctx context.Context, svc *payload.Service, id string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: svc.Delete(ctx, id)}
	}
}

func clearPayloads(ctx context.Context, svc *payload.Service) tea.Cmd {
	return func() tea.Msg {
		n, err := svc.Clear(ctx)
		return clearedMsg{removed: n, err: err}
	}
}

func saveTheme(configPath, preset string) tea.Cmd {
	return func() tea.Msg {
		return themeSavedMsg{preset: preset, err: config.SaveTheme(configPath, preset)}
	}
}

func ageTick() tea.Cmd {
	return tea.Tick(ageInterval, func(time.Time) tea.Msg {
		return ageTickMsg{}
	})
}
