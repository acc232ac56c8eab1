// Package tui implements the daily aligner: today's affirmation, the
// acknowledgment streak and the ritual checklist.
package tui

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/manifest/internal/logger"
	"github.com/julianstephens/manifest/internal/manifest"
	"github.com/julianstephens/manifest/internal/models"
)

// affirmationMsg is sent when an affirmation refresh finishes.
type affirmationMsg struct{}

type savedMsg struct {
	err error
}

type Model struct {
	ctx     context.Context
	store   *manifest.Store
	save    func() error
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	pending *sync.WaitGroup

	rituals    []models.DailyRitual
	cursor     int
	refreshing bool
	err        error
	quitting   bool
	width      int
}

// NewModel builds the aligner over store. save persists the store and is
// called after every change.
func NewModel(ctx context.Context, store *manifest.Store, save func() error) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cursorStyle

	return Model{
		ctx:     ctx,
		store:   store,
		save:    save,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		pending: &sync.WaitGroup{},
		rituals: store.Rituals(),
	}
}

func (m Model) Init() tea.Cmd {
	if m.store.AffirmationDue() {
		return m.refresh(nil)
	}
	return nil
}

// refresh starts regenerating the affirmation right away so the work is
// tracked by Wait even if the program quits before the command runs.
func (m *Model) refresh(force *models.AffirmationType) tea.Cmd {
	m.refreshing = true
	ctx, store, pending := m.ctx, m.store, m.pending
	done := make(chan struct{})
	pending.Add(1)
	go func() {
		defer pending.Done()
		defer close(done)
		store.RefreshAffirmation(ctx, force)
	}()
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		<-done
		return affirmationMsg{}
	})
}

// Wait blocks until every started affirmation refresh has finished.
func (m Model) Wait() {
	m.pending.Wait()
}

func (m Model) persist() tea.Cmd {
	save := m.save
	if save == nil {
		return nil
	}
	return func() tea.Msg {
		return savedMsg{err: save()}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case affirmationMsg:
		m.refreshing = false
		return m, m.persist()

	case savedMsg:
		m.err = msg.err
		if msg.err != nil {
			logger.Error("Failed to save state", "error", msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.refreshing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rituals)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if len(m.rituals) == 0 {
			return m, nil
		}
		m.store.ToggleRitual(m.rituals[m.cursor].ID)
		m.rituals = m.store.Rituals()
		return m, m.persist()

	case key.Matches(msg, m.keys.Reset):
		m.store.ResetDay()
		m.rituals = m.store.Rituals()
		return m, m.persist()

	case key.Matches(msg, m.keys.Ack):
		if m.refreshing || m.store.Affirmation().Text == "" {
			return m, nil
		}
		if m.store.AcknowledgeAffirmation() {
			return m, m.persist()
		}

	case key.Matches(msg, m.keys.Refresh):
		if m.refreshing {
			return m, nil
		}
		return m, m.refresh(nil)
	}
	return m, nil
}
