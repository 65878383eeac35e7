package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	s, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected SessionModel", next)
	}
	return s
}

func TestSessionStartsAtMenu(t *testing.T) {
	m := NewSessionModel(nil, testConfig, "player")
	if m.screen != screenMenu {
		t.Errorf("screen = %v, expected menu", m.screen)
	}
	if m.View() == "" {
		t.Error("menu should render")
	}
}

func TestSessionSelectStartsGame(t *testing.T) {
	m := NewSessionModel(nil, testConfig, "player")
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.screen != screenGame {
		t.Fatalf("screen = %v, expected game", m.screen)
	}
	if m.game.game.ID() != "kong" {
		t.Errorf("game = %q, expected the first mode", m.game.game.ID())
	}
	if m.game.playerName != "player" {
		t.Errorf("playerName = %q, expected the session user", m.game.playerName)
	}
}

func TestSessionGameExitReturnsToMenu(t *testing.T) {
	m := NewSessionModel(nil, testConfig, "player")
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// The game opens on its title menu, where quit asks to leave.
	m = updateSession(t, m, runeKey("q"))
	m = updateSession(t, m, TickMsg(time.Now()))

	if m.screen != screenMenu {
		t.Errorf("screen = %v, expected menu after the game exits", m.screen)
	}
	if m.quitting {
		t.Error("leaving a game should not end the session")
	}
}

func TestSessionScoreboardAndBack(t *testing.T) {
	m := NewSessionModel(nil, testConfig, "player")
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %v, expected scores", m.screen)
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("screen = %v, expected menu", m.screen)
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, testConfig, "player")
	m = updateSession(t, m, runeKey("q"))
	if !m.quitting {
		t.Error("q in the menu should end the session")
	}
	if m.View() != "" {
		t.Error("quitting session should render nothing")
	}
}

func TestSessionCtrlCInGameQuits(t *testing.T) {
	m := NewSessionModel(nil, testConfig, "player")
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.quitting {
		t.Error("ctrl+c should end the session")
	}
}

func TestSessionTracksWindowSize(t *testing.T) {
	m := NewSessionModel(nil, testConfig, "player")
	m = updateSession(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.config.ScreenW != 120 || m.config.ScreenH != 40 {
		t.Errorf("config = %dx%d, expected 120x40", m.config.ScreenW, m.config.ScreenH)
	}
}
