package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/crypto/bcrypt"

	"github.com/vovakirdan/tui-invaders/internal/account"
	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

func newTestSession(t *testing.T, opts SessionOptions) (SessionModel, *storage.Store) {
	t.Helper()
	store := openStore(t)
	accounts := account.NewService(store, account.WithBcryptCost(bcrypt.MinCost))
	if err := accounts.EnsureDefaultUser(); err != nil {
		t.Fatalf("EnsureDefaultUser() failed: %v", err)
	}

	opts.Store = store
	opts.Accounts = accounts
	opts.Runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	opts.Match = config.MatchConfig{}
	return NewSessionModel(opts), store
}

func send(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(SessionModel)
	}
	return m
}

func typed(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func login(t *testing.T, m SessionModel, user, pass string) SessionModel {
	t.Helper()
	m = send(t, m, typed(user)...)
	m = send(t, m, enter)
	m = send(t, m, typed(pass)...)
	return send(t, m, enter)
}

func TestSessionLoginReachesMenu(t *testing.T) {
	m, _ := newTestSession(t, SessionOptions{})

	m = login(t, m, account.DefaultUsername, account.DefaultPassword)
	if m.stage != stageMenu {
		t.Fatalf("stage = %v, want menu", m.stage)
	}
	if m.Username() != account.DefaultUsername {
		t.Errorf("Username() = %q", m.Username())
	}
}

func TestSessionBadPasswordStaysOnLogin(t *testing.T) {
	m, _ := newTestSession(t, SessionOptions{})

	m = login(t, m, account.DefaultUsername, "wrong1234")
	if m.stage != stageLogin {
		t.Fatalf("stage = %v, want login", m.stage)
	}
	if m.login.err != "Invalid username or password" {
		t.Errorf("login error = %q", m.login.err)
	}
}

func TestSessionPresetUserSkipsLogin(t *testing.T) {
	m, _ := newTestSession(t, SessionOptions{Username: "p"})

	m = send(t, m, loggedInMsg("p"))
	if m.stage != stageMenu {
		t.Fatalf("stage = %v, want menu", m.stage)
	}
}

func TestSessionDirectStartsMatch(t *testing.T) {
	m, _ := newTestSession(t, SessionOptions{Username: "p", Direct: true})

	m = send(t, m, loggedInMsg("p"))
	if m.stage != stagePlaying {
		t.Fatalf("stage = %v, want playing", m.stage)
	}

	// Quitting mid-match abandons it and returns to the menu.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if m.stage != stageMenu {
		t.Fatalf("stage after q = %v, want menu", m.stage)
	}
	if _, ok := m.game.LastResult(); ok {
		t.Error("abandoned match should not produce a result")
	}
}

func TestSessionRegisterFlow(t *testing.T) {
	m, store := newTestSession(t, SessionOptions{})

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	if m.stage != stageRegister {
		t.Fatalf("stage = %v, want register", m.stage)
	}

	for _, v := range []string{"neo", "matrix99", "matrix99", "Thomas", "Anderson", "neo@zion.io", "1999-03-31"} {
		m = send(t, m, typed(v)...)
		m = send(t, m, enter)
	}

	if m.stage != stageLogin {
		t.Fatalf("stage = %v, want login after registering", m.stage)
	}
	if ok, _ := store.UsernameExists("neo"); !ok {
		t.Error("new account was not stored")
	}
	if m.login.inputs[0].Value() != "neo" {
		t.Errorf("login not pre-filled: %q", m.login.inputs[0].Value())
	}
}

func TestSessionSettingsChangeMatch(t *testing.T) {
	m, _ := newTestSession(t, SessionOptions{Username: "p"})
	m = send(t, m, loggedInMsg("p"))

	// Menu: down to "Match settings", select.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, enter)
	if m.stage != stageSetup {
		t.Fatalf("stage = %v, want setup", m.stage)
	}

	// Cursor starts on Start; go up to the fire key row and pick "A".
	for range int(rowStart - rowFireKey) {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	// Next row: one more minute.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyRight})
	m = send(t, m, enter)

	if m.stage != stagePlaying {
		t.Fatalf("stage = %v, want playing", m.stage)
	}
	if m.match.FireKey != "A" {
		t.Errorf("FireKey = %q, want A", m.match.FireKey)
	}
	if m.match.DurationSecs != 180 {
		t.Errorf("DurationSecs = %d, want 180", m.match.DurationSecs)
	}
}

func TestSessionLogoutClearsHistory(t *testing.T) {
	m, store := newTestSession(t, SessionOptions{Username: "p"})
	m = send(t, m, loggedInMsg("p"))

	store.SaveMatch(storage.MatchRecord{MatchID: "old", Username: "p", Score: 10, Outcome: "time"})

	next, _ := m.choose(ChoiceLogout, nil)
	m = next.(SessionModel)

	if m.stage != stageLogin {
		t.Fatalf("stage = %v, want login", m.stage)
	}
	if history, _ := store.History("p", 0); len(history) != 0 {
		t.Errorf("history after logout has %d rows", len(history))
	}
}

func TestSessionQuitFromMenu(t *testing.T) {
	m, _ := newTestSession(t, SessionOptions{Username: "p"})
	m = send(t, m, loggedInMsg("p"))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(SessionModel)
	if !m.quitting || cmd == nil {
		t.Error("q in menu should quit the program")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}
