package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/account"
	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// SessionOptions configure a player session.
type SessionOptions struct {
	Store    *storage.Store
	Accounts *account.Service
	Runtime  core.RuntimeConfig
	Match    config.MatchConfig

	// Username skips the login screen for an already known player.
	Username string
	// Prefill puts a name in the login form.
	Prefill string
	// Direct starts a match right after login instead of showing the menu.
	Direct bool

	Sounds invaders.NotificationSink
	Logger *log.Logger
}

type stage int

const (
	stageLogin stage = iota
	stageRegister
	stageMenu
	stageSetup
	stagePlaying
	stageGameOver
	stageScores
)

// SessionModel manages the full session flow:
// login -> menu -> settings -> game -> game over -> ...
// It is the top-level model for local play and SSH sessions.
type SessionModel struct {
	opts     SessionOptions
	stage    stage
	username string
	match    config.MatchConfig
	config   core.RuntimeConfig
	game     *invaders.Game

	login    LoginModel
	register RegisterModel
	menu     MenuModel
	setup    SetupModel
	play     GameModel
	over     GameOverModel
	board    ScoreboardModel

	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	game := invaders.New()
	if opts.Logger != nil {
		game.SetLogger(opts.Logger)
	}
	if opts.Sounds != nil {
		game.SetSoundSink(opts.Sounds)
	}

	m := SessionModel{
		opts:   opts,
		match:  opts.Match.WithDefaults(),
		config: opts.Runtime,
		game:   game,
	}
	if opts.Username == "" {
		m.login = NewLoginModel(opts.Accounts, opts.Prefill, m.config.ScreenW, m.config.ScreenH)
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.opts.Username != "" {
		// Init cannot change the model, so the first message moves the
		// session past the login stage.
		return func() tea.Msg { return loggedInMsg(m.opts.Username) }
	}
	return m.login.Init()
}

// loggedInMsg moves a session with a preset user past the login screen.
type loggedInMsg string

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	case loggedInMsg:
		return m.afterLogin(string(msg))
	}

	switch m.stage {
	case stageLogin:
		return m.updateLogin(msg)
	case stageRegister:
		return m.updateRegister(msg)
	case stageMenu:
		return m.updateMenu(msg)
	case stageSetup:
		return m.updateSetup(msg)
	case stagePlaying:
		return m.updateGame(msg)
	case stageGameOver:
		return m.updateGameOver(msg)
	case stageScores:
		return m.updateScores(msg)
	}
	return m, nil
}

func (m SessionModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.login.Update(msg)
	m.login = next.(LoginModel)

	switch user, ok := m.login.LoggedIn(); {
	case m.login.IsQuitting():
		return m.quit()
	case ok:
		return m.afterLogin(user)
	case m.login.WantsRegister():
		m.stage = stageRegister
		m.register = NewRegisterModel(m.opts.Accounts, m.config.ScreenW, m.config.ScreenH)
		return m, m.register.Init()
	}
	return m, cmd
}

func (m SessionModel) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.register.Update(msg)
	m.register = next.(RegisterModel)

	if user, ok := m.register.Registered(); ok {
		return m.toLogin(user, "Registration completed successfully! You can now log in")
	}
	if m.register.GoingBack() {
		return m.toLogin("", "")
	}
	return m, cmd
}

func (m SessionModel) toLogin(prefill, notice string) (tea.Model, tea.Cmd) {
	m.stage = stageLogin
	m.login = NewLoginModel(m.opts.Accounts, prefill, m.config.ScreenW, m.config.ScreenH)
	m.login.SetNotice(notice)
	return m, m.login.Init()
}

func (m SessionModel) afterLogin(user string) (tea.Model, tea.Cmd) {
	m.username = user
	if m.opts.Logger != nil {
		m.opts.Logger.Info("logged in", "user", user)
	}
	if m.opts.Direct {
		return m.startMatch()
	}
	return m.toMenu()
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.stage = stageMenu
	m.menu = NewMenuModel(m.username, m.match, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) toSetup() (tea.Model, tea.Cmd) {
	m.stage = stageSetup
	m.setup = NewSetupModel(m.match, m.config.ScreenW, m.config.ScreenH)
	return m, m.setup.Init()
}

func (m SessionModel) toScores() (tea.Model, tea.Cmd) {
	m.stage = stageScores
	m.board = NewScoreboardModel(m.opts.Store, m.game.ID(), m.username, m.config.ScreenW, m.config.ScreenH)
	return m, m.board.Init()
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)
	return m.choose(m.menu.Selected(), cmd)
}

// choose performs a menu or game-over choice.
func (m SessionModel) choose(c MenuChoice, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch c {
	case ChoicePlay:
		return m.startMatch()
	case ChoiceSettings:
		return m.toSetup()
	case ChoiceScores:
		return m.toScores()
	case ChoiceMenu:
		return m.toMenu()
	case ChoiceLogout:
		return m.logout()
	case ChoiceQuit:
		return m.quit()
	}
	return m, cmd
}

func (m SessionModel) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.setup.Update(msg)
	m.setup = next.(SetupModel)

	switch {
	case m.setup.Done():
		m.match = m.setup.Match()
		return m.startMatch()
	case m.setup.GoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) startMatch() (tea.Model, tea.Cmd) {
	m.game.SetMatchConfig(m.match)
	m.game.SetResultSink(newResultRecorder(m.opts.Store, m.game.ID(), m.username, m.opts.Logger))

	cfg := m.config
	cfg.Seed = m.opts.Runtime.Seed
	m.play = NewGameModel(m.game, m.match.FireKey, cfg)
	m.stage = stagePlaying
	return m, m.play.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	m.play = next.(GameModel)

	switch {
	case m.play.IsQuitting():
		// Leaving mid-match discards it.
		m.game.Stop()
		return m.toMenu()
	case m.play.Finished():
		result, _ := m.game.LastResult()
		m.stage = stageGameOver
		m.over = NewGameOverModel(m.opts.Store, m.game.ID(), m.username, result, m.config.ScreenW, m.config.ScreenH)
		return m, m.over.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGameOver(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.over.Update(msg)
	m.over = next.(GameOverModel)
	return m.choose(m.over.Choice(), cmd)
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	m.board = next.(ScoreboardModel)

	switch {
	case m.board.IsQuitting():
		return m.quit()
	case m.board.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// logout ends the player's session. Their match history goes with it.
func (m SessionModel) logout() (tea.Model, tea.Cmd) {
	if err := m.opts.Accounts.Logout(m.username); err != nil && m.opts.Logger != nil {
		m.opts.Logger.Error("logout failed", "user", m.username, "err", err)
	}
	m.username = ""
	m.opts.Username = ""
	return m.toLogin("", "Logged out")
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.game.Stop()
	m.quitting = true
	return m, tea.Quit
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.stage {
	case stageRegister:
		return m.register.View()
	case stageMenu:
		return m.menu.View()
	case stageSetup:
		return m.setup.View()
	case stagePlaying:
		return m.play.View()
	case stageGameOver:
		return m.over.View()
	case stageScores:
		return m.board.View()
	default:
		return m.login.View()
	}
}

// Username returns the logged-in player, or "".
func (m SessionModel) Username() string {
	return m.username
}

// Run starts a local session on the terminal.
func Run(opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
