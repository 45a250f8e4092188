package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/account"
)

// LoginModel is the sign-in form.
type LoginModel struct {
	accounts *account.Service
	inputs   []textinput.Model
	focus    int
	err      string
	notice   string
	width    int
	height   int

	user          string
	wantsRegister bool
	quitting      bool
}

// NewLoginModel creates a login form. username pre-fills the first field.
func NewLoginModel(accounts *account.Service, username string, width, height int) LoginModel {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 32
	user.Width = 24
	user.SetValue(username)

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.CharLimit = 64
	pass.Width = 24

	m := LoginModel{
		accounts: accounts,
		inputs:   []textinput.Model{user, pass},
		width:    width,
		height:   height,
	}
	if username != "" {
		m.focus = 1
	}
	m.inputs[m.focus].Focus()
	return m
}

// Init starts the cursor blinking.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form.
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, nil
		case "ctrl+n":
			m.wantsRegister = true
			return m, nil
		case "tab", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)
		case "enter":
			if m.focus == 0 {
				return m, m.setFocus(1)
			}
			m.submit()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *LoginModel) setFocus(i int) tea.Cmd {
	n := len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = ((i % n) + n) % n
	return m.inputs[m.focus].Focus()
}

func (m *LoginModel) submit() {
	m.notice = ""
	username := strings.TrimSpace(m.inputs[0].Value())
	u, err := m.accounts.Login(username, m.inputs[1].Value())
	switch {
	case errors.Is(err, account.ErrMissingCredentials):
		m.err = "Please enter username and password"
	case errors.Is(err, account.ErrInvalidCredentials):
		m.err = "Invalid username or password"
		m.inputs[1].SetValue("")
	case err != nil:
		m.err = err.Error()
	default:
		m.err = ""
		m.user = u.Username
	}
}

// SetNotice shows a success line above the form.
func (m *LoginModel) SetNotice(s string) {
	m.notice = s
}

// View renders the form.
func (m LoginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("S P A C E   I N V A D E R S"))
	b.WriteString("\n\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n\n")
	}
	b.WriteString("Username\n")
	b.WriteString(m.inputs[0].View())
	b.WriteString("\n\nPassword\n")
	b.WriteString(m.inputs[1].View())
	b.WriteString("\n\n")
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n\n")
	}
	b.WriteString(mutedStyle.Render("enter: log in  •  ctrl+n: register  •  esc: quit"))

	return place(m.width, m.height, panelStyle.Render(b.String()))
}

// LoggedIn returns the authenticated username once login succeeded.
func (m LoginModel) LoggedIn() (string, bool) {
	return m.user, m.user != ""
}

// WantsRegister returns true if the player asked for the sign-up form.
func (m LoginModel) WantsRegister() bool {
	return m.wantsRegister
}

// IsQuitting returns true if user requested to quit.
func (m LoginModel) IsQuitting() bool {
	return m.quitting
}
