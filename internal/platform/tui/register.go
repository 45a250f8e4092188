package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/account"
)

type formField struct {
	name  string
	label string
	input textinput.Model
}

// RegisterModel is the sign-up form.
type RegisterModel struct {
	accounts *account.Service
	fields   []formField
	focus    int
	errs     map[string]string
	failure  string
	width    int
	height   int

	registered string
	back       bool

	// standalone forms end the program themselves.
	standalone bool
}

// NewRegisterModel creates an empty sign-up form.
func NewRegisterModel(accounts *account.Service, width, height int) RegisterModel {
	specs := []struct {
		name, label, placeholder string
		secret                   bool
	}{
		{account.FieldUsername, "Username", "", false},
		{account.FieldPassword, "Password", "8+ letters and digits", true},
		{account.FieldConfirmPassword, "Confirm password", "", true},
		{account.FieldFirstName, "First name", "", false},
		{account.FieldLastName, "Last name", "", false},
		{account.FieldEmail, "Email", "name@example.com", false},
		{account.FieldBirthDate, "Birth date", "YYYY-MM-DD", false},
	}

	fields := make([]formField, len(specs))
	for i, s := range specs {
		in := textinput.New()
		in.Placeholder = s.placeholder
		in.CharLimit = 64
		in.Width = 28
		if s.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		fields[i] = formField{name: s.name, label: s.label, input: in}
	}
	fields[0].input.Focus()

	return RegisterModel{
		accounts: accounts,
		fields:   fields,
		errs:     map[string]string{},
		width:    width,
		height:   height,
	}
}

// Init starts the cursor blinking.
func (m RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form.
func (m RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.back = true
			return m, m.exit()
		case "tab", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)
		case "ctrl+s":
			m.submit()
			return m, m.exit()
		case "enter":
			if m.focus < len(m.fields)-1 {
				return m, m.setFocus(m.focus + 1)
			}
			m.submit()
			return m, m.exit()
		}
	}

	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd
}

func (m RegisterModel) exit() tea.Cmd {
	if m.standalone && (m.back || m.registered != "") {
		return tea.Quit
	}
	return nil
}

// Prefill puts r's non-empty values in the form and focuses the first
// field still empty.
func (m *RegisterModel) Prefill(r account.Registration) {
	values := map[string]string{
		account.FieldUsername:        r.Username,
		account.FieldPassword:        r.Password,
		account.FieldConfirmPassword: r.ConfirmPassword,
		account.FieldFirstName:       r.FirstName,
		account.FieldLastName:        r.LastName,
		account.FieldEmail:           r.Email,
		account.FieldBirthDate:       r.BirthDate,
	}
	for i := range m.fields {
		if v := values[m.fields[i].name]; v != "" {
			m.fields[i].input.SetValue(v)
		}
	}
	for i, f := range m.fields {
		if f.input.Value() == "" {
			m.setFocus(i)
			return
		}
	}
	m.setFocus(len(m.fields) - 1)
}

func (m *RegisterModel) setFocus(i int) tea.Cmd {
	n := len(m.fields)
	m.fields[m.focus].input.Blur()
	m.focus = ((i % n) + n) % n
	return m.fields[m.focus].input.Focus()
}

func (m *RegisterModel) value(name string) string {
	for _, f := range m.fields {
		if f.name == name {
			return f.input.Value()
		}
	}
	return ""
}

func (m *RegisterModel) submit() {
	reg := account.Registration{
		Username:        m.value(account.FieldUsername),
		Password:        m.value(account.FieldPassword),
		ConfirmPassword: m.value(account.FieldConfirmPassword),
		FirstName:       m.value(account.FieldFirstName),
		LastName:        m.value(account.FieldLastName),
		Email:           m.value(account.FieldEmail),
		BirthDate:       m.value(account.FieldBirthDate),
	}

	clear(m.errs)
	m.failure = ""

	u, err := m.accounts.Register(reg)
	if verr, ok := account.AsValidation(err); ok {
		for _, f := range verr.Fields {
			m.errs[f.Field] = f.Message
		}
		// Jump to the first broken field.
		for i, f := range m.fields {
			if m.errs[f.name] != "" {
				m.setFocus(i)
				break
			}
		}
		return
	}
	if err != nil {
		m.failure = err.Error()
		return
	}
	m.registered = u.Username
}

// View renders the form.
func (m RegisterModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CREATE ACCOUNT"))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		label := f.label
		if i == m.focus {
			label = titleStyle.Render(label)
		}
		fmt.Fprintf(&b, "%s\n%s\n", label, f.input.View())
		if msg := m.errs[f.name]; msg != "" {
			b.WriteString(errorStyle.Render(msg))
			b.WriteString("\n")
		}
	}

	if m.failure != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.failure))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("enter: next/submit  •  ctrl+s: submit  •  esc: back"))

	return place(m.width, m.height, panelStyle.Render(b.String()))
}

// Registered returns the new username once sign-up succeeded.
func (m RegisterModel) Registered() (string, bool) {
	return m.registered, m.registered != ""
}

// GoingBack returns true if the player left the form.
func (m RegisterModel) GoingBack() bool {
	return m.back
}

// ErrRegisterCancelled is returned by RunRegister when the form is left
// without creating an account.
var ErrRegisterCancelled = errors.New("registration cancelled")

// RunRegister shows the sign-up form on the terminal, prefilled from r,
// and returns the new username.
func RunRegister(accounts *account.Service, r account.Registration, width, height int) (string, error) {
	model := NewRegisterModel(accounts, width, height)
	model.Prefill(r)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if user, ok := final.(RegisterModel).Registered(); ok {
		return user, nil
	}
	return "", ErrRegisterCancelled
}
