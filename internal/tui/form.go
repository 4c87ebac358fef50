package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/soham247/stellar-portfolio/internal/contact"
)

// Focus slots of the contact form.
const (
	focusName = iota
	focusEmail
	focusSubject
	focusMessage
	focusSubmit
	focusCount
)

// FormModel is the contact form: three single line inputs, the message
// area and a submit button.
type FormModel struct {
	inputs  []textinput.Model
	message textarea.Model
	spinner spinner.Model

	focus      int
	active     bool
	submitting bool
	status     *contact.Status
}

// NewFormModel creates an empty, inactive form.
func NewFormModel() FormModel {
	placeholders := []string{"Your name", "you@example.com", "What's this about?"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = p
		ti.CharLimit = 200
		ti.Width = 40
		inputs[i] = ti
	}

	ta := textarea.New()
	ta.Placeholder = "Your message"
	ta.ShowLineNumbers = false
	ta.SetWidth(50)
	ta.SetHeight(5)

	return FormModel{
		inputs:  inputs,
		message: ta,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Form returns the current field values.
func (m FormModel) Form() contact.Form {
	return contact.Form{
		Name:    m.inputs[focusName].Value(),
		Email:   m.inputs[focusEmail].Value(),
		Subject: m.inputs[focusSubject].Value(),
		Message: m.message.Value(),
	}
}

// SetForm fills the fields from f.
func (m *FormModel) SetForm(f contact.Form) {
	m.inputs[focusName].SetValue(f.Name)
	m.inputs[focusEmail].SetValue(f.Email)
	m.inputs[focusSubject].SetValue(f.Subject)
	m.message.SetValue(f.Message)
}

// Active reports whether the form has keyboard focus.
func (m FormModel) Active() bool { return m.active }

// Submitting reports whether a submission is in flight.
func (m FormModel) Submitting() bool { return m.submitting }

// Status returns the outcome of the last submission, if any.
func (m FormModel) Status() *contact.Status { return m.status }

// Activate gives the form keyboard focus.
func (m *FormModel) Activate() tea.Cmd {
	m.active = true
	return m.setFocus(m.focus)
}

// Deactivate releases keyboard focus.
func (m *FormModel) Deactivate() {
	m.active = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.message.Blur()
}

func (m *FormModel) setFocus(i int) tea.Cmd {
	m.focus = (i + focusCount) % focusCount
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.message.Blur()

	switch {
	case m.focus < len(m.inputs):
		return m.inputs[m.focus].Focus()
	case m.focus == focusMessage:
		return m.message.Focus()
	}
	return nil
}

// startSubmit marks the form as sending. It reports false when a
// submission is already in flight.
func (m *FormModel) startSubmit() (bool, tea.Cmd) {
	if m.submitting {
		return false, nil
	}
	m.submitting = true
	m.status = nil
	return true, m.spinner.Tick
}

// finishSubmit records the outcome and clears the fields on success.
func (m *FormModel) finishSubmit(st contact.Status) {
	m.submitting = false
	m.status = &st
	if st.Clear() {
		for i := range m.inputs {
			m.inputs[i].Reset()
		}
		m.message.Reset()
		m.setFocus(focusName)
	}
}

// Update handles keys while the form is active. submit is true when the
// visitor asked to send the form.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.submitting {
			return m, nil, false
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd, false

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			if msg.String() == "down" && m.focus == focusMessage {
				break
			}
			return m, m.setFocus(m.focus + 1), false
		case "shift+tab", "up":
			if msg.String() == "up" && m.focus == focusMessage {
				break
			}
			return m, m.setFocus(m.focus - 1), false
		case "ctrl+s":
			return m, nil, true
		case "enter":
			switch {
			case m.focus == focusSubmit:
				return m, nil, true
			case m.focus < len(m.inputs):
				return m, m.setFocus(m.focus + 1), false
			}
		}
	}

	var cmd tea.Cmd
	switch {
	case m.focus < len(m.inputs):
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	case m.focus == focusMessage:
		m.message, cmd = m.message.Update(msg)
	}
	return m, cmd, false
}

// View renders the form.
func (m FormModel) View(s Styles, width int) string {
	var b strings.Builder

	if m.status != nil {
		style := s.Error
		if m.status.Success() {
			style = s.Success
		}
		b.WriteString(style.Render(m.status.Message))
		b.WriteString("\n\n")
	}

	labels := []string{"Name", "Email", "Subject"}
	for i, ti := range m.inputs {
		b.WriteString(s.Label.Render(labels[i]))
		b.WriteString(ti.View())
		b.WriteString("\n")
	}
	b.WriteString(s.Label.Render("Message"))
	b.WriteString("\n")
	m.message.SetWidth(max(min(width-2, 70), 20))
	b.WriteString(m.message.View())
	b.WriteString("\n")

	button := s.Button
	if m.active && m.focus == focusSubmit {
		button = s.ButtonFocused
	}
	label := "Send Message"
	if m.submitting {
		label = m.spinner.View() + " Sending..."
	}
	b.WriteString(button.Render(label))
	return b.String()
}
