// Package tui is the terminal rendition of the portfolio, served over SSH.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/soham247/stellar-portfolio/internal/carousel"
	"github.com/soham247/stellar-portfolio/internal/contact"
	"github.com/soham247/stellar-portfolio/internal/content"
	"github.com/soham247/stellar-portfolio/internal/theme"
)

// Tab identifies a page.
type Tab int

const (
	TabHome Tab = iota
	TabAbout
	TabProjects
	TabSkills
	TabContact
	tabCount
)

// Submitter delivers a contact form. *contact.Submitter is a Submitter.
type Submitter interface {
	Submit(ctx context.Context, client string, f contact.Form) contact.Status
}

// Options configure a Model.
type Options struct {
	Content   *content.Content
	Loop      *carousel.Loop
	Submitter Submitter
	// Client identifies the visitor for rate limiting.
	Client   string
	Mode     theme.Mode
	Renderer *lipgloss.Renderer
}

// Model is the top-level bubbletea model.
type Model struct {
	ctx       context.Context
	content   *content.Content
	loop      *carousel.Loop
	submitter Submitter
	client    string
	renderer  *lipgloss.Renderer

	mode   theme.Mode
	styles Styles

	tab      Tab
	frame    carousel.State
	viewport viewport.Model
	form     FormModel

	held    bool // paused with the space bar
	hovered bool // pointer over the strip
	width   int
	height  int
}

// NewModel creates a model. The caller starts opts.Loop; the model only
// reads its updates and toggles its pause flag.
func NewModel(ctx context.Context, opts Options) Model {
	mode := opts.Mode
	if mode == "" {
		mode = theme.Light
	}
	m := Model{
		ctx:       ctx,
		content:   opts.Content,
		loop:      opts.Loop,
		submitter: opts.Submitter,
		client:    opts.Client,
		renderer:  opts.Renderer,
		mode:      mode,
		viewport:  viewport.New(80, 20),
		form:      NewFormModel(),
	}
	m.styles = NewStyles(m.renderer, theme.Resolve(mode).Palette)
	return m
}

// Tab returns the page being shown.
func (m Model) Tab() Tab { return m.tab }

// Mode returns the active theme mode.
func (m Model) Mode() theme.Mode { return m.mode }

// Frame returns the last carousel state received.
func (m Model) Frame() carousel.State { return m.frame }

// Form returns the contact form.
func (m Model) Form() FormModel { return m.form }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.loop == nil {
		return nil
	}
	return WaitForFrameCmd(m.ctx, m.loop.Updates())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-m.chromeHeight(), 1)
		m.refresh()
		return m, nil

	case FrameMsg:
		m.frame = carousel.State(msg)
		if m.tab == TabHome {
			m.refresh()
		}
		return m, WaitForFrameCmd(m.ctx, m.loop.Updates())

	case SubmitResultMsg:
		m.form.finishSubmit(msg.Status)
		m.refresh()
		return m, nil

	case tea.MouseMsg:
		m.setHovered(m.tab == TabHome && m.overStrip(msg.Y))
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.form, cmd, _ = m.form.Update(msg)
	if m.tab == TabContact {
		m.refresh()
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.tab == TabContact && m.form.Active() {
		if msg.String() == "esc" {
			m.form.Deactivate()
			m.refresh()
			return m, nil
		}
		form, cmd, submit := m.form.Update(msg)
		m.form = form
		if submit {
			return m.submit()
		}
		m.refresh()
		return m, cmd
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "right", "l", "tab":
		return m.selectTab(m.tab + 1)
	case "left", "h", "shift+tab":
		return m.selectTab(m.tab - 1)
	case "1", "2", "3", "4", "5":
		return m.selectTab(Tab(msg.String()[0] - '1'))
	case "t":
		m.setMode(m.mode.Toggle())
		return m, nil
	case " ":
		m.held = !m.held
		m.syncPause()
		return m, nil
	case "enter", "i":
		if m.tab == TabContact {
			cmd := m.form.Activate()
			m.refresh()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) selectTab(t Tab) (tea.Model, tea.Cmd) {
	m.tab = (t + tabCount) % tabCount
	m.setHovered(false)
	m.viewport.GotoTop()

	var cmd tea.Cmd
	if m.tab == TabContact {
		cmd = m.form.Activate()
	} else {
		m.form.Deactivate()
	}
	m.refresh()
	return m, cmd
}

// submit starts sending the form unless a submission is in flight.
func (m Model) submit() (tea.Model, tea.Cmd) {
	ok, tick := m.form.startSubmit()
	if !ok || m.submitter == nil {
		return m, nil
	}
	m.refresh()
	return m, tea.Batch(tick, SubmitCmd(m.ctx, m.submitter, m.client, m.form.Form()))
}

func (m *Model) setMode(mode theme.Mode) {
	m.mode = mode
	m.styles = NewStyles(m.renderer, theme.Resolve(mode).Palette)
	m.refresh()
}

func (m *Model) setHovered(h bool) {
	if m.hovered == h {
		return
	}
	m.hovered = h
	m.syncPause()
}

func (m *Model) syncPause() {
	if m.loop != nil {
		m.loop.SetPaused(m.held || m.hovered)
	}
}

// chromeHeight is the number of rows outside the viewport: the tab bar and
// the help line.
func (m Model) chromeHeight() int {
	return lipgloss.Height(m.tabBar()) + 1 + 1
}

// overStrip reports whether screen row y falls on the carousel.
func (m Model) overStrip(y int) bool {
	top := lipgloss.Height(m.tabBar()) + 1 + m.heroHeight() - m.viewport.YOffset
	return y >= top && y < top+cardHeight
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.page())
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.tabBar(),
		"",
		m.viewport.View(),
		m.help(),
	)
}

var tabNames = []string{"Home", "About", "Projects", "Skills", "Contact"}

func (m Model) tabBar() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.tab {
			tabs[i] = m.styles.TabActive.Render(label)
		} else {
			tabs[i] = m.styles.TabInactive.Render(label)
		}
	}
	initials := m.styles.Title.Render(m.content.Profile.Initials)
	return initials + "  " + strings.Join(tabs, "")
}

func (m Model) help() string {
	var keys string
	switch {
	case m.tab == TabContact && m.form.Active():
		keys = "tab next field • enter send on button • ctrl+s send • esc leave form"
	case m.tab == TabContact:
		keys = "enter edit form • ←/→ pages • t theme • q quit"
	case m.tab == TabHome:
		keys = "←/→ pages • space pause • t theme • ↑/↓ scroll • q quit"
	default:
		keys = "←/→ pages • t theme • ↑/↓ scroll • q quit"
	}
	return m.styles.Help.Render(keys)
}
