package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/soham247/stellar-portfolio/internal/content"
)

// emphasis drops the markdown emphasis markers used in the about page.
var emphasis = strings.NewReplacer("**", "", "__", "", "*", "")

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m Model) page() string {
	switch m.tab {
	case TabAbout:
		return m.aboutPage()
	case TabProjects:
		return m.projectsPage()
	case TabSkills:
		return m.skillsPage()
	case TabContact:
		return m.contactPage()
	default:
		return m.homePage()
	}
}

func (m Model) hero() string {
	p := m.content.Profile
	s := m.styles
	w := min(m.contentWidth(), 72)
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Accent.Render("★ "+p.Role),
		s.Title.Render(p.Name),
		s.Secondary.Width(w).Render(p.Tagline),
		s.Heading.Render(m.content.Page("home").Title),
	)
}

func (m Model) heroHeight() int {
	return lipgloss.Height(m.hero())
}

func (m Model) homePage() string {
	c := m.content
	s := m.styles
	home := c.Page("home")
	w := min(m.contentWidth(), 72)

	var b strings.Builder
	b.WriteString(m.hero())
	b.WriteString("\n")
	if m.loop != nil {
		b.WriteString(s.Strip.Render(strings.Join(renderStrip(m.loop.Strip(), m.frame, m.contentWidth()), "\n")))
		b.WriteString("\n")
	}

	b.WriteString(s.Heading.Render(home.Subtitle))
	b.WriteString("\n")
	names := make([]string, len(c.TopSkills))
	for i, sk := range c.TopSkills {
		names[i] = sk.Name
	}
	b.WriteString(s.Tag.Width(w).Render(strings.Join(names, " • ")))
	b.WriteString("\n")

	for i, section := range home.Sections {
		b.WriteString(s.Heading.Render(section.Title))
		b.WriteString("\n")
		b.WriteString(s.Secondary.Width(w).Render(section.Body))
		b.WriteString("\n")
		if i == 0 {
			for _, a := range c.Achievements {
				b.WriteString(s.Card.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
					s.Accent.Render(a.Type),
					s.Text.Bold(true).Render(a.Name),
					s.Secondary.Render(a.Description),
					s.Secondary.Render(a.Date),
				)))
				b.WriteString("\n")
			}
		} else {
			for _, e := range c.Experience {
				b.WriteString(s.Card.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
					s.Text.Bold(true).Render(e.Role),
					s.Accent.Render(e.Company+" · "+e.Location),
					s.Secondary.Render(e.Period),
					s.Text.Render(e.Description),
				)))
				b.WriteString("\n")
			}
		}
	}
	if home.Closing != "" {
		b.WriteString("\n")
		b.WriteString(s.Secondary.Italic(true).Width(w).Render(home.Closing))
	}
	return b.String()
}

func (m Model) sectionsPage(p *content.Page) string {
	s := m.styles
	w := min(m.contentWidth(), 72)

	var b strings.Builder
	b.WriteString(s.Title.Render(p.Title))
	b.WriteString("\n")
	if p.Subtitle != "" {
		b.WriteString(s.Secondary.Width(w).Render(p.Subtitle))
		b.WriteString("\n")
	}
	for _, section := range p.Sections {
		b.WriteString(s.Heading.Foreground(s.Accent.GetForeground()).Render(section.Title))
		b.WriteString("\n")
		b.WriteString(s.Text.Width(w).Render(emphasis.Replace(section.Body)))
		b.WriteString("\n")
	}
	if p.Closing != "" {
		b.WriteString("\n")
		b.WriteString(s.Secondary.Italic(true).Width(w).Render(p.Closing))
	}
	return b.String()
}

func (m Model) aboutPage() string {
	return m.sectionsPage(m.content.Page("about"))
}

func (m Model) projectsPage() string {
	s := m.styles
	w := min(m.contentWidth(), 72)

	var b strings.Builder
	b.WriteString(s.Title.Render(m.content.Page("projects").Title))
	b.WriteString("\n")
	for _, p := range m.content.Projects {
		lines := []string{
			s.Text.Bold(true).Render(p.Name),
			s.Secondary.Render(p.Description),
			s.Tag.Render(strings.Join(p.Technologies, " · ")),
		}
		if p.LiveLink != "" {
			lines = append(lines, s.Accent.Render("live   ")+s.Text.Render(p.LiveLink))
		}
		if p.GitHubLink != "" {
			lines = append(lines, s.Accent.Render("github ")+s.Text.Render(p.GitHubLink))
		}
		b.WriteString(s.Card.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) skillsPage() string {
	s := m.styles
	w := min(m.contentWidth(), 72)
	page := m.content.Page("skills")

	var b strings.Builder
	b.WriteString(s.Title.Render(page.Title))
	b.WriteString("\n")
	if page.Subtitle != "" {
		b.WriteString(s.Secondary.Width(w).Render(page.Subtitle))
		b.WriteString("\n")
	}
	for _, cat := range m.content.SkillCategories {
		b.WriteString(s.Heading.Render(cat.Name))
		b.WriteString("\n")
		names := make([]string, len(cat.Skills))
		for i, sk := range cat.Skills {
			names[i] = sk.Name
		}
		b.WriteString(s.Tag.Width(w).Render(strings.Join(names, " • ")))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) contactPage() string {
	s := m.styles
	w := min(m.contentWidth(), 72)
	page := m.content.Page("contact")

	var b strings.Builder
	b.WriteString(s.Title.Render(page.Title))
	b.WriteString("\n")
	if page.Subtitle != "" {
		b.WriteString(s.Secondary.Width(w).Render(page.Subtitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.form.View(s, w))
	b.WriteString("\n\n")
	for _, social := range m.content.Profile.Socials {
		b.WriteString(s.Accent.Render(social.Name) + "  " + s.Secondary.Render(social.URL))
		b.WriteString("\n")
	}
	return b.String()
}
