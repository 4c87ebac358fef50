// Package content holds the portfolio data shown by the web pages and the
// terminal UI: profile, navigation, projects, skills, achievements and the
// about page.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/soham247/stellar-portfolio/internal/carousel"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

type (
	Social struct {
		Name string `yaml:"name"`
		URL  string `yaml:"url"`
	}

	Profile struct {
		Name     string   `yaml:"name"`
		Initials string   `yaml:"initials"`
		Role     string   `yaml:"role"`
		Tagline  string   `yaml:"tagline"`
		Location string   `yaml:"location"`
		Photo    string   `yaml:"photo"`
		Socials  []Social `yaml:"socials"`
	}

	NavItem struct {
		Name string `yaml:"name"`
		Path string `yaml:"path"`
	}

	Project struct {
		Name         string   `yaml:"name"`
		Image        string   `yaml:"image"`
		Technologies []string `yaml:"technologies"`
		Description  string   `yaml:"description"`
		LiveLink     string   `yaml:"live-link"`
		GitHubLink   string   `yaml:"github-link"`
	}

	Skill struct {
		Name string `yaml:"name"`
		Icon string `yaml:"icon"`
	}

	SkillCategory struct {
		Name   string  `yaml:"name"`
		Skills []Skill `yaml:"skills"`
	}

	Achievement struct {
		Type        string `yaml:"type"`
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Date        string `yaml:"date"`
	}

	Experience struct {
		Role        string `yaml:"role"`
		Company     string `yaml:"company"`
		Period      string `yaml:"period"`
		Location    string `yaml:"location"`
		Description string `yaml:"description"`
	}

	// Section is a titled block of markdown.
	Section struct {
		Title string `yaml:"title"`
		Body  string `yaml:"body"`
	}

	Page struct {
		Title    string    `yaml:"title"`
		Subtitle string    `yaml:"subtitle"`
		Sections []Section `yaml:"sections"`
		Closing  string    `yaml:"closing"`
	}
)

// Content is the whole portfolio.
type Content struct {
	Site struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	} `yaml:"site"`

	Profile         Profile          `yaml:"profile"`
	Nav             []NavItem        `yaml:"nav"`
	Carousel        []carousel.Item  `yaml:"carousel"`
	Projects        []Project        `yaml:"projects"`
	TopSkills       []Skill          `yaml:"top-skills"`
	SkillCategories []SkillCategory  `yaml:"skill-categories"`
	Achievements    []Achievement    `yaml:"achievements"`
	Experience      []Experience     `yaml:"experience"`
	Pages           map[string]*Page `yaml:"pages"`
}

// Default returns the content compiled into the binary.
func Default() (*Content, error) {
	return Parse(defaultContent)
}

// Load reads content from path, or returns the built-in content when path
// is empty.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentRead, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML content document. Unknown keys are
// rejected so a typo does not silently drop a section.
func Parse(data []byte) (*Content, error) {
	var c Content
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentParse, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the fields every view depends on.
func (c *Content) Validate() error {
	if c.Profile.Name == "" {
		return fmt.Errorf("%w: profile name is required", ErrInvalidContent)
	}
	if len(c.Nav) == 0 {
		return fmt.Errorf("%w: at least one nav item is required", ErrInvalidContent)
	}
	for i, item := range c.Nav {
		if item.Name == "" || item.Path == "" {
			return fmt.Errorf("%w: nav item %d needs a name and a path", ErrInvalidContent, i)
		}
	}
	if len(c.Carousel) == 0 {
		return fmt.Errorf("%w: carousel has no items", ErrInvalidContent)
	}
	for i, p := range c.Projects {
		if p.Name == "" {
			return fmt.Errorf("%w: project %d has no name", ErrInvalidContent, i)
		}
	}
	for _, cat := range c.SkillCategories {
		if cat.Name == "" {
			return fmt.Errorf("%w: skill category has no name", ErrInvalidContent)
		}
	}
	return nil
}

// Page returns the named page, or an empty page when it is not defined.
func (c *Content) Page(name string) *Page {
	if p, ok := c.Pages[name]; ok && p != nil {
		return p
	}
	return &Page{}
}

// Social returns the profile link with the given name.
func (c *Content) Social(name string) (Social, bool) {
	for _, s := range c.Profile.Socials {
		if s.Name == name {
			return s, true
		}
	}
	return Social{}, false
}
