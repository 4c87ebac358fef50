package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Soham Sadhukhan", c.Profile.Name)
	assert.Equal(t, "Web Developer", c.Profile.Role)
	assert.Equal(t, "West Bengal, India", c.Profile.Location)

	var paths []string
	for _, item := range c.Nav {
		paths = append(paths, item.Path)
	}
	assert.Equal(t, []string{"/", "/aboutme", "/projects", "/skills", "/contact"}, paths)

	require.Len(t, c.Carousel, 3)
	assert.Equal(t, "Jeevan Verse", c.Carousel[0].Title)
	assert.Equal(t, "Muse", c.Carousel[2].Title)

	assert.Len(t, c.Projects, 5)
	assert.Len(t, c.SkillCategories, 5)
	assert.Len(t, c.TopSkills, 11)
	assert.Len(t, c.Achievements, 2)

	about := c.Page("about")
	require.Len(t, about.Sections, 3)
	assert.Equal(t, "Hello, Digital Explorer!", about.Sections[0].Title)

	gh, ok := c.Social("GitHub")
	require.True(t, ok)
	assert.Equal(t, "https://github.com/soham247", gh.URL)
}

func TestPage_Missing(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	p := c.Page("does-not-exist")
	require.NotNil(t, p)
	assert.Empty(t, p.Title)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"malformed", "profile: [", ErrContentParse},
		{"unknown key", "profile:\n  name: x\n  favourite-colour: blue\n", ErrContentParse},
		{"missing name", "nav:\n  - {name: Home, path: /}\n", ErrInvalidContent},
		{"no nav", "profile: {name: x}\ncarousel:\n  - {title: a}\n", ErrInvalidContent},
		{"no carousel", "profile: {name: x}\nnav:\n  - {name: Home, path: /}\n", ErrInvalidContent},
		{"nav without path", "profile: {name: x}\nnav:\n  - {name: Home}\ncarousel:\n  - {title: a}\n", ErrInvalidContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	doc := `
profile:
  name: Test Person
nav:
  - {name: Home, path: /}
carousel:
  - {title: Only, image: /static/only.png, description: one card}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Test Person", c.Profile.Name)
	assert.Len(t, c.Carousel, 1)

	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "Soham Sadhukhan", c.Profile.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrContentRead)
}
