// Package theme maps the light/dark display mode to the style tokens every
// page and the terminal UI render with.
package theme

import "strings"

// Mode is the resolved colour scheme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode accepts "light" or "dark" in any case. Anything else reports
// false.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

// IsDark reports whether m is the dark scheme.
func (m Mode) IsDark() bool {
	return m == Dark
}

// Toggle returns the opposite scheme. Unknown modes toggle to dark, since
// they render as light.
func (m Mode) Toggle() Mode {
	if m.IsDark() {
		return Light
	}
	return Dark
}

func (m Mode) String() string {
	return string(m)
}

// Styles is the table of style tokens for one mode. Class tokens are
// Tailwind utility classes; the remaining tokens are CSS values.
type Styles struct {
	Mode   Mode
	IsDark bool

	TextColor     string
	TextSecondary string
	AccentColor   string

	CardBg     string
	CardBorder string

	InputBg     string
	InputBorder string
	InputText   string
	InputFocus  string

	TagBg   string
	TagText string

	ButtonPrimary   string
	ButtonSecondary string
	IconButton      string

	// Nav
	NavLink   string
	NavActive string
	NavBorder string

	// Accent panels on the about and not-found pages
	AccentBorder string
	AccentBg     string

	CardShadow     string
	GradientPurple string
	GradientPink   string

	ParticleColor string
	Glow          string

	Palette Palette
}

// Palette is the terminal rendition of a mode, as hex colours.
type Palette struct {
	Background string
	Text       string
	Secondary  string
	Accent     string
	Border     string
	Tag        string
	Success    string
	Error      string
}

var lightStyles = Styles{
	Mode:   Light,
	IsDark: false,

	TextColor:     "text-black",
	TextSecondary: "text-gray-700",
	AccentColor:   "text-amber-500",

	CardBg:     "bg-white/80",
	CardBorder: "border-amber-500/20",

	InputBg:     "bg-gray-50",
	InputBorder: "border-gray-300",
	InputText:   "text-gray-900",
	InputFocus:  "focus:ring-amber-500",

	TagBg:   "bg-amber-500/20",
	TagText: "text-amber-700",

	ButtonPrimary:   "bg-gradient-to-r from-blue-500 to-purple-500 hover:from-blue-600 hover:to-purple-600",
	ButtonSecondary: "bg-amber-500 hover:bg-amber-600",
	IconButton:      "bg-gray-200 hover:bg-amber-200 text-gray-800",

	NavLink:   "text-gray-700 hover:text-black",
	NavActive: "text-amber-600",
	NavBorder: "border-black/10",

	AccentBorder: "border-amber-500/30",
	AccentBg:     "bg-amber-500/10",

	CardShadow:     "0 8px 32px rgba(0, 0, 0, 0.05), 0 0 8px rgba(217, 119, 6, 0.2)",
	GradientPurple: "linear-gradient(135deg, #D97706, #F59E0B)",
	GradientPink:   "linear-gradient(135deg, #B45309, #D97706)",

	ParticleColor: "#000000",
	Glow:          "#FFC107",

	Palette: Palette{
		Background: "#F2F0DD",
		Text:       "#000000",
		Secondary:  "#374151",
		Accent:     "#F59E0B",
		Border:     "#D97706",
		Tag:        "#B45309",
		Success:    "#16A34A",
		Error:      "#DC2626",
	},
}

var darkStyles = Styles{
	Mode:   Dark,
	IsDark: true,

	TextColor:     "text-white",
	TextSecondary: "text-gray-300",
	AccentColor:   "text-blue-400",

	CardBg:     "bg-slate-900/60",
	CardBorder: "border-blue-500/20",

	InputBg:     "bg-gray-700/50",
	InputBorder: "border-gray-600",
	InputText:   "text-white",
	InputFocus:  "focus:ring-blue-500",

	TagBg:   "bg-blue-900/40",
	TagText: "text-blue-300",

	ButtonPrimary:   "bg-gradient-to-r from-blue-500 to-purple-500 hover:from-blue-400 hover:to-purple-400",
	ButtonSecondary: "bg-blue-600 hover:bg-blue-700",
	IconButton:      "bg-gray-800 hover:bg-blue-900 text-white",

	NavLink:   "text-gray-200 hover:text-white",
	NavActive: "text-blue-400",
	NavBorder: "border-white/10",

	AccentBorder: "border-blue-500/30",
	AccentBg:     "bg-blue-900/20",

	CardShadow:     "0 8px 32px rgba(0, 0, 0, 0.2), 0 0 8px rgba(124, 58, 237, 0.3)",
	GradientPurple: "linear-gradient(135deg, #8B5CF6, #6366F1)",
	GradientPink:   "linear-gradient(135deg, #EC4899, #D946EF)",

	ParticleColor: "#ffffff",
	Glow:          "#3B82F6",

	Palette: Palette{
		Background: "#0A0D1E",
		Text:       "#FFFFFF",
		Secondary:  "#D1D5DB",
		Accent:     "#60A5FA",
		Border:     "#3B82F6",
		Tag:        "#93C5FD",
		Success:    "#22C55E",
		Error:      "#EF4444",
	},
}

// Resolve returns the style table for m. Anything other than Dark gets the
// light table.
func Resolve(m Mode) Styles {
	if m.IsDark() {
		return darkStyles
	}
	return lightStyles
}
