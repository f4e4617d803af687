// ============================================================================
// mCALC - Arithmetic Expression Calculator
// ============================================================================
//
// Package:     repl
// Description: Styles for the interactive calculator
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package repl

import (
	"github.com/charmbracelet/lipgloss"
)

// Color Palette
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray

	ColorBgPanel = lipgloss.Color("#1E293B") // Slate 800

	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
)

// Logo shown in the header
const Logo = "mCALC"

// Header styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Transcript styles
var (
	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	ExpressionStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	ResultStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	TreeStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			PaddingLeft(4)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			PaddingLeft(2)

	SystemStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	DurationStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Panel styles
var (
	TranscriptPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorDimmed).
				Padding(0, 1)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Background(ColorBgPanel).
			Padding(0, 1)
)

// Help styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// RenderKeyHint renders a key and its description for the help bar
func RenderKeyHint(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}
