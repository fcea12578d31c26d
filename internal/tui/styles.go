// Package tui provides the interactive terminal UI for swty.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - titles, errors
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - subtitles, current view
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - keys, selection
	ColorMuted     = lipgloss.Color("#666666") // Gray - help text
	ColorText      = lipgloss.Color("#f1faee") // Light text
	ColorBg        = lipgloss.Color("#1a1a2e") // Dark background
	ColorBgAlt     = lipgloss.Color("#2d3436") // Alt background
	ColorBorder    = lipgloss.Color("#3d5a80") // Border color
)

// Sidebar styles
var (
	SidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderRight(true).
			BorderForeground(ColorBorder).
			Padding(1, 1)

	SidebarTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Background(ColorBg).
				Padding(0, 1).
				MarginBottom(1)

	SidebarItemStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	SidebarItemActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				Background(ColorBgAlt).
				Padding(0, 1)

	SidebarHelpStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				MarginTop(1).
				Padding(0, 1)
)

// Help overlay styles
var (
	HelpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	HelpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary).
				MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Width(12)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	HelpFooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	HelpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(1, 2).
			Width(50)
)

// Content area style
var ContentStyle = lipgloss.NewStyle().
	Padding(1, 2)
