package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/love-yuri/qq-music-api/internal/tasks"
)

// QQ Music brand green and status colours.
const (
	colorBrand  = lipgloss.Color("#31C27C")
	colorOK     = lipgloss.Color("#04B575")
	colorFailed = lipgloss.Color("#FF4D4F")
	colorWarn   = lipgloss.Color("#FFA500")
	colorMuted  = lipgloss.Color("#626262")
)

// theme groups the styles used by the views.
type theme struct {
	title  lipgloss.Style
	ok     lipgloss.Style
	failed lipgloss.Style
	warn   lipgloss.Style
	muted  lipgloss.Style
}

var styles = theme{
	title:  lipgloss.NewStyle().Foreground(colorBrand).Bold(true).MarginBottom(1),
	ok:     lipgloss.NewStyle().Foreground(colorOK).Bold(true),
	failed: lipgloss.NewStyle().Foreground(colorFailed).Bold(true),
	warn:   lipgloss.NewStyle().Foreground(colorWarn),
	muted:  lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
}

// songStatus renders the outcome of one song in the result view.
func songStatus(res tasks.SongResult) string {
	switch {
	case res.Error != nil:
		return fmt.Sprintf("%s %d: %v", styles.failed.Render("✗"), res.SongID, res.Error)
	case !res.Success:
		return fmt.Sprintf("%s %d: %s", styles.warn.Render("✗"), res.SongID, styles.muted.Render("rejected"))
	default:
		return fmt.Sprintf("%s %d", styles.ok.Render("✓"), res.SongID)
	}
}
