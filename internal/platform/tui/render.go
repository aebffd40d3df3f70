package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/service-drop/internal/core"
	"github.com/vovakirdan/service-drop/internal/game"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	authorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	scoreStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	toastStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// DrawSnapshot paints zones and the falling icon into the screen buffer.
// While a result is pending the icon is tinted by the outcome and the zone
// the service belongs to is shaded.
func DrawSnapshot(screen *core.Screen, layout Layout, snap game.Snapshot) {
	screen.Clear()
	if !snap.Ready {
		return
	}

	if z, ok := snap.CorrectZone(); ok {
		screen.DrawRect(layout.CellRect(z.Rect), '▒', core.ColorGreen)
	}
	for _, z := range snap.Zones {
		drawZone(screen, layout, z)
	}

	iconColor := core.ColorYellow
	if last := snap.Last; snap.Pending && last != nil {
		switch {
		case last.Kind == game.OutcomeMiss:
			iconColor = core.ColorGray
		case last.Correct:
			iconColor = core.ColorGreen
		default:
			iconColor = core.ColorRed
		}
	}

	icon := layout.CellRect(snap.IconRect())
	screen.DrawRect(icon, '░', iconColor)
	screen.DrawBox(icon, iconColor)
	drawLabel(screen, icon, snap.Icon.Service.Label, iconColor)
}

func drawZone(screen *core.Screen, layout Layout, z game.Zone) {
	color := core.RoleColors[int(z.ID)%len(core.RoleColors)]
	r := layout.CellRect(z.Rect)
	screen.DrawBox(r, color)
	drawLabel(screen, r, z.Role.Label, color)
}

// drawLabel writes text centered inside r, wrapping on spaces and
// truncating what does not fit.
func drawLabel(screen *core.Screen, r core.Rect, text string, color core.Color) {
	inner := r.W - 2
	if inner <= 0 || r.H <= 2 {
		return
	}

	lines := wrapWords(text, inner)
	if maxLines := r.H - 2; len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	top := r.Y + (r.H-len(lines))/2
	for i, line := range lines {
		x := r.X + (r.W-len([]rune(line)))/2
		screen.DrawTextColored(x, top+i, line, color)
	}
}

func wrapWords(text string, width int) []string {
	var lines []string
	var cur string
	for _, w := range strings.Fields(text) {
		if runes := []rune(w); len(runes) > width {
			w = string(runes[:width])
		}
		switch {
		case cur == "":
			cur = w
		case len([]rune(cur))+1+len([]rune(w)) <= width:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// StatusInfo is the text shown in the status panel.
type StatusInfo struct {
	Title   string
	Author  string
	Display core.Display
	Status  string // Score line from the game
	Toast   string
	Help    string
}

// RenderStatus renders the panel under the play area. Always StatusRows lines.
func RenderStatus(info StatusInfo, width int) string {
	header := titleStyle.Render(info.Title)
	if info.Author != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, "  ", authorStyle.Render(info.Author))
	}

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		infoStyle.Render(fmt.Sprintf("Screen: %s (%.0f * %.0f dp)", info.Display,
			info.Display.Dp(info.Display.Width), info.Display.Dp(info.Display.Height))),
		"   ",
		scoreStyle.Render(info.Status),
	)

	toast := ""
	if info.Toast != "" {
		toast = toastStyle.Render(info.Toast)
	}

	lines := []string{header, stats, toast, helpStyle.Render(info.Help)}
	for i, l := range lines {
		lines[i] = lipgloss.NewStyle().MaxWidth(width).Render(l)
	}
	return strings.Join(lines, "\n")
}

// RenderTooSmall explains that the terminal cannot fit the zones.
func RenderTooSmall(layout Layout, iconSize int, width, height int) string {
	d := layout.Display(iconSize)
	msg := fmt.Sprintf("Terminal too small: play area is %s, needs at least %d * %d px.\nResize the window or press q to quit.",
		d, 2*iconSize, 2*iconSize)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, warningStyle.Render(msg))
}
