package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mergedrop/internal/core"
	"github.com/vovakirdan/tui-mergedrop/internal/games/mergedrop"
)

// hudRows is the number of terminal rows reserved below the board.
const hudRows = 2

// minTermW and minTermH are the smallest playable terminal size.
const (
	minTermW = 24
	minTermH = 12
)

// compactTermW marks the width below which the compact radius regime kicks in.
const compactTermW = 60

// nudgePx is how far one arrow-key press moves the drop preview.
const nudgePx = 4.0

var (
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	endStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	pauseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
)

// Model is the Bubble Tea model for a merge-drop session.
type Model struct {
	game    *mergedrop.Game
	screen  *core.Screen
	sprites *SpriteCache
	keys    KeyMap
	help    help.Model

	fps      int
	start    time.Time
	termW    int
	termH    int
	tooSmall bool
	quitting bool
}

// NewModel creates the session model and starts the game on a board derived
// from cfg.
func NewModel(game *mergedrop.Game, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	game.Reset(cfg)
	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.BoardW, cfg.BoardH),
		sprites: NewSpriteCache(),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		fps:     cfg.TickRate,
		start:   time.Now(),
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case FrameMsg:
		if !m.tooSmall {
			m.game.Frame(float64(time.Since(m.start).Microseconds()) / 1000.0)
		}
		return m, frameCmd(m.fps)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.ActionFor(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionLeft:
		m.game.PointerMoved(m.game.Snapshot().Preview.X - nudgePx)
	case core.ActionRight:
		m.game.PointerMoved(m.game.Snapshot().Preview.X + nudgePx)
	case core.ActionDrop:
		m.game.DropRequested()
	case core.ActionPause:
		m.game.TogglePause()
	case core.ActionRestart:
		if m.game.State() == mergedrop.StateEnded {
			m.game.Restart()
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionMotion:
		m.game.PointerMoved(float64(msg.X))
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.game.PointerMoved(float64(msg.X))
			m.game.DropRequested()
		}
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.termW = msg.Width
	m.termH = msg.Height
	m.help.Width = msg.Width
	m.tooSmall = msg.Width < minTermW || msg.Height < minTermH
	if m.tooSmall {
		return m, nil
	}
	boardW := msg.Width
	boardH := (msg.Height - hudRows) * 2
	compact := msg.Width < compactTermW
	m.screen.Resize(boardW, boardH)
	m.game.Resize(boardW, boardH, compact)
	return m, nil
}

// View renders the board and the HUD.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.tooSmall {
		return fmt.Sprintf("Terminal too small (need %dx%d). Resize or press q.", minTermW, minTermH)
	}

	snap := m.game.Snapshot()
	m.drawBoard(snap)

	var sb strings.Builder
	sb.WriteString(RenderScreen(m.screen))
	sb.WriteByte('\n')
	sb.WriteString(m.hudLine(snap))
	sb.WriteByte('\n')
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// drawBoard rasterizes one frame into the pixel buffer.
func (m Model) drawBoard(snap mergedrop.Snapshot) {
	s := m.screen
	s.Clear()

	s.VLine(0, 0, s.Height(), core.ColorDim)
	s.VLine(s.Width()-1, 0, s.Height(), core.ColorDim)
	s.HLine(0, s.Height()-1, s.Width(), core.ColorDim)
	s.DottedHLine(0, int(snap.DangerY), s.Width(), core.ColorDim)

	if snap.State == mergedrop.StateRunning {
		// Drop guide under the preview disc.
		gx := core.Clamp(int(math.Round(snap.Preview.X)), 0, s.Width()-1)
		for y := int(snap.Preview.Y + snap.Preview.Radius); y < s.Height(); y += 3 {
			s.Set(gx, y, core.ColorDim)
		}
		s.Stamp(
			gx-int(math.Round(snap.Preview.Radius)),
			int(math.Round(snap.Preview.Y-snap.Preview.Radius)),
			m.sprites.Disc(snap.Preview.Radius, snap.Preview.Color, true),
		)
	}

	for _, d := range snap.Discs {
		r := d.Radius
		if d.Scale < 1 {
			r = d.Radius * d.Scale
			if r < 1 {
				r = 1
			}
		}
		mask := m.sprites.Disc(r, d.Color, false)
		s.Stamp(
			int(math.Round(d.X-r)),
			int(math.Round(d.Y-r)),
			mask,
		)
	}

	for _, p := range snap.Particles {
		if p.Alpha < 0.2 {
			continue
		}
		x, y := int(math.Round(p.X)), int(math.Round(p.Y))
		if p.Size >= 2 {
			s.FillCircle(x, y, int(p.Size)/2, p.Color)
		} else {
			s.Set(x, y, p.Color)
		}
	}
}

// hudLine builds the status row below the board.
func (m Model) hudLine(snap mergedrop.Snapshot) string {
	parts := []string{
		labelStyle.Render(" SCORE ") + scoreStyle.Render(fmt.Sprintf("%d", snap.Score)),
		labelStyle.Render("BEST ") + scoreStyle.Render(fmt.Sprintf("%d", snap.Best)),
		labelStyle.Render("NEXT ") + lipgloss.NewStyle().Foreground(palette[snap.Preview.Color]).Render(fmt.Sprintf("%d", snap.Preview.Value)),
	}
	switch snap.State {
	case mergedrop.StatePaused:
		parts = append(parts, pauseStyle.Render("PAUSED"))
	case mergedrop.StateEnded:
		parts = append(parts, endStyle.Render("GAME OVER: "+snap.EndReason+" Press r to restart."))
	}
	if snap.Notice != "" {
		parts = append(parts, noticeStyle.Render(snap.Notice))
	}
	if snap.FPS > 0 {
		parts = append(parts, labelStyle.Render(fmt.Sprintf("%.0f fps", snap.FPS)))
	}
	return strings.Join(parts, labelStyle.Render("  │  "))
}

// Run starts the Bubble Tea program for a game session.
func Run(game *mergedrop.Game, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
