package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/balancecoach/pkg/composition"
	"github.com/matzehuels/balancecoach/pkg/feedback"
)

// The terminal board draws one grid cell as two columns by one row.
const (
	cellWidth = 2
	boardTop  = 2 // rows above the board: title and a blank line
	gaugeHalf = 20
)

var (
	styleFloor   = lipgloss.NewStyle().Foreground(colorDim)
	styleGuide   = lipgloss.NewStyle().Foreground(colorDim)
	styleFulcrum = lipgloss.NewStyle().Foreground(colorGray)
	styleCursor  = lipgloss.NewStyle().Reverse(true)
	styleHelp    = lipgloss.NewStyle().Foreground(colorDim)
	styleCoach   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan).
			Padding(0, 1)
)

// feedbackMsg carries a finished feedback task back into the event loop.
type feedbackMsg struct {
	task *feedback.Task
	text string
}

// playModel is the bubbletea model of the interactive board.
type playModel struct {
	ctx      context.Context
	engine   *composition.Engine
	analyzer *feedback.Analyzer

	cursorCol, cursorRow int
	drag                 *composition.Drag

	feedback string
	notice   string
	width    int
}

func newPlayModel(ctx context.Context, e *composition.Engine, a *feedback.Analyzer) playModel {
	b := e.Board()
	return playModel{
		ctx:       ctx,
		engine:    e,
		analyzer:  a,
		cursorCol: int(b.Width/composition.GridUnit) / 4,
		cursorRow: int(b.FloorY()/composition.GridUnit) / 2,
	}
}

func (m playModel) Init() tea.Cmd { return nil }

func (m playModel) cols() int { return int(m.engine.Board().Width / composition.GridUnit) }
func (m playModel) rows() int { return int(m.engine.Board().Height / composition.GridUnit) }

// pointer returns the board position at the center of a cell.
func pointer(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * composition.GridUnit, (float64(row) + 0.5) * composition.GridUnit
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case feedbackMsg:
		if msg.task == m.analyzer.Current() {
			m.feedback = msg.text
		}
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m playModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	col, row := msg.X/cellWidth, msg.Y-boardTop
	if col < 0 || row < 0 || col >= m.cols() || row >= m.rows() {
		// Leaving the board drops the shape where it last landed.
		m.endDrag()
		return m, nil
	}
	m.cursorCol, m.cursorRow = col, row
	x, y := pointer(col, row)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.drag = m.engine.PointerDown(x, y)
		}
	case tea.MouseActionMotion:
		if m.drag.Active() {
			m.drag.Move(x, y)
		}
	case tea.MouseActionRelease:
		m.endDrag()
	}
	return m, nil
}

func (m *playModel) endDrag() {
	if m.drag.Active() {
		m.drag.End()
	}
	m.drag = nil
}

func (m playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		if t := m.analyzer.Current(); t != nil {
			t.Cancel()
		}
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(0, -1)
	case "down", "j":
		m.moveCursor(0, 1)
	case "left", "h":
		m.moveCursor(-1, 0)
	case "right", "l":
		m.moveCursor(1, 0)
	case " ", "enter":
		if m.drag.Active() {
			m.endDrag()
		} else {
			m.drag = m.engine.PointerDown(pointer(m.cursorCol, m.cursorRow))
		}
	case "esc":
		m.endDrag()
		m.engine.ClearSelection()
	case "s":
		m.add(composition.KindSquare)
	case "r":
		m.add(composition.KindRectangle)
	case "t":
		if s, ok := m.engine.Selected(); ok && !m.engine.Rotate(s.ID) {
			m.notice = "No room to rotate here."
		}
	case "+", "=":
		m.resize(composition.GridUnit)
	case "-", "_":
		m.resize(-composition.GridUnit)
	case "1", "2", "3", "4", "5":
		shade, _ := strconv.Atoi(key)
		m.engine.SetControlShade(shade)
	case "x", "delete", "backspace":
		if s, ok := m.engine.Selected(); ok {
			m.engine.Delete(s.ID)
			m.drag = nil
		}
	case "m":
		next := composition.ModeSymmetrical
		if m.engine.Mode() == composition.ModeSymmetrical {
			next = composition.ModeAsymmetrical
		}
		if err := m.engine.SetMode(next); err != nil {
			m.notice = "Finish or reset the challenge to change mode."
		} else {
			m.feedback = ""
			m.drag = nil
		}
	case "c":
		m.engine.StartChallenge()
		m.feedback = ""
		m.drag = nil
	case "n":
		m.engine.Reset()
		m.feedback = ""
		m.drag = nil
	case "g":
		m.engine.CycleGuides()
	case "f":
		return m, m.requestFeedback()
	}
	return m, nil
}

func (m *playModel) moveCursor(dc, dr int) {
	m.cursorCol = max(0, min(m.cols()-1, m.cursorCol+dc))
	m.cursorRow = max(0, min(m.rows()-1, m.cursorRow+dr))
	if m.drag.Active() {
		m.drag.Move(pointer(m.cursorCol, m.cursorRow))
	}
}

func (m *playModel) add(kind composition.Kind) {
	m.endDrag()
	if _, err := m.engine.Add(kind); err != nil {
		m.notice = "No space left for that shape."
	}
}

func (m *playModel) resize(delta float64) {
	size := m.engine.ControlSize() + delta
	if size < composition.MinSize || size > composition.MaxSize {
		return
	}
	if !m.engine.SetControlSize(size) {
		if _, ok := m.engine.Selected(); ok {
			m.notice = "No room to resize here."
		}
	}
}

func (m *playModel) requestFeedback() tea.Cmd {
	t := m.analyzer.Start(m.ctx, m.engine.Snapshot())
	if t == nil {
		m.notice = "Add some shapes first."
		return nil
	}
	m.feedback = ""
	return func() tea.Msg { return feedbackMsg{task: t, text: t.Wait()} }
}

// =============================================================================
// View
// =============================================================================

func (m playModel) View() string {
	var b strings.Builder
	snap := m.engine.Snapshot()

	title := StyleTitle.Render("Balance Coach") + "  " + StyleDim.Render(string(snap.Mode))
	if snap.Challenge != nil {
		title += "  " + StyleHighlight.Render(fmt.Sprintf("challenge: %s, balance it with %d shapes", snap.Challenge.Pattern, snap.Challenge.Target))
	}
	b.WriteString(title + "\n\n")

	b.WriteString(m.renderBoard(snap))
	b.WriteString(renderGauge(snap.Balance) + "\n\n")

	guides := snap.Guides
	if guides == "" {
		guides = composition.GuidesNone
	}
	controls := fmt.Sprintf("size %s  shade %s  guides %s",
		StyleNumber.Render(fmt.Sprint(m.engine.ControlSize())),
		StyleNumber.Render(composition.ShadeName(m.engine.ControlShade())),
		StyleValue.Render(string(guides)))
	if s, ok := m.engine.Selected(); ok {
		controls += "  " + StyleDim.Render("selected "+s.String())
	}
	b.WriteString(controls + "\n")

	if m.notice != "" {
		b.WriteString(StyleWarning.Render(m.notice) + "\n")
	}
	switch {
	case m.analyzer.Analyzing():
		b.WriteString(StyleDim.Render("The coach is looking at your composition...") + "\n")
	case m.feedback != "":
		width := 76
		if m.width > 4 {
			width = min(width, m.width-4)
		}
		b.WriteString(styleCoach.Width(width).Render(m.feedback) + "\n")
	}

	b.WriteString(styleHelp.Render("arrows move · space grab/drop · s square · r rectangle · t rotate · +/- size · 1-5 shade · x delete") + "\n")
	b.WriteString(styleHelp.Render("m mode · c challenge · n reset · g guides · f feedback · q quit"))
	return b.String()
}

func (m playModel) renderBoard(snap composition.Snapshot) string {
	board := snap.Board
	guideXs, guideYs := snap.Guides.Lines(board.Width, board.FloorY())
	guideCols := map[int]bool{}
	for _, x := range guideXs {
		guideCols[int(x/composition.GridUnit)] = true
	}
	guideRows := map[int]bool{}
	for _, y := range guideYs {
		guideRows[int(y/composition.GridUnit)] = true
	}
	fulcrumCol := int(board.Fulcrum() / composition.GridUnit)
	floorRow := int(board.FloorY() / composition.GridUnit)

	var b strings.Builder
	for row := range m.rows() {
		for col := range m.cols() {
			x, y := pointer(col, row)
			cell := "  "
			style := lipgloss.NewStyle()

			if s, ok := m.engine.ShapeAt(x, y); ok {
				cell = "██"
				switch {
				case s.Challenge:
					cell = "▓▓"
				case s.ID == snap.Selected:
					cell = "▒▒"
				}
				style = style.Foreground(shadeColor(s.Color, s.Saturation))
			} else if row >= floorRow {
				cell, style = "░░", styleFloor
			} else if col == fulcrumCol {
				cell, style = "│ ", styleFulcrum
			} else if guideCols[col] {
				cell, style = "┊ ", styleGuide
			} else if guideRows[row] {
				cell, style = "┈┈", styleGuide
			}

			if col == m.cursorCol && row == m.cursorRow {
				style = style.Inherit(styleCursor)
				if cell == "  " {
					cell = "[]"
				}
			}
			b.WriteString(style.Render(cell))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderGauge draws the beam as a level indicator: the marker leans toward
// the heavy side in proportion to the visual tilt.
func renderGauge(bal composition.Balance) string {
	offset := int(math.Round(bal.VisualTilt / composition.MaxVisualTilt * gaugeHalf))
	line := []rune(strings.Repeat("─", 2*gaugeHalf+1))
	line[gaugeHalf+offset] = '●'
	return fmt.Sprintf("L %s R  %s  %s",
		string(line),
		statusStyle(bal.Status).Render(string(bal.Status)),
		StyleDim.Render(fmt.Sprintf("tilt %.2f°", bal.Tilt)))
}

// shadeColor blends a hex color toward its gray value as saturation drops.
func shadeColor(hex string, saturation float64) lipgloss.Color {
	if len(hex) != 7 || hex[0] != '#' {
		return lipgloss.Color(hex)
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return lipgloss.Color(hex)
	}
	r, g, b := float64(v>>16&0xff), float64(v>>8&0xff), float64(v&0xff)
	gray := 0.299*r + 0.587*g + 0.114*b
	mix := func(c float64) uint8 { return uint8(math.Round(gray + (c-gray)*saturation)) }
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", mix(r), mix(g), mix(b)))
}
