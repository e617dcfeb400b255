// Package monitor implements the live bridge TUI using BubbleTea:
// sparkline charts for the inlet, humidity and simulated outlet
// streams, equipment status chips, and the selection metadata behind
// the current outlet reading.
package monitor

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luki/simbridge/internal/chart"
	"github.com/luki/simbridge/internal/history"
	"github.com/luki/simbridge/internal/publish"
)

// ── Messages ─────────────────────────────────────────────────────────

// FrameMsg delivers one completed poll frame to the UI. The bridge's
// OnFrame hook sends these via Program.Send.
type FrameMsg publish.Frame

// ErrMsg reports a bridge failure to the UI without stopping it.
type ErrMsg struct{ Err error }

func (e ErrMsg) Error() string { return e.Err.Error() }

// ── Model ────────────────────────────────────────────────────────────

type streamRow struct {
	stream  string
	unit    string
	high    float64
	crit    float64
	hasHigh bool
	hasCrit bool
}

// Model is the BubbleTea model for the live monitor.
type Model struct {
	history   *history.Store
	rows      []streamRow
	last      *publish.Frame
	err       error
	width     int
	height    int
	scroll    int
	startTime time.Time
	paused    bool
	dataDir   string
}

// New creates the initial model. threshold is the inlet temperature
// that switches the fan and compressor on; it doubles as the chart
// warning level. dataDir labels the REC indicator, empty when CSV
// logging is off.
func New(capacity int, threshold float64, dataDir string) Model {
	return Model{
		history: history.NewStore(capacity),
		rows: []streamRow{
			{stream: publish.StreamAirIn, unit: "°C", high: threshold, crit: threshold + 10, hasHigh: true, hasCrit: true},
			{stream: publish.StreamHumidity, unit: "%"},
			{stream: publish.StreamAirOut, unit: "°C", high: threshold, crit: threshold + 10, hasHigh: true, hasCrit: true},
		},
		startTime: time.Now(),
		dataDir:   dataDir,
	}
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		case "home":
			m.scroll = 0
		case " ", "p":
			m.paused = !m.paused
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case FrameMsg:
		if m.paused {
			return m, nil
		}
		f := publish.Frame(msg)
		m.last = &f
		m.err = nil
		m.history.Record(publish.StreamAirIn, f.AirIn, f.Time)
		m.history.Record(publish.StreamHumidity, f.Humidity, f.Time)
		if f.AirOut != nil {
			m.history.Record(publish.StreamAirOut, *f.AirOut, f.Time)
		}

	case ErrMsg:
		m.err = msg.Err
	}

	return m, nil
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorOk       = lipgloss.Color("78")
	colorWarn     = lipgloss.Color("220")
	colorHigh     = lipgloss.Color("208")
	colorCrit     = lipgloss.Color("196")
	colorPaused   = lipgloss.Color("196")
	colorContext  = lipgloss.Color("147")
)

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string

	sections = append(sections, m.renderTitleBar(contentWidth))

	if m.err != nil {
		errBox := lipgloss.NewStyle().
			Foreground(colorCrit).
			Bold(true).
			Width(contentWidth).
			Padding(0, 1).
			Render(fmt.Sprintf(" ERROR: %v", m.err))
		sections = append(sections, errBox)
	}

	if m.last == nil {
		waiting := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(contentWidth).
			Align(lipgloss.Center).
			Padding(2, 0).
			Render("Waiting for the first poll cycle...")
		sections = append(sections, waiting)
	} else {
		sections = append(sections, m.renderStreamPanel(contentWidth))
		sections = append(sections, m.renderSelectionPanel(contentWidth))
	}

	sections = append(sections, m.renderFooter(contentWidth))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	lines := strings.Split(content, "\n")
	visibleLines := m.height
	if visibleLines < 5 {
		visibleLines = 5
	}
	maxScroll := len(lines) - visibleLines
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}

	start := m.scroll
	end := start + visibleLines
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}

func (m Model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("SIMBRIDGE MONITOR")

	var statusParts []string

	uptime := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(fmt.Sprintf("up %s", fmtDuration(time.Since(m.startTime))))
	statusParts = append(statusParts, uptime)

	if m.last != nil {
		ts := lipgloss.NewStyle().
			Foreground(colorDim).
			Render(m.last.Time.Format("15:04:05"))
		statusParts = append(statusParts, ts)
	}

	if m.paused {
		p := lipgloss.NewStyle().
			Foreground(colorPaused).
			Bold(true).
			Render("PAUSED")
		statusParts = append(statusParts, p)
	}

	if m.dataDir != "" {
		rec := lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Render("REC") +
			lipgloss.NewStyle().
				Foreground(colorDim).
				Render(" "+m.dataDir)
		statusParts = append(statusParts, rec)
	}

	sep := lipgloss.NewStyle().Foreground(colorDim).Render(" │ ")
	right := strings.Join(statusParts, sep)

	gap := width - lipgloss.Width(logo) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + filler + right)
}

func (m Model) renderStreamPanel(totalWidth int) string {
	innerWidth := totalWidth - 4
	if innerWidth < 30 {
		innerWidth = 30
	}

	labelW := 22
	valueW := 8

	chartWidth := innerWidth - labelW - valueW - 30
	if chartWidth < 15 {
		chartWidth = 15
	}
	if chartWidth > 140 {
		chartWidth = 140
	}

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	valS := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	frameL := lipgloss.NewStyle().Foreground(colorBorder).Render("▕")
	frameR := lipgloss.NewStyle().Foreground(colorBorder).Render("▏")

	var rows []string
	var lastPts []history.Point

	for _, row := range m.rows {
		hist := m.history.Get(row.stream)

		label := lipgloss.NewStyle().
			Foreground(colorLabel).
			Width(labelW).
			Render(truncate(publish.DisplayName(row.stream), labelW))

		if hist == nil || len(hist.Points) == 0 {
			rows = append(rows, label+" "+dimS.Render("no data"))
			continue
		}

		rangeMin := math.Max(0, hist.Min-5)
		rangeMax := hist.Peak + 5
		if row.hasCrit && row.crit > rangeMax {
			rangeMax = row.crit + 5
		}

		value := lipgloss.NewStyle().
			Width(valueW).
			Align(lipgloss.Right).
			Render(chart.RenderValue(hist.Last(), row.unit, row.high, row.crit, row.hasHigh, row.hasCrit))

		pts := hist.LastNPoints(chartWidth)
		lastPts = pts
		spark := chart.RenderSparklinePoints(pts, chartWidth, rangeMin, rangeMax, row.high, row.crit, row.hasHigh, row.hasCrit)
		framedSpark := frameL + spark + frameR

		stats := dimS.Render(" avg") + valS.Render(fmt.Sprintf("%5.1f", hist.Avg())) +
			dimS.Render(" lo") + valS.Render(fmt.Sprintf("%5.1f", hist.Min)) +
			dimS.Render(" pk") + valS.Render(fmt.Sprintf("%5.1f", hist.Peak))

		rows = append(rows, label+" "+value+" "+framedSpark+stats)
	}

	if lastPts != nil {
		timeline := chart.RenderTimeline(lastPts, chartWidth)
		if strings.TrimSpace(timeline) != "" {
			pad := strings.Repeat(" ", labelW+valueW+2)
			rows = append(rows, pad+" "+timeline)
		}
	}

	panelContent := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(totalWidth).
		Render(panelContent)
}

func (m Model) renderSelectionPanel(totalWidth int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	f := m.last

	var rows []string

	fan := statusChip("FAN", f.FanOn)
	comp := statusChip("COMPRESSOR", f.CompressorOn)
	rows = append(rows, fan+"  "+comp)

	if f.Reading != nil {
		conf := dimS.Render("confidence ") +
			lipgloss.NewStyle().Foreground(colorOk).Render(fmt.Sprintf("%d", f.Reading.Confidence))
		src := dimS.Render("source ") +
			lipgloss.NewStyle().Foreground(colorLabel).Render(f.Reading.Source)
		ctx := dimS.Render("context ") +
			lipgloss.NewStyle().Foreground(colorContext).Render(truncate(f.Reading.Context, 60))
		rows = append(rows, src+"  "+conf+"  "+ctx)
	} else {
		rows = append(rows, dimS.Render("no outlet reading this cycle"))
	}

	panelContent := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(totalWidth).
		Render(panelContent)
}

func statusChip(name string, on bool) string {
	if on {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("16")).
			Background(colorOk).
			Bold(true).
			Padding(0, 1).
			Render(name + " ON")
	}
	return lipgloss.NewStyle().
		Foreground(colorDim).
		Padding(0, 1).
		Render(name + " off")
}

func (m Model) renderFooter(width int) string {
	okS := lipgloss.NewStyle().Foreground(colorOk).Render("██")
	warnS := lipgloss.NewStyle().Foreground(colorWarn).Render("██")
	highS := lipgloss.NewStyle().Foreground(colorHigh).Render("██")
	critS := lipgloss.NewStyle().Foreground(colorCrit).Render("██")
	tickS := lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Render("│")

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	legend := okS + dimS.Render(" ok ") +
		warnS + dimS.Render(" warm ") +
		highS + dimS.Render(" high ") +
		critS + dimS.Render(" crit ") +
		tickS + dimS.Render(" 1min")

	keys := dimS.Render("q") + lipgloss.NewStyle().Foreground(colorLabel).Render(":quit") +
		dimS.Render("  j/k") + lipgloss.NewStyle().Foreground(colorLabel).Render(":scroll") +
		dimS.Render("  p") + lipgloss.NewStyle().Foreground(colorLabel).Render(":pause")

	gap := width - lipgloss.Width(legend) - lipgloss.Width(keys) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(legend + filler + keys)
}

func truncate(s string, w int) string {
	if len(s) <= w {
		return s
	}
	if w <= 3 {
		return s[:w]
	}
	return s[:w-1] + "…"
}

func fmtDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
