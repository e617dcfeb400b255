// Package viewer implements the historical telemetry browser TUI with
// time scrubbing, day navigation, and sparkline windows over the CSV
// logs the bridge records.
package viewer

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luki/simbridge/internal/chart"
	"github.com/luki/simbridge/internal/history"
	"github.com/luki/simbridge/internal/publish"
	"github.com/luki/simbridge/internal/store"
)

// Run launches the historical data viewer over dir; empty dir means
// the default data directory.
func Run(dir string) {
	days, err := store.ListDays(dir)
	if err != nil || len(days) == 0 {
		fmt.Fprintln(os.Stderr, "No telemetry logs found")
		os.Exit(1)
	}

	p := tea.NewProgram(
		initModel(dir, days),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorCrit     = lipgloss.Color("196")
	colorSource   = lipgloss.Color("147")
)

// Display order for stream rows; streams absent from the day's log are
// simply skipped.
var streamOrder = []string{
	publish.StreamAirIn,
	publish.StreamTemperature,
	publish.StreamHumidity,
	publish.StreamAirOut,
}

func streamUnit(stream string) string {
	if stream == publish.StreamHumidity {
		return "%"
	}
	return "°C"
}

// ── Model ────────────────────────────────────────────────────────────

type model struct {
	dir     string
	days    []string // available dates
	dayIdx  int      // currently selected day
	rows    []store.Row
	streams []string // streams present, in display order
	cursor  int      // time cursor position
	scroll  int      // vertical scroll offset
	width   int
	height  int
	err     error

	timeSlots []time.Time            // unique timestamps (sorted)
	series    map[string][]dataPoint // stream -> sorted data points
	outlet    map[int64]store.Row    // Air_Out rows by timestamp
}

type dataPoint struct {
	time  time.Time
	value float64
}

func initModel(dir string, days []string) model {
	m := model{
		dir:    dir,
		days:   days,
		dayIdx: 0,
	}
	m.loadDay()
	return m
}

func (m *model) loadDay() {
	day := m.days[m.dayIdx]
	rows, err := store.LoadDay(m.dir, day)
	if err != nil {
		m.err = err
		return
	}
	m.rows = rows
	m.err = nil

	timeSet := make(map[int64]time.Time)
	seriesMap := make(map[string][]dataPoint)
	outletMap := make(map[int64]store.Row)

	for _, r := range rows {
		timeSet[r.Time.Unix()] = r.Time
		seriesMap[r.Stream] = append(seriesMap[r.Stream], dataPoint{time: r.Time, value: r.Value})
		if r.Stream == publish.StreamAirOut {
			outletMap[r.Time.Unix()] = r
		}
	}

	var streams []string
	for _, s := range streamOrder {
		if _, ok := seriesMap[s]; ok {
			streams = append(streams, s)
		}
	}
	m.streams = streams

	var times []time.Time
	for _, t := range timeSet {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	m.timeSlots = times

	// Rows arrive in file order, which is already chronological per
	// stream; no per-series sort needed.
	m.series = seriesMap
	m.outlet = outletMap

	if len(m.timeSlots) > 0 {
		m.cursor = len(m.timeSlots) - 1
	}
	m.scroll = 0
}

// ── Init / Update ────────────────────────────────────────────────────

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l":
			if m.cursor < len(m.timeSlots)-1 {
				m.cursor++
			}
		case "shift+left", "H":
			m.cursor -= 20
			if m.cursor < 0 {
				m.cursor = 0
			}
		case "shift+right", "L":
			m.cursor += 20
			if m.cursor >= len(m.timeSlots) {
				m.cursor = len(m.timeSlots) - 1
			}
		case "home":
			m.cursor = 0
		case "end":
			if len(m.timeSlots) > 0 {
				m.cursor = len(m.timeSlots) - 1
			}

		case "[":
			if m.dayIdx < len(m.days)-1 {
				m.dayIdx++
				m.loadDay()
			}
		case "]":
			if m.dayIdx > 0 {
				m.dayIdx--
				m.loadDay()
			}

		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// ── View ─────────────────────────────────────────────────────────────

func (m model) View() string {
	if m.width == 0 {
		return "  Loading..."
	}

	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string

	sections = append(sections, m.renderTitle(contentWidth))

	if m.err != nil {
		errBox := lipgloss.NewStyle().
			Foreground(colorCrit).
			Bold(true).
			Padding(0, 1).
			Render(fmt.Sprintf("ERROR: %v", m.err))
		sections = append(sections, errBox)
	}

	if len(m.timeSlots) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(2, 0).
			Align(lipgloss.Center).
			Width(contentWidth).
			Render("No data for this day.")
		sections = append(sections, empty)
	} else {
		sections = append(sections, m.renderCursorInfo(contentWidth))
		sections = append(sections, m.renderStreamPanel(contentWidth))
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

func (m model) renderTitle(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("SIMBRIDGE HISTORY")

	day := m.days[m.dayIdx]
	dayText := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Bold(true).
		Render(day)

	nav := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(fmt.Sprintf("  [ %d/%d ]", m.dayIdx+1, len(m.days)))

	dataInfo := ""
	if len(m.timeSlots) > 0 {
		first := m.timeSlots[0].Format("15:04:05")
		last := m.timeSlots[len(m.timeSlots)-1].Format("15:04:05")
		dataInfo = lipgloss.NewStyle().
			Foreground(colorDim).
			Render(fmt.Sprintf("  %s - %s  (%d rows, %d streams)",
				first, last, len(m.rows), len(m.streams)))
	}

	right := dayText + nav + dataInfo

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

func (m model) renderCursorInfo(width int) string {
	if m.cursor < 0 || m.cursor >= len(m.timeSlots) {
		return ""
	}

	t := m.timeSlots[m.cursor]
	ts := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Bold(true).
		Render(t.Format("15:04:05"))

	pos := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(fmt.Sprintf("  %d/%d", m.cursor+1, len(m.timeSlots)))

	var meta string
	if row, ok := m.outlet[t.Unix()]; ok {
		dimS := lipgloss.NewStyle().Foreground(colorDim)
		meta = dimS.Render("  src ") +
			lipgloss.NewStyle().Foreground(colorSource).Render(row.Source) +
			dimS.Render(" conf ") +
			lipgloss.NewStyle().Foreground(colorSource).Render(fmt.Sprintf("%d", row.Confidence))
	}

	barWidth := width - 40
	if barWidth < 10 {
		barWidth = 10
	}
	scrubber := m.renderScrubber(barWidth)

	return lipgloss.NewStyle().
		Padding(0, 1).
		Render("  " + ts + pos + meta + "  " + scrubber)
}

func (m model) renderScrubber(width int) string {
	if len(m.timeSlots) == 0 || width <= 0 {
		return ""
	}

	pos := 0
	if len(m.timeSlots) > 1 {
		pos = m.cursor * (width - 1) / (len(m.timeSlots) - 1)
	}
	if pos >= width {
		pos = width - 1
	}

	var sb strings.Builder
	dimS := lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
	curS := lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	tickS := lipgloss.NewStyle().Foreground(lipgloss.Color("239"))

	for i := 0; i < width; i++ {
		if i == pos {
			sb.WriteString(curS.Render("◆"))
		} else {
			slotIdx := 0
			if len(m.timeSlots) > 1 {
				slotIdx = i * (len(m.timeSlots) - 1) / (width - 1)
			}
			if slotIdx > 0 && slotIdx < len(m.timeSlots) {
				t := m.timeSlots[slotIdx]
				tPrev := m.timeSlots[slotIdx-1]
				if t.Hour() != tPrev.Hour() {
					sb.WriteString(tickS.Render("│"))
					continue
				}
			}
			sb.WriteString(dimS.Render("─"))
		}
	}

	return sb.String()
}

func (m model) renderStreamPanel(totalWidth int) string {
	if m.cursor < 0 || m.cursor >= len(m.timeSlots) {
		return ""
	}

	cursorTime := m.timeSlots[m.cursor]

	innerWidth := totalWidth - 4
	if innerWidth < 30 {
		innerWidth = 30
	}

	chartWidth := innerWidth - 60
	if chartWidth < 15 {
		chartWidth = 15
	}
	if chartWidth > 140 {
		chartWidth = 140
	}

	labelW := 22
	valueW := 8

	var rows []string

	colLabel := lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Width(labelW).Render("stream")
	colVal := lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Width(valueW).Align(lipgloss.Right).Render("value")
	colHistPad := strings.Repeat(" ", chartWidth/2-3)
	colHist := lipgloss.NewStyle().Foreground(lipgloss.Color("237")).Render(colHistPad + "history")
	rows = append(rows, colLabel+" "+colVal+"  "+colHist)

	sep := lipgloss.NewStyle().
		Foreground(lipgloss.Color("237")).
		Render(strings.Repeat("─", innerWidth))
	rows = append(rows, sep)

	frameL := lipgloss.NewStyle().Foreground(colorBorder).Render("▕")
	frameR := lipgloss.NewStyle().Foreground(colorBorder).Render("▏")
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	valS := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	for _, stream := range m.streams {
		pts := m.series[stream]
		if len(pts) == 0 {
			continue
		}

		curVal := findValueAtTime(pts, cursorTime)

		minV, maxV := math.MaxFloat64, -math.MaxFloat64
		for _, p := range pts {
			if p.value < minV {
				minV = p.value
			}
			if p.value > maxV {
				maxV = p.value
			}
		}
		rangeMin := math.Max(0, minV-5)
		rangeMax := maxV + 5

		sparkPts := buildSparkWindow(pts, m.cursor, chartWidth, m.timeSlots)

		label := lipgloss.NewStyle().
			Foreground(colorLabel).
			Bold(true).
			Width(labelW).
			Render(truncate(publish.DisplayName(stream), labelW))

		value := lipgloss.NewStyle().
			Width(valueW).
			Align(lipgloss.Right).
			Render(chart.RenderValue(curVal, streamUnit(stream), 0, 0, false, false))

		spark := chart.RenderSparklinePoints(sparkPts, chartWidth, rangeMin, rangeMax, 0, 0, false, false)
		framedSpark := frameL + spark + frameR

		avg := 0.0
		for _, p := range pts {
			avg += p.value
		}
		avg /= float64(len(pts))

		stats := dimS.Render("avg") + valS.Render(fmt.Sprintf("%5.1f", avg)) +
			dimS.Render(" lo") + valS.Render(fmt.Sprintf("%5.1f", minV)) +
			dimS.Render(" pk") + valS.Render(fmt.Sprintf("%5.1f", maxV))

		rows = append(rows, label+" "+value+" "+framedSpark+" "+stats)

		timeline := chart.RenderTimeline(sparkPts, chartWidth)
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

func (m model) renderFooter(width int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	keyS := lipgloss.NewStyle().Foreground(colorLabel)

	keys := dimS.Render("q") + keyS.Render(":quit") +
		dimS.Render("  h/l") + keyS.Render(":scrub") +
		dimS.Render("  H/L") + keyS.Render(":skip 20") +
		dimS.Render("  home/end") + keyS.Render(":jump") +
		dimS.Render("  [/]") + keyS.Render(":day") +
		dimS.Render("  j/k") + keyS.Render(":scroll")

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(keys)
}

// ── Helpers ──────────────────────────────────────────────────────────

func findValueAtTime(pts []dataPoint, t time.Time) float64 {
	best := pts[0].value
	bestDiff := absDuration(pts[0].time.Sub(t))
	for _, p := range pts {
		diff := absDuration(p.time.Sub(t))
		if diff < bestDiff {
			bestDiff = diff
			best = p.value
		}
		if p.time.After(t) && diff > bestDiff {
			break
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func buildSparkWindow(pts []dataPoint, cursorIdx int, width int, timeSlots []time.Time) []history.Point {
	if len(pts) == 0 || len(timeSlots) == 0 {
		return nil
	}

	cursorTime := timeSlots[cursorIdx]

	valueMap := make(map[int64]float64)
	for _, p := range pts {
		valueMap[p.time.Unix()] = p.value
	}

	var result []history.Point
	for i := width - 1; i >= 0; i-- {
		slotIdx := cursorIdx - i
		if slotIdx < 0 || slotIdx >= len(timeSlots) {
			continue
		}
		t := timeSlots[slotIdx]
		if v, ok := valueMap[t.Unix()]; ok {
			result = append(result, history.Point{Value: v, Time: t})
		}
	}

	if v, ok := valueMap[cursorTime.Unix()]; ok {
		if len(result) == 0 || result[len(result)-1].Time != cursorTime {
			result = append(result, history.Point{Value: v, Time: cursorTime})
		}
	}

	return result
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
