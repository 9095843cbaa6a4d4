package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jask/citycoords/internal/geocoding"
)

// User-facing notices.
const (
	NoticeEmptyQuery       = "a city name is required"
	NoticeLookupFailed     = "an error occurred while looking up coordinates"
	NoticeNoCoordinates    = "search for a city first"
	NoticeAirQualityFailed = "an error occurred while looking up air quality"
)

const absent = "-"

// Geocoder resolves a place name. The first location is the best match.
type Geocoder interface {
	Geocode(ctx context.Context, query string) ([]geocoding.Location, error)
}

// AirQualitySource reads current air pollution at a coordinate.
type AirQualitySource interface {
	AirPollution(ctx context.Context, lat, lon float64) (*geocoding.AirQuality, error)
}

// Notifier shows a blocking, alert-style message to the user.
type Notifier interface {
	Notify(message string)
}

type Services struct {
	Geocoder   Geocoder
	AirQuality AirQualitySource // optional; nil disables ctrl+o
}

// Widget captures one search term, performs one lookup and renders one
// outcome. All fields are only touched from Update, so lookups that
// overlap simply race and the last reply to arrive wins.
type Widget struct {
	ctx      context.Context
	services Services
	notifier Notifier
	logger   *zap.Logger
	keys     keyMap

	input   textinput.Model
	spinner spinner.Model
	help    help.Model

	query   string
	result  *geocoding.Location
	air     *geocoding.AirQuality
	pending int
}

func NewWidget(ctx context.Context, services Services, notifier Notifier, logger *zap.Logger, placeholder string) *Widget {
	if logger == nil {
		logger = zap.NewNop()
	}
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = promptStyle.Render("> ")
	in.CharLimit = 0
	in.Width = 40
	in.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(pendingStyle))

	return &Widget{
		ctx:      ctx,
		services: services,
		notifier: notifier,
		logger:   logger,
		keys:     newKeyMap(),
		input:    in,
		spinner:  sp,
		help:     help.New(),
	}
}

func (w *Widget) Init() tea.Cmd {
	return textinput.Blink
}

// SetQuery stores text verbatim and mirrors it into the input.
func (w *Widget) SetQuery(text string) {
	w.query = text
	w.input.SetValue(text)
}

func (w *Widget) Query() string { return w.query }

// Result is nil until a lookup succeeds, and again after one fails.
func (w *Widget) Result() *geocoding.Location { return w.result }

func (w *Widget) AirQuality() *geocoding.AirQuality { return w.air }

func (w *Widget) Pending() bool { return w.pending > 0 }

func (w *Widget) SetWidth(width int) {
	w.help.Width = width
	if width > 4 {
		w.input.Width = width - 4
	}
}

// Search starts a lookup for the current query. An empty query raises the
// empty-input notice and returns nil without touching the network or the
// current result.
func (w *Widget) Search() tea.Cmd {
	if w.query == "" {
		w.notifier.Notify(NoticeEmptyQuery)
		return nil
	}
	w.pending++
	ctx, geocoder, query := w.ctx, w.services.Geocoder, w.query
	return func() tea.Msg {
		locs, err := geocoder.Geocode(ctx, query)
		return geocodeDoneMsg{query: query, locations: locs, err: err}
	}
}

// LookupAirQuality fetches air pollution for the current result's coordinates.
func (w *Widget) LookupAirQuality() tea.Cmd {
	if w.services.AirQuality == nil {
		return nil
	}
	if !w.result.HasCoordinates() {
		w.notifier.Notify(NoticeNoCoordinates)
		return nil
	}
	w.pending++
	ctx, src := w.ctx, w.services.AirQuality
	lat, lon := *w.result.Lat, *w.result.Lon
	return func() tea.Msg {
		reading, err := src.AirPollution(ctx, lat, lon)
		return airQualityDoneMsg{lat: lat, lon: lon, reading: reading, err: err}
	}
}

func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(m, w.keys.Search):
			return w.startSpinner(w.Search())
		case key.Matches(m, w.keys.AirQuality):
			return w.startSpinner(w.LookupAirQuality())
		}
		// textinput turns tabs and newlines into spaces, so a query set via
		// SetQuery is only replaced once a key actually edits the input
		before := w.input.Value()
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(m)
		if after := w.input.Value(); after != before {
			w.query = after
		}
		return cmd
	case geocodeDoneMsg:
		w.settle()
		w.air = nil
		if m.err != nil {
			w.logger.Warn("geocode failed", zap.String("query", m.query), zap.Error(m.err))
			w.result = nil
			w.notifier.Notify(NoticeLookupFailed)
			return nil
		}
		if len(m.locations) == 0 {
			// no match: keep a result with every field absent
			w.logger.Info("geocode returned no candidates", zap.String("query", m.query))
			w.result = &geocoding.Location{}
			return nil
		}
		loc := m.locations[0]
		w.result = &loc
		return nil
	case airQualityDoneMsg:
		w.settle()
		if m.err != nil {
			w.logger.Warn("air quality lookup failed", zap.Float64("lat", m.lat), zap.Float64("lon", m.lon), zap.Error(m.err))
			w.air = nil
			w.notifier.Notify(NoticeAirQualityFailed)
			return nil
		}
		// a newer search may have moved the result elsewhere
		if !w.result.HasCoordinates() || *w.result.Lat != m.lat || *w.result.Lon != m.lon {
			return nil
		}
		w.air = m.reading
		return nil
	case spinner.TickMsg:
		if w.pending == 0 {
			return nil
		}
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(m)
		return cmd
	}
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return cmd
}

// startSpinner ticks the spinner only when cmd is the first pending lookup.
func (w *Widget) startSpinner(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	if w.pending == 1 {
		return tea.Batch(cmd, w.spinner.Tick)
	}
	return cmd
}

func (w *Widget) settle() {
	if w.pending > 0 {
		w.pending--
	}
}

func (w *Widget) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Coordinate search"))
	b.WriteString("\n\n")
	b.WriteString(w.input.View())
	b.WriteString("\n")
	b.WriteString(w.help.View(w.keys))
	if w.pending > 0 {
		b.WriteString("\n")
		b.WriteString(w.spinner.View() + pendingStyle.Render(" looking up..."))
	}
	if w.result != nil {
		b.WriteString("\n\n")
		b.WriteString(resultStyle.Render(w.renderResult()))
	}
	return b.String()
}

func (w *Widget) renderResult() string {
	r := w.result
	lines := []string{
		titleStyle.Render("Result:"),
		field("City", orAbsent(r.Name)),
	}
	if r.State != "" {
		lines = append(lines, field("State", r.State))
	}
	lines = append(lines,
		field("Country", orAbsent(r.Country)),
		field("Lat", formatCoord(r.Lat)),
		field("Lon", formatCoord(r.Lon)),
	)
	if w.air != nil {
		lines = append(lines, "", w.renderAirQuality())
	}
	return strings.Join(lines, "\n")
}

func (w *Widget) renderAirQuality() string {
	a := w.air
	grade := lipgloss.NewStyle().Foreground(aqiColor(a.AQI)).Render(fmt.Sprintf("%d (%s)", a.AQI, geocoding.AQILabel(a.AQI)))
	c := a.Components
	return field("Air quality", grade) + "\n" +
		mutedStyle.Render(fmt.Sprintf("PM2.5 %s  PM10 %s  O3 %s  NO2 %s  SO2 %s  CO %s",
			num(c.PM25), num(c.PM10), num(c.O3), num(c.NO2), num(c.SO2), num(c.CO)))
}

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func orAbsent(s string) string {
	if s == "" {
		return absent
	}
	return s
}

func formatCoord(v *float64) string {
	if v == nil {
		return absent
	}
	return num(*v)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
