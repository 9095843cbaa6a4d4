package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/citycoords/internal/config"
	"github.com/jask/citycoords/widgets"
)

// App is the root view. It mounts the geocoding widget and shows notices
// on top of it; while a notice is up every key except quit goes to the
// notice.
type App struct {
	ctx     context.Context
	cfg     config.Config
	logger  *zap.Logger
	keys    keyMap
	widget  *Widget
	notices []string
	width   int
	height  int
}

func New(ctx context.Context, cfg config.Config, services Services, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		keys:   newKeyMap(),
	}
	a.widget = NewWidget(ctx, services, a, logger, cfg.UI.Placeholder)
	return a
}

// Notify queues message; notices are shown one at a time in arrival order.
func (a *App) Notify(message string) {
	a.logger.Debug("notice", zap.String("message", message))
	a.notices = append(a.notices, message)
}

// Notice returns the notice currently shown, if any.
func (a *App) Notice() (string, bool) {
	if len(a.notices) == 0 {
		return "", false
	}
	return a.notices[0], true
}

func (a *App) Widget() *Widget { return a.widget }

func (a *App) Init() tea.Cmd {
	return a.widget.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.widget.SetWidth(m.Width)
		return a, nil
	case tea.KeyMsg:
		if key.Matches(m, a.keys.Quit) {
			return a, tea.Quit
		}
		if len(a.notices) > 0 {
			if key.Matches(m, a.keys.Dismiss) {
				a.notices = a.notices[1:]
			}
			return a, nil
		}
	}
	return a, a.widget.Update(msg)
}

func (a *App) View() string {
	base := a.widget.View()
	notice, ok := a.Notice()
	if !ok {
		return base
	}
	card := widgets.NoticeCard("Notice", notice, "[enter] OK", colorError)
	return widgets.Overlay(base, card, a.width, a.height)
}
