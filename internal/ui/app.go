package ui

import (
	"fmt"
	"time"

	"geopicker/internal/config"
	"geopicker/internal/debug"
	"geopicker/internal/engine"
	"geopicker/internal/geo"
	"geopicker/internal/render"

	"github.com/gdamore/tcell/v2"
)

const (
	frameInterval = 50 * time.Millisecond // 20 FPS, smooth enough for fly-tos

	listWidth    = 28
	listHeight   = 12
	detailWidth  = 52
	detailHeight = 8
)

// App is the main application controller
type App struct {
	screen     tcell.Screen
	mapView    *MapView
	listView   *ListView
	detailView *DetailView
	showList   bool
	quit       chan struct{}
}

// NewApp creates the terminal screen and the views over it
func NewApp(cfg *config.Config, features geo.Basemap, places []geo.Place) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	return newApp(screen, cfg, features, places), nil
}

// newApp wires views over an initialized screen
func newApp(screen tcell.Screen, cfg *config.Config, features geo.Basemap, places []geo.Place) *App {
	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	screen.EnableFocus()
	screen.Clear()

	width, height := screen.Size()

	a := &App{
		screen:     screen,
		mapView:    NewMapView(cfg, features, width, height-1),
		listView:   NewListView(places, 0, height-1-listHeight, listWidth, listHeight),
		detailView: NewDetailView(0, 0, detailWidth, detailHeight),
		quit:       make(chan struct{}),
	}

	a.mapView.OnLocationSelect(a.detailView.SetLocation)
	a.mapView.Subscribe(func(ch engine.Change) {
		if ch.Kind == engine.ChangeCleared {
			a.detailView.Clear()
		}
	})

	return a
}

// Select makes loc the live selection, as a search result would
func (a *App) Select(loc geo.SelectedLocation) bool {
	return a.mapView.Controller().SelectProgrammatic(loc)
}

// Run starts the application main loop
func (a *App) Run() error {
	defer a.cleanup()

	events := make(chan tcell.Event, 16)
	go a.screen.ChannelEvents(events, a.quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	a.render(time.Now())

	for {
		select {
		case <-a.quit:
			return nil

		case now := <-ticker.C:
			a.mapView.Controller().Tick(now)
			a.render(now)

		case ev := <-events:
			if ev == nil {
				return nil
			}
			if !a.handleEvent(ev) {
				return nil // Quit requested
			}
		}
	}
}

// render renders the current view to the screen
func (a *App) render(now time.Time) {
	a.screen.Clear()

	a.mapView.Draw(a.screen, now)

	if a.showList {
		a.listView.Draw(a.screen)
	}
	a.detailView.Draw(a.screen)
	a.drawStatus()

	a.screen.Show()
}

func (a *App) drawStatus() {
	width, height := a.screen.Size()
	status := " " + a.mapView.Status() + "  | click select, drag pan, g globe, tab places, q quit"

	row := []rune(status)
	for len(row) < width {
		row = append(row, ' ')
	}
	drawClipped(a.screen, 0, height-1, width, string(row), render.StyleStatus)
}

// handleEvent processes keyboard, mouse and focus events. It returns false
// when the app should quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)

	case *tcell.EventMouse:
		a.mapView.HandleMouse(ev)

	case *tcell.EventFocus:
		if !ev.Focused {
			a.mapView.PointerLeave()
		}

	case *tcell.EventResize:
		a.handleResize()
	}

	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		if _, ok := a.mapView.Controller().Selected(); ok {
			a.mapView.Controller().ClearSelection()
			return true
		}
		if a.showList {
			a.showList = false
			return true
		}
		a.stop()
		return false

	case tcell.KeyTab:
		a.showList = !a.showList

	case tcell.KeyEnter:
		if !a.showList {
			return true
		}
		if place, ok := a.listView.GetSelected(); ok {
			if !a.Select(place.Location()) {
				debug.Log("place %q not selectable", place.Name)
			}
		}

	case tcell.KeyUp:
		if a.showList {
			a.listView.SelectPrev()
		} else {
			a.mapView.Pan(0, 1)
		}

	case tcell.KeyDown:
		if a.showList {
			a.listView.SelectNext()
		} else {
			a.mapView.Pan(0, -1)
		}

	case tcell.KeyLeft:
		a.mapView.Pan(1, 0)

	case tcell.KeyRight:
		a.mapView.Pan(-1, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			a.stop()
			return false

		case '+', '=':
			a.mapView.ZoomIn()

		case '-', '_':
			a.mapView.ZoomOut()

		case '[':
			a.mapView.Rotate(-1)

		case ']':
			a.mapView.Rotate(1)

		case 'g', 'G':
			a.mapView.ToggleRenderer()
		}
	}

	return true
}

// handleResize handles terminal resize events
func (a *App) handleResize() {
	a.screen.Sync()
	width, height := a.screen.Size()

	a.mapView.UpdateDimensions(width, height-1)
	a.listView.UpdateDimensions(0, height-1-listHeight, listWidth, listHeight)
	a.detailView.UpdateDimensions(0, 0, detailWidth, detailHeight)
}

func (a *App) stop() {
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}
}

// cleanup performs cleanup before exit
func (a *App) cleanup() {
	a.stop()
	a.mapView.Controller().Close()

	if a.screen != nil {
		a.screen.Fini()
	}
}
