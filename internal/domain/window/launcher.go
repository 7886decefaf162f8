package window

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/infrastructure/logging"
)

// ErrUnknownApp is returned when opening an application the catalog lacks.
var ErrUnknownApp = errors.New("unknown app")

// Cascade parameters for freshly opened windows.
const (
	cascadeOrigin = 100
	cascadeStep   = 30
	cascadeSlots  = 8
)

// App describes a launchable application.
type App struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon,omitempty"`
}

// Catalog is an ordered set of applications.
type Catalog struct {
	apps  map[string]App
	order []string
}

// NewCatalog builds a catalog. Later duplicates replace earlier entries.
func NewCatalog(apps ...App) *Catalog {
	c := &Catalog{apps: make(map[string]App, len(apps))}
	for _, app := range apps {
		if _, exists := c.apps[app.ID]; !exists {
			c.order = append(c.order, app.ID)
		}
		c.apps[app.ID] = app
	}
	return c
}

// DefaultCatalog returns the built-in desktop applications.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		App{ID: "terminal", Title: "Command Terminal", Icon: "⚡"},
		App{ID: "navigator", Title: "File Navigator", Icon: "📁"},
		App{ID: "settings", Title: "System Control", Icon: "⚙️"},
		App{ID: "editor", Title: "Text Editor", Icon: "📝"},
		App{ID: "calculator", Title: "Calculator", Icon: "🧮"},
	)
}

// Get looks up an application.
func (c *Catalog) Get(appID string) (App, bool) {
	app, ok := c.apps[appID]
	return app, ok
}

// List returns the applications in catalog order.
func (c *Catalog) List() []App {
	out := make([]App, 0, len(c.order))
	for _, appID := range c.order {
		out = append(out, c.apps[appID])
	}
	return out
}

// LauncherConfig sizes new windows.
type LauncherConfig struct {
	Width        int
	Height       int
	ScreenWidth  int
	ScreenHeight int
}

// DefaultLauncherConfig returns 800x600 windows on a 1920x1080 screen.
func DefaultLauncherConfig() LauncherConfig {
	return LauncherConfig{
		Width:        800,
		Height:       600,
		ScreenWidth:  1920,
		ScreenHeight: 1080,
	}
}

// Launcher applies the one-window-per-app policy on top of a Manager.
type Launcher struct {
	mu       sync.Mutex
	windows  *Manager
	catalog  *Catalog
	cfg      LauncherConfig
	launched int // Protected by mu
	logger   *logging.Logger
}

// NewLauncher creates a launcher over windows.
func NewLauncher(windows *Manager, catalog *Catalog, cfg LauncherConfig) *Launcher {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Launcher{
		windows: windows,
		catalog: catalog,
		cfg:     cfg,
		logger:  windows.logger,
	}
}

// Catalog returns the launchable applications.
func (l *Launcher) Catalog() *Catalog {
	return l.catalog
}

// Open raises the app's existing window, restoring it if minimized, or
// spawns a new one at the next cascade position.
func (l *Launcher) Open(appID string) (Record, error) {
	app, ok := l.catalog.Get(appID)
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownApp, appID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if existing := l.windows.ByApp(appID); len(existing) > 0 {
		if l.windows.Focus(existing[0].ID) {
			if rec, ok := l.windows.Get(existing[0].ID); ok {
				l.logger.Debug("Raised existing window",
					zap.String("app", appID),
					zap.String("id", rec.ID.String()))
				return rec, nil
			}
		}
	}

	rec := l.windows.Spawn(app.ID, app.Title, l.nextGeometry())
	l.launched++
	return rec, nil
}

// nextGeometry cascades windows diagonally and keeps them on screen.
func (l *Launcher) nextGeometry() Geometry {
	offset := cascadeOrigin + (l.launched%cascadeSlots)*cascadeStep
	g := Geometry{X: offset, Y: offset, Width: l.cfg.Width, Height: l.cfg.Height}

	if l.cfg.ScreenWidth > 0 && g.X+g.Width > l.cfg.ScreenWidth {
		g.X = max(0, l.cfg.ScreenWidth-g.Width)
	}
	if l.cfg.ScreenHeight > 0 && g.Y+g.Height > l.cfg.ScreenHeight {
		g.Y = max(0, l.cfg.ScreenHeight-g.Height)
	}
	return g
}
