package window

import (
	"slices"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/shared/id"
)

// DefaultBaseZOrder is the zOrder given to the first spawned window.
const DefaultBaseZOrder int64 = 1

// Manager orchestrates window lifecycle and stacking
type Manager struct {
	mu      sync.RWMutex
	windows []*Record // Protected by mu, insertion order
	nextZ   int64     // Protected by mu
	ids     *id.Generator
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// Stats summarizes the session.
type Stats struct {
	Open       int   `json:"open"`
	Visible    int   `json:"visible"`
	Minimized  int   `json:"minimized"`
	Maximized  int   `json:"maximized"`
	NextZOrder int64 `json:"next_z_order"`
}

// NewManager creates an empty session
func NewManager() *Manager {
	return &Manager{
		nextZ:  DefaultBaseZOrder,
		ids:    id.Default(),
		logger: logging.NewNop(),
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// WithLogger sets the logger
func (m *Manager) WithLogger(logger *logging.Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// WithBaseZOrder sets the zOrder of the next spawned window. Call before
// the first Spawn.
func (m *Manager) WithBaseZOrder(z int64) *Manager {
	m.nextZ = z
	return m
}

// WithIDGenerator replaces the window id source.
func (m *Manager) WithIDGenerator(g *id.Generator) *Manager {
	if g != nil {
		m.ids = g
	}
	return m
}

// Spawn opens a new window on top of the stack. It never fails; singleton
// policy belongs to the caller (see Launcher).
func (m *Manager) Spawn(appID, title string, geometry Geometry) Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := &Record{
		ID:       m.ids.NewWindowID(),
		AppID:    appID,
		Title:    title,
		Geometry: geometry,
		ZOrder:   m.allocZ(),
	}
	m.windows = append(m.windows, rec)
	m.observe("spawn", true)

	m.logger.Debug("Spawned window",
		zap.String("id", rec.ID.String()),
		zap.String("app", appID),
		zap.Int64("z", rec.ZOrder))
	return *rec
}

// Close discards the window. Reports false if id is not open.
func (m *Manager) Close(windowID id.WindowID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(windowID)
	if i < 0 {
		m.observe("close", false)
		return false
	}

	m.windows = slices.Delete(m.windows, i, i+1)
	m.observe("close", true)
	m.logger.Debug("Closed window", zap.String("id", windowID.String()))
	return true
}

// Minimize hides the window, keeping its geometry and zOrder.
func (m *Manager) Minimize(windowID id.WindowID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.update("minimize", windowID, func(r *Record) {
		r.Minimized = true
	})
}

// ToggleMaximize flips the maximized flag. Stored geometry is untouched.
func (m *Manager) ToggleMaximize(windowID id.WindowID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.update("maximize", windowID, func(r *Record) {
		r.Maximized = !r.Maximized
	})
}

// Focus restores the window and raises it above every other window.
func (m *Manager) Focus(windowID id.WindowID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.update("focus", windowID, func(r *Record) {
		r.Minimized = false
		r.ZOrder = m.allocZ()
	})
}

// UpdateGeometry merges patch into the stored geometry. Stacking and
// visibility are unaffected.
func (m *Manager) UpdateGeometry(windowID id.WindowID, patch GeometryPatch) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.update("geometry", windowID, func(r *Record) {
		r.Geometry = patch.Apply(r.Geometry)
	})
}

// VisibleWindows returns non-minimized windows in paint order, topmost last.
func (m *Manager) VisibleWindows() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	visible := make([]Record, 0, len(m.windows))
	for _, r := range m.windows {
		if r.Visible() {
			visible = append(visible, *r)
		}
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].ZOrder < visible[j].ZOrder })
	return visible
}

// AllWindows returns every open window in the order they were spawned.
func (m *Manager) AllWindows() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]Record, len(m.windows))
	for i, r := range m.windows {
		all[i] = *r
	}
	return all
}

// Get retrieves a window by ID
func (m *Manager) Get(windowID id.WindowID) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.index(windowID)
	if i < 0 {
		return Record{}, false
	}
	return *m.windows[i], true
}

// Focused returns the topmost visible window.
func (m *Manager) Focused() (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var top *Record
	for _, r := range m.windows {
		if r.Visible() && (top == nil || r.ZOrder > top.ZOrder) {
			top = r
		}
	}
	if top == nil {
		return Record{}, false
	}
	return *top, true
}

// ByApp returns the windows of one application, topmost first.
func (m *Manager) ByApp(appID string) []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Record
	for _, r := range m.windows {
		if r.AppID == appID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ZOrder > out[j].ZOrder })
	return out
}

// Stats returns session counts
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.stats()
}

func (m *Manager) stats() Stats {
	s := Stats{Open: len(m.windows), NextZOrder: m.nextZ}
	for _, r := range m.windows {
		if r.Minimized {
			s.Minimized++
		} else {
			s.Visible++
		}
		if r.Maximized {
			s.Maximized++
		}
	}
	return s
}

// allocZ hands out the next stacking key. Callers hold mu.
func (m *Manager) allocZ() int64 {
	z := m.nextZ
	m.nextZ++
	return z
}

func (m *Manager) index(windowID id.WindowID) int {
	for i, r := range m.windows {
		if r.ID == windowID {
			return i
		}
	}
	return -1
}

// update applies fn to the matching record. Absent ids are a silent no-op:
// the caller may be racing a window that was just closed.
func (m *Manager) update(op string, windowID id.WindowID, fn func(*Record)) bool {
	i := m.index(windowID)
	if i < 0 {
		m.observe(op, false)
		return false
	}

	next := *m.windows[i]
	fn(&next)
	m.windows[i] = &next

	m.observe(op, true)
	return true
}

func (m *Manager) observe(op string, matched bool) {
	m.metrics.RecordWindowOperation(op, matched)
	if m.metrics != nil {
		s := m.stats()
		m.metrics.SetWindows(s.Open, s.Visible)
	}
}
