package plane

import (
	"fmt"
	"log"
)

// RedrawFunc is run by a Manager whenever its plane, steps or size change
// and rendering on change is enabled.
type RedrawFunc func() error

// Manager owns the visible plane of one canvas together with the grid steps
// derived from it. It is not safe for concurrent use.
type Manager struct {
	id             string
	width, height  int
	plane          Plane
	px             PxStep
	xStep, yStep   Step
	renderOnChange bool
	hooks          []RedrawFunc
	notifier       Notifier
}

// NewManager returns a manager for a width x height canvas showing the
// pixel identity plane.
func NewManager(id string, width, height int) (*Manager, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas size %dx%d", ErrInvalidArgument, width, height)
	}
	m := &Manager{
		id:             id,
		width:          width,
		height:         height,
		px:             DefaultPxStep,
		renderOnChange: true,
	}
	p := PixelPlane(width, height)
	xs, ys, err := m.steps(p, width, height, m.px)
	if err != nil {
		return nil, err
	}
	m.plane, m.xStep, m.yStep = p, xs, ys
	return m, nil
}

func (m *Manager) ID() string             { return m.id }
func (m *Manager) Plane() Plane           { return m.plane }
func (m *Manager) Size() (int, int)       { return m.width, m.height }
func (m *Manager) Steps() (Step, Step)    { return m.xStep, m.yStep }
func (m *Manager) PxStep() PxStep         { return m.px }
func (m *Manager) RenderOnChange() bool   { return m.renderOnChange }
func (m *Manager) SetNotifier(n Notifier) { m.notifier = n }

// SetRenderOnChange toggles whether changes run the redraw hooks.
func (m *Manager) SetRenderOnChange(on bool) {
	m.renderOnChange = on
}

// OnRedraw registers a hook. Hooks run in registration order.
func (m *Manager) OnRedraw(hook RedrawFunc) {
	m.hooks = append(m.hooks, hook)
}

// Redraw runs every hook and stops at the first failing one.
func (m *Manager) Redraw() error {
	for _, hook := range m.hooks {
		if err := hook(); err != nil {
			return fmt.Errorf("redraw of #%s: %w", m.id, err)
		}
	}
	return nil
}

func (m *Manager) changed() error {
	if !m.renderOnChange {
		return nil
	}
	return m.Redraw()
}

func (m *Manager) steps(p Plane, width, height int, px PxStep) (Step, Step, error) {
	xs, err := AutoStep(p.Width(), width, px)
	if err != nil {
		return Step{}, Step{}, fmt.Errorf("x step: %w", err)
	}
	ys, err := AutoStep(p.Height(), height, px)
	if err != nil {
		return Step{}, Step{}, fmt.Errorf("y step: %w", err)
	}
	return xs, ys, nil
}

func (m *Manager) notify() {
	if m.notifier == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("plane change notifier for #%s panicked: %v\n", m.id, r)
		}
	}()
	if err := m.notifier.PlaneChanged(m.id, m.plane); err != nil {
		log.Printf("plane change notifier for #%s failed: %v\n", m.id, err)
	}
}

func (m *Manager) setPlane(p Plane, redraw bool) error {
	if err := p.Validate(); err != nil {
		return err
	}
	xs, ys, err := m.steps(p, m.width, m.height, m.px)
	if err != nil {
		return err
	}
	m.plane, m.xStep, m.yStep = p, xs, ys
	m.notify()
	if !redraw {
		return nil
	}
	return m.changed()
}

// SetPlane replaces the visible plane and recomputes both steps. An invalid
// plane leaves the manager untouched.
func (m *Manager) SetPlane(p Plane) error {
	return m.setPlane(p, true)
}

// SetDefaultPlane goes back to the pixel identity plane.
func (m *Manager) SetDefaultPlane() error {
	return m.setPlane(PixelPlane(m.width, m.height), true)
}

// Translate moves the plane by (-dx, -dy).
func (m *Manager) Translate(dx, dy float64) error {
	p := m.plane
	return m.setPlane(Plane{
		XMin: p.XMin - dx,
		YMin: p.YMin - dy,
		XMax: p.XMax - dx,
		YMax: p.YMax - dy,
	}, true)
}

// Resize changes the pixel size of the canvas while keeping the plane.
func (m *Manager) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalidArgument, width, height)
	}
	xs, ys, err := m.steps(m.plane, width, height, m.px)
	if err != nil {
		return err
	}
	m.width, m.height = width, height
	m.xStep, m.yStep = xs, ys
	return m.changed()
}

// SetPxStep changes the preferred pixel distance of major grid lines.
func (m *Manager) SetPxStep(px PxStep) error {
	if err := px.Validate(); err != nil {
		return err
	}
	xs, ys, err := m.steps(m.plane, m.width, m.height, px)
	if err != nil {
		return err
	}
	m.px = px
	m.xStep, m.yStep = xs, ys
	return m.changed()
}

// AutoStep recomputes both steps from the current plane, dropping any
// manually set step.
func (m *Manager) AutoStep() error {
	xs, ys, err := m.steps(m.plane, m.width, m.height, m.px)
	if err != nil {
		return err
	}
	m.xStep, m.yStep = xs, ys
	return m.changed()
}

// SetXStep sets a manual x step. A step giving more than MaxGridLines lines
// over the current plane is rejected and leaves the manager untouched.
func (m *Manager) SetXStep(size float64) error {
	s, err := NewStep(size)
	if err != nil {
		return err
	}
	if err := CheckLines(m.plane.Width(), s.Size); err != nil {
		return err
	}
	m.xStep = s
	return m.changed()
}

func (m *Manager) SetYStep(size float64) error {
	s, err := NewStep(size)
	if err != nil {
		return err
	}
	if err := CheckLines(m.plane.Height(), s.Size); err != nil {
		return err
	}
	m.yStep = s
	return m.changed()
}

// SquarePlane rescales one axis so that a plane unit spans the same number
// of pixels on both axes. The relative position of 0 on the rescaled axis is
// kept and the preserved axis' step is copied over.
func (m *Manager) SquarePlane(preserveX bool) error {
	aspect := float64(m.height) / float64(m.width)
	p := m.plane
	var next Plane
	if preserveX {
		yi := p.Width() * aspect
		off, err := ScalarMap(0, [2]float64{p.YMin, p.YMax}, [2]float64{0, yi})
		if err != nil {
			return err
		}
		next = Plane{XMin: p.XMin, YMin: -off, XMax: p.XMax, YMax: -off + yi}
	} else {
		xi := p.Height() / aspect
		off, err := ScalarMap(0, [2]float64{p.XMin, p.XMax}, [2]float64{0, xi})
		if err != nil {
			return err
		}
		next = Plane{XMin: -off, YMin: p.YMin, XMax: -off + xi, YMax: p.YMax}
	}
	if err := m.setPlane(next, false); err != nil {
		return err
	}
	if preserveX {
		m.yStep = m.xStep
	} else {
		m.xStep = m.yStep
	}
	return m.changed()
}
