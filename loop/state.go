package loop

import (
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/glzoom/fractal"
	"github.com/stewi1014/glzoom/programs"
)

// State is the running render state owned by the frame loop. It is not safe
// for concurrent use; surfaces call Resize and Pan from the loop's thread.
type State struct {
	cfg      fractal.Config
	schedule fractal.Schedule
	view     fractal.ViewState
	params   fractal.RenderParams

	width, height int

	resizePending bool
	pendingWidth  int
	pendingHeight int

	safeZoom    float64
	warnedDepth bool
}

// NewState starts a view at zoom 0 on the configured centre.
func NewState(cfg fractal.Config, width, height int) *State {
	s := &State{
		cfg:      cfg,
		schedule: cfg.Schedule(),
		view: fractal.ViewState{
			Center: cfg.Center,
			Aspect: 1,
		},
		width:  1,
		height: 1,
	}
	s.safeZoom = cfg.Precision.SafeZoom(cfg.ScaleBase, 1, cfg.Center)
	s.applySize(width, height)
	s.params = s.schedule.Params(0, cfg.Threshold)
	return s
}

// Resize records a new viewport size. Only the most recent size before a
// Tick is applied.
func (s *State) Resize(width, height int) {
	s.resizePending = true
	s.pendingWidth, s.pendingHeight = width, height
}

// Pan moves the centre by delta, given in normalized screen units.
func (s *State) Pan(delta mgl64.Vec2) {
	scale := s.view.Scale(s.cfg.ScaleBase)
	s.view.Center = s.view.Center.Sub(mgl64.Vec2{
		delta[0] * float64(s.view.Aspect) * scale,
		delta[1] * scale,
	})
}

// Tick advances the view to elapsed and returns the frame's parameters.
// Pending resizes are applied first.
func (s *State) Tick(elapsed time.Duration) programs.Uniforms {
	if s.resizePending {
		s.resizePending = false
		s.applySize(s.pendingWidth, s.pendingHeight)
	}

	zoom := s.schedule.Zoom(elapsed)
	if zoom < s.view.Zoom {
		zoom = s.view.Zoom
	}
	s.view.Zoom = zoom
	s.params = s.schedule.Params(zoom, s.cfg.Threshold)

	if !s.warnedDepth && zoom > s.safeZoom {
		s.warnedDepth = true
		log.Printf(
			"zoom %.1f is past the %v precision limit of %.1f, expect blocky output",
			zoom, s.cfg.Precision, s.safeZoom,
		)
	}

	return programs.NewUniforms(s.view, s.params, s.cfg, s.width, s.height)
}

func (s *State) applySize(width, height int) {
	aspect, ok := fractal.AspectRatio(width, height)
	if !ok {
		log.Printf("ignoring degenerate viewport %vx%v, keeping aspect %v", width, height, s.view.Aspect)
		return
	}
	s.view.Aspect = aspect
	s.width, s.height = width, height
	s.safeZoom = s.cfg.Precision.SafeZoom(s.cfg.ScaleBase, height, s.view.Center)
}

func (s *State) View() fractal.ViewState {
	return s.view
}

func (s *State) Params() fractal.RenderParams {
	return s.params
}

// Size is the last non-degenerate viewport size.
func (s *State) Size() (width, height int) {
	return s.width, s.height
}

func (s *State) SafeZoom() float64 {
	return s.safeZoom
}
