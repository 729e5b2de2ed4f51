package loop

import (
	"context"

	"github.com/stewi1014/glzoom/programs"
)

// Surface presents frames and delivers window events.
type Surface interface {
	ShouldClose() bool
	// PollEvents delivers pending events, calling State.Resize for viewport changes.
	PollEvents()
	// Present shades and shows one frame.
	Present(programs.Uniforms) error
}

// Run drives surface until it asks to close or ctx is done.
//
// Parameters for a frame are computed after that frame's events are polled
// and before it is presented. A frame the surface fails to present is
// skipped; the loop carries on with the next one.
func Run(ctx context.Context, surface Surface, clock Clock, state *State) error {
	var skipped FrameErrors

	for !surface.ShouldClose() {
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}

		surface.PollEvents()
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}

		uniforms := state.Tick(clock.Elapsed())
		skipped.Report(surface.Present(uniforms))
	}

	return nil
}
