package loop

import "log"

// FrameErrors logs frames that failed to present. A run of identical errors
// is logged once; a successful frame ends the run.
type FrameErrors struct {
	last string
}

// Report records the outcome of one frame and reports whether it was shown.
func (f *FrameErrors) Report(err error) bool {
	if err == nil {
		f.last = ""
		return true
	}
	if msg := err.Error(); msg != f.last {
		log.Printf("skipping frame: %v", err)
		f.last = msg
	}
	return false
}
