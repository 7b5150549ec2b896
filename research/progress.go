// Progress reporting for research sessions.
//
// Progress events are advisory: they exist so a UI can show motion, and
// must never drive control flow or signal completion. Fractions are fixed
// milestones rather than real engine progress, because the engine exposes
// no incremental channel.

package research

// ProgressEvent is one advisory progress checkpoint.
type ProgressEvent struct {
	Fraction float64
	Label    string
}

// ProgressFunc receives progress events. May be nil.
type ProgressFunc func(ProgressEvent)

// monotonic wraps a ProgressFunc so that fractions never regress within a
// request's lifetime. A nil sink stays nil.
func monotonic(sink ProgressFunc) ProgressFunc {
	if sink == nil {
		return nil
	}
	highWater := 0.0
	return func(ev ProgressEvent) {
		if ev.Fraction < highWater {
			ev.Fraction = highWater
		}
		if ev.Fraction > 1.0 {
			ev.Fraction = 1.0
		}
		highWater = ev.Fraction
		sink(ev)
	}
}

// report sends an event to a possibly-nil sink.
func report(sink ProgressFunc, fraction float64, label string) {
	if sink == nil {
		return
	}
	sink(ProgressEvent{Fraction: fraction, Label: label})
}
