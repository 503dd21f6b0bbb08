package workflows

// Observer receives progress signals from a pipeline run: Begin with the
// total number of work units, one Advance per completed unit, and End when
// the run finishes. One unit corresponds to one packed or extracted file,
// plus one for the cryptographic stage.
//
// Observers are presentation only. The pipeline behaves identically with
// NopObserver, and implementations must not fail or block the run.
type Observer interface {
	Begin(total int)
	Advance()
	End()
}

// NopObserver discards all progress signals.
type NopObserver struct{}

func (NopObserver) Begin(int) {}
func (NopObserver) Advance()  {}
func (NopObserver) End()      {}
