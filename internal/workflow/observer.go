package workflow

import "time"

// Observer receives workflow measurements. Implementations must be safe for
// concurrent use; BranchFinished is called from branch goroutines.
type Observer interface {
	BranchFinished(name string, elapsed time.Duration, err error)
	IterationFinished(iteration, issues, changes int)
	LoopFinished(iterations int, reason TerminationReason)
}

type NopObserver struct{}

func (NopObserver) BranchFinished(string, time.Duration, error) {}

func (NopObserver) IterationFinished(int, int, int) {}

func (NopObserver) LoopFinished(int, TerminationReason) {}

// Observers fans every call out to each non-nil observer in order.
type Observers []Observer

func (o Observers) BranchFinished(name string, elapsed time.Duration, err error) {
	for _, observer := range o {
		if observer != nil {
			observer.BranchFinished(name, elapsed, err)
		}
	}
}

func (o Observers) IterationFinished(iteration, issues, changes int) {
	for _, observer := range o {
		if observer != nil {
			observer.IterationFinished(iteration, issues, changes)
		}
	}
}

func (o Observers) LoopFinished(iterations int, reason TerminationReason) {
	for _, observer := range o {
		if observer != nil {
			observer.LoopFinished(iterations, reason)
		}
	}
}
