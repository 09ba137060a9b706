package assemble

import "time"

// MetricsObserver receives assembly events.
type MetricsObserver interface {
	// OnImage is called after an image has been written.
	OnImage(target string, bytes int, duration time.Duration)

	// OnSkip is called for a record without a selected label.
	OnSkip(source string)
}

// NoopMetricsObserver is a no-op implementation of MetricsObserver.
type NoopMetricsObserver struct{}

func (NoopMetricsObserver) OnImage(string, int, time.Duration) {}
func (NoopMetricsObserver) OnSkip(string)                      {}
