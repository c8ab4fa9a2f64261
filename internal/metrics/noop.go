package metrics

// NoopMetrics discards everything; used when metrics are disabled
type NoopMetrics struct{}

// Ensure NoopMetrics implements Recorder interface at compile time
var _ Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordPage(listing string, pageSize int, outOfRange, empty bool) {}
func (n *NoopMetrics) RecordFetchError(listing string)                                 {}
