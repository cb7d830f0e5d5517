package sysmon

// DefaultHistoryLength is the number of samples kept by the sampler.
const DefaultHistoryLength = 6

// sampleBuffer is a fixed-capacity circular buffer of samples. It is not
// safe for concurrent use; the engine guards it with its RWMutex.
type sampleBuffer struct {
	data  []SystemSample
	head  int
	count int
}

func newSampleBuffer(capacity int) *sampleBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &sampleBuffer{data: make([]SystemSample, capacity)}
}

// push appends s, overwriting the oldest sample when full.
func (b *sampleBuffer) push(s SystemSample) {
	b.data[b.head] = s
	b.head = (b.head + 1) % len(b.data)
	if b.count < len(b.data) {
		b.count++
	}
}

func (b *sampleBuffer) len() int { return b.count }

func (b *sampleBuffer) cap() int { return len(b.data) }

// snapshot copies the samples out in chronological order (oldest first).
func (b *sampleBuffer) snapshot() []SystemSample {
	if b.count == 0 {
		return nil
	}
	out := make([]SystemSample, b.count)
	start := b.head - b.count
	if start < 0 {
		start += len(b.data)
	}
	for i := range b.count {
		out[i] = b.data[(start+i)%len(b.data)]
	}
	return out
}
