package trajectory

import (
	"iter"
	"math"
)

// Sample is a timestamped 2D position. Timestamps are seconds relative to the
// first sample of the log it came from.
type Sample struct {
	Timestamp float64
	X         float64
	Y         float64
}

// DistanceTo returns the Euclidean distance between the two positions.
func (s Sample) DistanceTo(other Sample) float64 {
	dx := s.X - other.X
	dy := s.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Log is an immutable, ordered sequence of samples. The zero value is an
// empty log.
type Log struct {
	samples []Sample
}

// NewLog copies samples into a Log without modifying them.
func NewLog(samples []Sample) Log {
	if len(samples) == 0 {
		return Log{}
	}
	return Log{samples: append([]Sample(nil), samples...)}
}

// Normalize returns a copy of samples offset so that the first sample sits at
// the origin in both space and time.
func Normalize(samples []Sample) []Sample {
	if len(samples) == 0 {
		return nil
	}
	first := samples[0]
	out := make([]Sample, len(samples))
	for i, s := range samples {
		out[i] = Sample{
			Timestamp: s.Timestamp - first.Timestamp,
			X:         s.X - first.X,
			Y:         s.Y - first.Y,
		}
	}
	return out
}

// Len returns the number of samples.
func (l Log) Len() int { return len(l.samples) }

// Empty reports whether the log has no samples.
func (l Log) Empty() bool { return len(l.samples) == 0 }

// At returns sample i. It panics if i is out of range.
func (l Log) At(i int) Sample { return l.samples[i] }

// Samples returns a copy of the samples.
func (l Log) Samples() []Sample {
	return append([]Sample(nil), l.samples...)
}

// Duration returns the timestamp of the last sample.
func (l Log) Duration() float64 {
	if len(l.samples) == 0 {
		return 0
	}
	return l.samples[len(l.samples)-1].Timestamp
}

// Downsample yields a thinned path. The first sample is always included;
// each later sample is included only when it lies more than minSpacing from
// the last included one. The sequence is lazy and can be ranged over any
// number of times.
func (l Log) Downsample(minSpacing float64) iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		if len(l.samples) == 0 {
			return
		}
		last := l.samples[0]
		if !yield(last) {
			return
		}
		limit := minSpacing * minSpacing
		for _, s := range l.samples[1:] {
			dx := s.X - last.X
			dy := s.Y - last.Y
			if dx*dx+dy*dy > limit {
				last = s
				if !yield(s) {
					return
				}
			}
		}
	}
}
