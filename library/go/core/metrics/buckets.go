package metrics

import (
	"sort"
	"time"
)

// Buckets are the upper bounds of histogram buckets.
type Buckets interface {
	Size() int
	UpperBound(idx int) float64
}

// DurationBuckets are the upper bounds of duration histogram buckets.
type DurationBuckets interface {
	Size() int
	UpperBound(idx int) time.Duration
}

type buckets []float64

func (b buckets) Size() int                  { return len(b) }
func (b buckets) UpperBound(idx int) float64 { return b[idx] }

type durationBuckets []time.Duration

func (b durationBuckets) Size() int                        { return len(b) }
func (b durationBuckets) UpperBound(idx int) time.Duration { return b[idx] }

// NewBuckets returns sorted buckets built from the given upper bounds.
func NewBuckets(bounds ...float64) Buckets {
	res := make(buckets, len(bounds))
	copy(res, bounds)
	sort.Float64s(res)
	return res
}

// NewDurationBuckets returns sorted duration buckets built from the given upper bounds.
func NewDurationBuckets(bounds ...time.Duration) DurationBuckets {
	res := make(durationBuckets, len(bounds))
	copy(res, bounds)
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// MakeLinearBuckets creates count buckets starting at start with the given width.
func MakeLinearBuckets(start, width float64, count int) Buckets {
	res := make(buckets, count)
	for i := 0; i < count; i++ {
		res[i] = start + float64(i)*width
	}
	return res
}
