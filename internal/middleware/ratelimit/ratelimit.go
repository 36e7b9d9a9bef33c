// Package ratelimit partitions request budgets by authenticated identity or
// client IP. Each partition key maps to an independent sliding-window counter;
// rejections are advisory, nothing on the server retries.
package ratelimit

import "time"

// Policy is one sliding-window configuration. QueueLimit does not buy a real
// queue, a non-zero value simply widens the burst allowance; the production
// configuration keeps it at zero.
type Policy struct {
	PermitLimit       int
	Window            time.Duration
	SegmentsPerWindow int
	QueueLimit        int
}

// slidingWindow counts permits across a ring of window segments. Not safe for
// concurrent use on its own; the Store serializes access.
type slidingWindow struct {
	limit        int
	segment      time.Duration
	counts       []int
	cursor       int
	segmentStart time.Time
}

func newSlidingWindow(policy Policy, multiplier int) *slidingWindow {
	segments := policy.SegmentsPerWindow
	if segments < 1 {
		segments = 1
	}
	return &slidingWindow{
		limit:   policy.PermitLimit*multiplier + policy.QueueLimit,
		segment: policy.Window / time.Duration(segments),
		counts:  make([]int, segments),
	}
}

func (w *slidingWindow) allow(now time.Time) bool {
	w.advance(now)

	total := 0
	for _, n := range w.counts {
		total += n
	}
	if total >= w.limit {
		return false
	}

	w.counts[w.cursor]++
	return true
}

// advance rotates expired segments out of the ring.
func (w *slidingWindow) advance(now time.Time) {
	if w.segmentStart.IsZero() {
		w.segmentStart = now
		return
	}

	elapsed := now.Sub(w.segmentStart)
	if elapsed < w.segment {
		return
	}

	steps := int(elapsed / w.segment)
	if steps >= len(w.counts) {
		for i := range w.counts {
			w.counts[i] = 0
		}
		w.cursor = 0
		w.segmentStart = now
		return
	}

	for i := 0; i < steps; i++ {
		w.cursor = (w.cursor + 1) % len(w.counts)
		w.counts[w.cursor] = 0
	}
	w.segmentStart = w.segmentStart.Add(time.Duration(steps) * w.segment)
}
