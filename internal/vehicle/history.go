package vehicle

import "github.com/banshee-data/platoon/internal/trajectory"

// history is a fixed-capacity ring of leader samples, oldest first. Pushing
// onto a full ring overwrites the oldest entry.
type history struct {
	buf   []trajectory.Sample
	head  int
	count int
}

func newHistory(capacity int) *history {
	return &history{buf: make([]trajectory.Sample, capacity)}
}

func (h *history) push(s trajectory.Sample) {
	if h.count < len(h.buf) {
		h.buf[(h.head+h.count)%len(h.buf)] = s
		h.count++
		return
	}
	h.buf[h.head] = s
	h.head = (h.head + 1) % len(h.buf)
}

func (h *history) size() int { return h.count }

// at returns the i-th oldest sample.
func (h *history) at(i int) trajectory.Sample {
	return h.buf[(h.head+i)%len(h.buf)]
}

func (h *history) last() trajectory.Sample {
	return h.at(h.count - 1)
}

func (h *history) reset() {
	h.head = 0
	h.count = 0
}

// nearest returns the index of the first sample closest to (x, y).
func (h *history) nearest(x, y float64) int {
	best := 0
	bestDist := distance(h.at(0).X, h.at(0).Y, x, y)
	for i := 1; i < h.count; i++ {
		s := h.at(i)
		if d := distance(s.X, s.Y, x, y); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func (h *history) samples() []trajectory.Sample {
	out := make([]trajectory.Sample, h.count)
	for i := range out {
		out[i] = h.at(i)
	}
	return out
}
