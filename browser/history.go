package browser

// History is one tab's linear visit record. pos indexes the current entry
// and stays -1 until the first visit.
type History struct {
	urls []string
	pos  int
}

func NewHistory() *History {
	return &History{pos: -1}
}

// Visit records a new navigation. Any forward entries past the current
// position are discarded first, so going back and then somewhere new forks
// the timeline.
func (h *History) Visit(url string) {
	h.urls = append(h.urls[:h.pos+1], url)
	h.pos = len(h.urls) - 1
}

// Back steps to the previous entry, reporting false at the far edge.
func (h *History) Back() (string, bool) {
	if h.pos <= 0 {
		return "", false
	}
	h.pos--
	return h.urls[h.pos], true
}

// Forward steps to the next entry, reporting false at the near edge.
func (h *History) Forward() (string, bool) {
	if h.pos < 0 || h.pos >= len(h.urls)-1 {
		return "", false
	}
	h.pos++
	return h.urls[h.pos], true
}

// Current returns the entry the tab is on, if any.
func (h *History) Current() (string, bool) {
	if h.pos < 0 {
		return "", false
	}
	return h.urls[h.pos], true
}

func (h *History) CanBack() bool    { return h.pos > 0 }
func (h *History) CanForward() bool { return h.pos >= 0 && h.pos < len(h.urls)-1 }
