package crawl

import "github.com/musictechlab/ddexmap"

// Compile-time interface verification.
var _ ddexmap.URLFrontier = (*Frontier)(nil)

// Frontier is a FIFO queue of URLs with their crawl depth.
// Popping in insertion order gives breadth-first traversal.
// Deduplication is left to the caller's visited set.
type Frontier struct {
	items []ddexmap.QueuedURL
	head  int
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{}
}

// Push appends an item to the back of the queue.
func (f *Frontier) Push(item ddexmap.QueuedURL) {
	f.items = append(f.items, item)
}

// Pop removes and returns the item at the front of the queue.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (ddexmap.QueuedURL, bool) {
	if f.head >= len(f.items) {
		return ddexmap.QueuedURL{}, false
	}
	item := f.items[f.head]
	f.items[f.head] = ddexmap.QueuedURL{}
	f.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if f.head > 64 && f.head*2 >= len(f.items) {
		n := copy(f.items, f.items[f.head:])
		f.items = f.items[:n]
		f.head = 0
	}
	return item, true
}

// Len returns the number of queued items.
func (f *Frontier) Len() int {
	return len(f.items) - f.head
}
