package core

import (
	"cmp"
	"slices"
	"sync"
)

// BuildOwner queues elements that were marked dirty between frames and
// rebuilds them, parents before children, when the host flushes.
type BuildOwner struct {
	mu      sync.Mutex
	queue   []Element
	pending map[Element]struct{}

	// OnNeedsFrame runs whenever an element is newly queued.
	OnNeedsFrame func()
}

// NewBuildOwner creates an empty BuildOwner.
func NewBuildOwner() *BuildOwner {
	return &BuildOwner{pending: make(map[Element]struct{})}
}

// ScheduleBuild queues element for the next flush. Queuing an element twice
// is a no-op.
func (b *BuildOwner) ScheduleBuild(element Element) {
	if !b.enqueue(element) {
		return
	}
	if b.OnNeedsFrame != nil {
		b.OnNeedsFrame()
	}
}

func (b *BuildOwner) enqueue(element Element) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == nil {
		b.pending = make(map[Element]struct{})
	}
	if _, queued := b.pending[element]; queued {
		return false
	}
	b.pending[element] = struct{}{}
	b.queue = append(b.queue, element)
	return true
}

// NeedsWork reports whether any element is queued.
func (b *BuildOwner) NeedsWork() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue) > 0
}

// take empties the queue and returns its elements shallowest first.
func (b *BuildOwner) take() []Element {
	b.mu.Lock()
	defer b.mu.Unlock()
	batch := b.queue
	b.queue = nil
	clear(b.pending)
	slices.SortStableFunc(batch, func(x, y Element) int {
		return cmp.Compare(x.Depth(), y.Depth())
	})
	return batch
}

// FlushBuild rebuilds queued elements until the queue stays empty and
// returns how many mounted elements it rebuilt. Elements queued during the
// flush are picked up by the next batch.
func (b *BuildOwner) FlushBuild() int {
	rebuilt := 0
	for batch := b.take(); len(batch) > 0; batch = b.take() {
		for _, element := range batch {
			if m, ok := element.(interface{ isMounted() bool }); ok && !m.isMounted() {
				continue
			}
			element.RebuildIfNeeded()
			rebuilt++
		}
	}
	return rebuilt
}
