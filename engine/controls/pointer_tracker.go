package controls

import "github.com/Carmen-Shannon/oxy-orbit/engine/input"

type trackedPointer struct {
	id   int
	x, y float64
}

// pointerTracker keeps the active touch pointers in insertion order.
// It is used to synthesize touch frames on surfaces without native touch events.
type pointerTracker struct {
	pointers []trackedPointer
}

func newPointerTracker() *pointerTracker {
	return &pointerTracker{}
}

func (pt *pointerTracker) index(id int) int {
	for i, p := range pt.pointers {
		if p.id == id {
			return i
		}
	}
	return -1
}

// set records the pointer's position, appending it if it is new.
func (pt *pointerTracker) set(id int, x, y float64) {
	if i := pt.index(id); i >= 0 {
		pt.pointers[i].x = x
		pt.pointers[i].y = y
		return
	}
	pt.pointers = append(pt.pointers, trackedPointer{id: id, x: x, y: y})
}

func (pt *pointerTracker) has(id int) bool {
	return pt.index(id) >= 0
}

// remove drops the pointer. Returns false if it was not tracked.
func (pt *pointerTracker) remove(id int) bool {
	i := pt.index(id)
	if i < 0 {
		return false
	}
	pt.pointers = append(pt.pointers[:i], pt.pointers[i+1:]...)
	return true
}

func (pt *pointerTracker) len() int {
	return len(pt.pointers)
}

// touches builds a touch list in insertion order.
func (pt *pointerTracker) touches() []input.Touch {
	touches := make([]input.Touch, len(pt.pointers))
	for i, p := range pt.pointers {
		touches[i] = input.Touch{X: p.x, Y: p.y}
	}
	return touches
}
