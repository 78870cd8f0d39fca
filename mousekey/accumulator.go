package mousekey

import (
	"math"
	"sync"
	"time"

	"github.com/Alia5/remapper/device/mouse"
)

// TickInterval is how often the dispatch loop should call Tick while the
// accumulator is active.
const TickInterval = 20 * time.Millisecond

// countThreshold is the scaled displacement that makes one report count.
const countThreshold = 128

// DeviceID identifies the input device a value was pushed for.
type DeviceID uint64

type entry struct {
	device DeviceID
	value  Value
}

// countConverter turns scaled displacement into whole report counts,
// carrying the remainder to the next tick.
type countConverter struct {
	count int
}

func (c *countConverter) update(v int) int16 {
	c.count += v
	result := c.count / countThreshold
	c.count -= result * countThreshold
	if result > math.MaxInt16 {
		return math.MaxInt16
	}
	if result < math.MinInt16 {
		return math.MinInt16
	}
	return int16(result)
}

func (c *countConverter) reset() { c.count = 0 }

// Accumulator combines every active mouse_key value into one motion per
// tick. It is safe for concurrent use.
type Accumulator struct {
	mu          sync.Mutex
	entries     []entry
	last        *Value
	invertWheel bool
	buttons     uint8

	x, y, vertical, horizontal countConverter
}

// NewAccumulator returns an empty accumulator. invertWheel flips both scroll
// axes of the total, for hosts without natural scrolling.
func NewAccumulator(invertWheel bool) *Accumulator {
	return &Accumulator{invertWheel: invertWheel}
}

// Push activates v for device, replacing an identical active entry.
func (a *Accumulator) Push(device DeviceID, v Value) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.erase(func(e entry) bool { return e.device == device && e.value == v })
	a.entries = append(a.entries, entry{device: device, value: v})
}

// Erase deactivates v for device.
func (a *Accumulator) Erase(device DeviceID, v Value) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.erase(func(e entry) bool { return e.device == device && e.value == v })
}

// EraseDevice deactivates every value pushed for device.
func (a *Accumulator) EraseDevice(device DeviceID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.erase(func(e entry) bool { return e.device == device })
}

func (a *Accumulator) erase(match func(entry) bool) {
	kept := a.entries[:0]
	for _, e := range a.entries {
		if !match(e) {
			kept = append(kept, e)
		}
	}
	a.entries = kept
}

// SetButtons sets the button bitfield carried by subsequent reports.
func (a *Accumulator) SetButtons(b uint8) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.buttons = b
}

// Active reports whether any value is pushed.
func (a *Accumulator) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries) > 0
}

// Total returns the sum of every active value.
func (a *Accumulator) Total() Value {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total()
}

func (a *Accumulator) total() Value {
	var t Value
	for _, e := range a.entries {
		t = t.Add(e.value)
	}
	if a.invertWheel {
		t = t.InvertWheel()
	}
	return t
}

// Tick advances one interval and returns the report to emit. It returns
// false when the total moves nothing; the caller should then stop ticking
// until the next Push.
func (a *Accumulator) Tick() (mouse.InputState, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t := a.total()
	if t.IsZero() {
		a.last = nil
		return mouse.InputState{}, false
	}

	if a.last == nil || *a.last != t {
		a.last = &t
		a.x.reset()
		a.y.reset()
		a.vertical.reset()
		a.horizontal.reset()
	}

	return mouse.InputState{
		Buttons: a.buttons,
		DX:      a.x.update(scale(t.X, t.SpeedMultiplier)),
		DY:      a.y.update(scale(t.Y, t.SpeedMultiplier)),
		Wheel:   a.vertical.update(scale(t.VerticalWheel, t.SpeedMultiplier)),
		Pan:     a.horizontal.update(scale(t.HorizontalWheel, t.SpeedMultiplier)),
	}, true
}

// scale truncates toward zero and saturates at the 32-bit range.
func scale(v int, multiplier float64) int {
	f := float64(v) * multiplier
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}
