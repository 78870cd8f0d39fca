// Package mousekey holds synthetic pointer motion: the value a mouse_key
// output carries, and the accumulator that turns every active value into
// periodic mouse reports.
package mousekey

import (
	"fmt"
	"math"

	"github.com/Alia5/remapper/jsonvalue"
	"github.com/Alia5/remapper/parseerror"
)

// Value is a pointer and scroll displacement scaled by SpeedMultiplier.
type Value struct {
	X               int
	Y               int
	VerticalWheel   int
	HorizontalWheel int
	SpeedMultiplier float64
}

// New returns a displacement with a multiplier of 1.
func New(x, y, verticalWheel, horizontalWheel int) Value {
	return Value{X: x, Y: y, VerticalWheel: verticalWheel, HorizontalWheel: horizontalWheel, SpeedMultiplier: 1}
}

// FromJSON parses a mouse_key object. Integer fields default to 0 and must
// fit in 32 bits; speed_multiplier defaults to 1.
func FromJSON(v jsonvalue.Value) (Value, error) {
	if !v.IsObject() {
		return Value{}, parseerror.InvalidForm("mouse_key", "object", v)
	}

	out := Value{SpeedMultiplier: 1}
	for _, m := range v.Members() {
		var target *int
		switch m.Key {
		case "x":
			target = &out.X
		case "y":
			target = &out.Y
		case "vertical_wheel":
			target = &out.VerticalWheel
		case "horizontal_wheel":
			target = &out.HorizontalWheel
		case "speed_multiplier":
			f, ok := m.Value.AsFloat()
			if !ok {
				return Value{}, parseerror.InvalidForm("mouse_key.speed_multiplier", "number", m.Value)
			}
			out.SpeedMultiplier = f
			continue
		default:
			return Value{}, parseerror.UnknownField("mouse_key", m.Key, v)
		}

		n, ok := m.Value.AsInt()
		if !ok || n > math.MaxInt32 || n < math.MinInt32 {
			return Value{}, parseerror.InvalidForm("mouse_key."+m.Key, "32-bit integer", m.Value)
		}
		*target = n
	}
	return out, nil
}

// Add sums every field, the multiplier included: two active 1.5x values
// move at 3x.
func (v Value) Add(o Value) Value {
	return Value{
		X:               v.X + o.X,
		Y:               v.Y + o.Y,
		VerticalWheel:   v.VerticalWheel + o.VerticalWheel,
		HorizontalWheel: v.HorizontalWheel + o.HorizontalWheel,
		SpeedMultiplier: v.SpeedMultiplier + o.SpeedMultiplier,
	}
}

// IsZero reports whether v moves nothing. The multiplier is ignored.
func (v Value) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.VerticalWheel == 0 && v.HorizontalWheel == 0
}

// InvertWheel negates both scroll axes.
func (v Value) InvertWheel() Value {
	v.VerticalWheel = -v.VerticalWheel
	v.HorizontalWheel = -v.HorizontalWheel
	return v
}

func (v Value) String() string {
	return fmt.Sprintf("x:%d,y:%d,vertical_wheel:%d,horizontal_wheel:%d,speed_multiplier:%g",
		v.X, v.Y, v.VerticalWheel, v.HorizontalWheel, v.SpeedMultiplier)
}
