package container

import "github.com/born-ml/trainkit/internal/device"

// ToDevice returns a copy of v with every tensor made contiguous and placed
// on ctx's device. Non-tensor leaves pass through unchanged.
func ToDevice(ctx *device.Context, v Value) (Value, error) {
	return Transform(v, ctx.Put)
}
