//go:build !windows

package webgpu

import "github.com/born-ml/trainkit/internal/tensor"

// Device is unavailable on this platform.
type Device struct{}

// Open always fails with ErrUnavailable on this platform.
func Open() (*Device, error) {
	return nil, ErrUnavailable
}

// Target reports the device tensors would be moved to.
func (d *Device) Target() tensor.Device { return tensor.WebGPU }

// Transfer always fails with ErrUnavailable.
func (d *Device) Transfer(*tensor.RawTensor) (*tensor.RawTensor, error) {
	return nil, ErrUnavailable
}

// Download always fails with ErrUnavailable.
func (d *Device) Download(*Buffer) ([]byte, error) {
	return nil, ErrUnavailable
}

// Stats reports no buffers.
func (d *Device) Stats() (buffers int, bytes uint64) { return 0, 0 }

// Release is a no-op.
func (d *Device) Release() {}

// Buffer is unavailable on this platform.
type Buffer struct{}

// Device returns tensor.WebGPU.
func (b *Buffer) Device() tensor.Device { return tensor.WebGPU }

// Size returns 0.
func (b *Buffer) Size() uint64 { return 0 }

// Release is a no-op.
func (b *Buffer) Release() {}
