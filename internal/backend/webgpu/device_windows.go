//go:build windows

package webgpu

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/born-ml/trainkit/internal/tensor"
	"github.com/go-webgpu/webgpu/wgpu"
)

// Device owns a WebGPU adapter, device and queue.
type Device struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	mu            sync.Mutex
	activeBuffers int
	activeBytes   uint64
}

// Open acquires a high-performance adapter and its default queue.
// Returns an error wrapping ErrUnavailable if WebGPU cannot be initialized.
func Open() (d *Device, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			d = nil
			err = fmt.Errorf("%w: native library not available: %v", ErrUnavailable, r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: failed to request adapter: %w", ErrUnavailable, err)
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: failed to request device: %w", ErrUnavailable, err)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: failed to get queue", ErrUnavailable)
	}

	return &Device{instance: instance, adapter: adapter, device: device, queue: queue}, nil
}

// Target reports the device tensors are moved to.
func (d *Device) Target() tensor.Device {
	return tensor.WebGPU
}

// Transfer uploads a packed copy of r into a storage buffer and returns it
// placed on the WebGPU device. Host memory stays readable through the result.
func (d *Device) Transfer(r *tensor.RawTensor) (*tensor.RawTensor, error) {
	r = r.Clone()
	size := uint64(r.ByteSize())

	buffer := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:             alignedSize(size),
		MappedAtCreation: wgpu.True,
	})
	if buffer == nil {
		return nil, fmt.Errorf("webgpu: failed to allocate %d bytes for %v", size, r)
	}

	if size > 0 {
		mappedPtr := buffer.GetMappedRange(0, size)
		//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
		mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
		copy(mappedSlice, r.Data())
	}
	buffer.Unmap()

	d.mu.Lock()
	d.activeBuffers++
	d.activeBytes += size
	d.mu.Unlock()

	return r.OnDevice(tensor.WebGPU, &Buffer{owner: d, buffer: buffer, size: size}), nil
}

// Download copies a buffer's contents back to host memory.
func (d *Device) Download(b *Buffer) ([]byte, error) {
	if b.buffer == nil {
		return nil, fmt.Errorf("webgpu: download from released buffer")
	}
	if b.size == 0 {
		return []byte{}, nil
	}
	size := alignedSize(b.size)

	stagingBuffer := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer stagingBuffer.Release()

	encoder := d.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(b.buffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	d.queue.Submit(cmdBuffer)

	if err := stagingBuffer.MapAsync(d.device, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("webgpu: failed to map staging buffer: %w", err)
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, b.size)
	copy(result, mappedSlice)
	stagingBuffer.Unmap()

	return result, nil
}

// Stats returns the number and total size of live buffers.
func (d *Device) Stats() (buffers int, bytes uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.activeBuffers, d.activeBytes
}

// Release releases the device. Buffers must be released first.
func (d *Device) Release() {
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.instance != nil {
		d.instance.Release()
		d.instance = nil
	}
}

// Buffer is a storage buffer mirroring one tensor. It implements tensor.DeviceBuffer.
type Buffer struct {
	owner  *Device
	buffer *wgpu.Buffer
	size   uint64
}

// Device returns tensor.WebGPU.
func (b *Buffer) Device() tensor.Device { return tensor.WebGPU }

// Size returns the tensor's byte size (without alignment padding).
func (b *Buffer) Size() uint64 { return b.size }

// Release frees the GPU memory. Safe to call more than once.
func (b *Buffer) Release() {
	if b.buffer == nil {
		return
	}
	b.buffer.Release()
	b.buffer = nil

	b.owner.mu.Lock()
	b.owner.activeBuffers--
	b.owner.activeBytes -= b.size
	b.owner.mu.Unlock()
}

// alignedSize rounds up to the 4-byte copy alignment WebGPU requires.
func alignedSize(size uint64) uint64 {
	if size == 0 {
		return 4
	}
	return (size + 3) &^ 3
}
