// Package device carries the execution context that decides where tensors
// live and which backend computes on them. A Context is passed explicitly to
// the code that moves or computes on tensors.
package device

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/born-ml/trainkit/internal/backend/cpu"
	"github.com/born-ml/trainkit/internal/backend/webgpu"
	"github.com/born-ml/trainkit/internal/tensor"
)

// Transferer places tensors on a target device.
type Transferer interface {
	// Target returns the device tensors are moved to.
	Target() tensor.Device
	// Transfer returns a packed copy or mirror of r on Target.
	Transfer(r *tensor.RawTensor) (*tensor.RawTensor, error)
}

// Context pairs a compute backend with the device tensors are placed on.
type Context struct {
	Backend  tensor.Backend
	transfer Transferer
	release  func()
}

// New creates a Context from a backend and a transferer.
func New(backend tensor.Backend, transfer Transferer) *Context {
	return &Context{Backend: backend, transfer: transfer}
}

// CPU returns a host-only Context.
func CPU() *Context {
	return New(cpu.New(), Host{})
}

// WebGPU returns a Context that mirrors tensors into WebGPU buffers.
// Arithmetic still runs on the CPU backend over the shared host memory.
func WebGPU() (*Context, error) {
	d, err := webgpu.Open()
	if err != nil {
		return nil, fmt.Errorf("device: %w", err)
	}
	ctx := New(cpu.New(), d)
	ctx.release = d.Release
	return ctx, nil
}

// Auto returns a WebGPU Context when an adapter is available and a CPU
// Context otherwise.
func Auto(logger *slog.Logger) *Context {
	ctx, err := WebGPU()
	if err == nil {
		return ctx
	}
	if logger != nil && !errors.Is(err, webgpu.ErrUnavailable) {
		logger.Warn("webgpu init failed, using CPU", "err", err)
	}
	return CPU()
}

// Target returns the device tensors are placed on.
func (c *Context) Target() tensor.Device {
	return c.transfer.Target()
}

// Put places r on the context's device. The result is contiguous and does
// not alias r's memory when r is strided.
func (c *Context) Put(r *tensor.RawTensor) (*tensor.RawTensor, error) {
	out, err := c.transfer.Transfer(r)
	if err != nil {
		return nil, fmt.Errorf("device: transfer %v to %s: %w", r, c.Target(), err)
	}
	return out, nil
}

// Release frees device resources held by the context.
func (c *Context) Release() {
	if c.release != nil {
		c.release()
		c.release = nil
	}
}

// Host keeps tensors in host memory.
type Host struct{}

// Target returns tensor.CPU.
func (Host) Target() tensor.Device { return tensor.CPU }

// Transfer returns a packed deep copy of r on the CPU.
func (Host) Transfer(r *tensor.RawTensor) (*tensor.RawTensor, error) {
	return r.Clone().OnDevice(tensor.CPU, nil), nil
}
