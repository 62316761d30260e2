// Package webgpu mirrors host tensors into WebGPU storage buffers.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
//
// The native bindings are only wired on windows builds; elsewhere Open
// reports ErrUnavailable and callers fall back to host memory.
package webgpu

import "errors"

// ErrUnavailable is returned when no WebGPU adapter or native library can be used.
var ErrUnavailable = errors.New("webgpu: not available")
