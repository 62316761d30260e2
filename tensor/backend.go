// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/trainkit/internal/tensor"

// Backend defines the interface that compute backends implement.
//
// Implementations:
//   - backend/cpu: Pure Go
//
// Decorator backends for additional functionality:
//   - autodiff: Automatic differentiation (wraps any backend)
//
// Example:
//
//	import (
//	    "github.com/born-ml/trainkit/backend/cpu"
//	    "github.com/born-ml/trainkit/tensor"
//	)
//
//	var b tensor.Backend = cpu.New()
//	z := b.Add(x, y)
type Backend = tensor.Backend
