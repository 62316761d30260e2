// Package serialization writes tensors in the SafeTensors format and
// validates SafeTensors headers on behalf of readers.
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON, tensor entries plus optional "__metadata__"]
//	  [Tensor data: raw little-endian bytes, sorted by tensor name]
//
// Supported dtypes: F32, F64, I16, I32, I64, U8, BOOL.
//
// Example usage:
//
//	err := serialization.WriteSafeTensors("optim.safetensors", state, map[string]string{
//	    "coef": `[1]`,
//	})
package serialization
