// Package loader reads tensors from SafeTensors checkpoints.
//
// Headers are validated before any tensor data is read: tensor names,
// data offsets (no overlap, no reads past the end of the file) and dtypes.
//
// Example:
//
//	tensors, meta, err := loader.ReadSafeTensors("pretrain.safetensors", tensor.CPU)
//	if err != nil {
//	    return err
//	}
package loader
