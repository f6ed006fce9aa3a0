// Package opencl owns the native OpenCL context, command queue and device
// handles. Build with -tags opencl to link against libOpenCL.
package opencl

import "errors"

// Available reports whether OpenCL support was compiled in.
const Available = available

// ErrNotBuilt indicates the binary was built without OpenCL support.
var ErrNotBuilt = errors.New("opencl support requires building with '-tags opencl'")

// fp64Extension is the extension name advertising double precision kernels.
const fp64Extension = "cl_khr_fp64"
