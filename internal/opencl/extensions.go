package opencl

import "strings"

// parseExtensions splits the space separated CL_*_EXTENSIONS string.
func parseExtensions(s string) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// supportsFP64 reports double precision support from the extension list or
// a non-zero CL_DEVICE_DOUBLE_FP_CONFIG.
func supportsFP64(extensions []string, doubleFPConfig uint64) bool {
	if doubleFPConfig != 0 {
		return true
	}
	for _, ext := range extensions {
		if ext == fp64Extension {
			return true
		}
	}
	return false
}
