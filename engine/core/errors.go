package core

import (
	"errors"
)

var (
	// ErrSurfaceBooting indicates the presentation surface was lost or is
	// outdated and has been reconfigured; the frame should be skipped.
	ErrSurfaceBooting = errors.New("surface resized or recreated, booting")
	// ErrOutOfMemory indicates the device has no memory left for frame
	// resources; the application should shut down.
	ErrOutOfMemory = errors.New("device out of memory")
	ErrUnknown     = errors.New("unknown")
)
