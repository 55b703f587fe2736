// Package gpu wraps the GPU device/queue/surface primitives the renderer
// is driven by.
//
// Following the gogpu/gg convention (see render/device.go in that
// project), this package RECEIVES a device from the host application; it
// never creates its own adapter or device. This keeps the renderer core
// free of windowing concerns (window creation, surface configuration
// negotiation) while still giving it everything it needs to submit
// commands and present frames.
package gpu
