package gpu

import (
	"fmt"
	"log"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
	"github.com/gogpu/wgpu/types"
)

// DeviceHandle provides GPU device access from the host application.
//
// The renderer core receives a DeviceHandle from its caller; it never
// constructs its own adapter/device. This is a renderer-scoped name for
// gpucontext.DeviceProvider, mirroring how gogpu/gg's render.DeviceHandle
// aliases the same interface.
type DeviceHandle = gpucontext.DeviceProvider

// PresentMode selects how the surface paces frame presentation.
type PresentMode int

const (
	// PresentModeAuto waits for vsync (FIFO).
	PresentModeAuto PresentMode = iota
	// PresentModeOff presents immediately, no wait (Immediate).
	PresentModeOff
	// PresentModeAutoNoVsync uses mailbox if available, else Immediate.
	PresentModeAutoNoVsync
)

// SurfaceConfig describes the window surface the Compositor presents to.
type SurfaceConfig struct {
	Width       uint32
	Height      uint32
	Format      gputypes.TextureFormat
	PresentMode PresentMode
	AlphaMode   gputypes.CompositeAlphaMode
}

// Surface is the presentable window surface the compositor draws into.
// The host application owns surface creation; the renderer core only
// acquires frames from it and reconfigures it on size/present-mode
// changes or after ErrSurfaceOutdated.
type Surface interface {
	// AcquireNextTexture returns the frame to render into this pass, or
	// one of ErrSurfaceOutdated/ErrSurfaceTimeout/ErrSurfaceLost.
	AcquireNextTexture() (SurfaceTexture, error)
	// Reconfigure applies a new SurfaceConfig, e.g. after a resize or an
	// ErrSurfaceOutdated acquisition failure.
	Reconfigure(cfg SurfaceConfig) error
}

// SurfaceTexture is an acquired frame ready to be rendered into and
// presented.
type SurfaceTexture interface {
	// View returns a texture view suitable for use as a render
	// attachment.
	View() TextureView
	// Present schedules this texture for display.
	Present()
	// Discard releases the texture without presenting it (used when a
	// frame is skipped after a transient acquisition error).
	Discard()
}

// Texture is a GPU texture resource.
type Texture interface {
	Width() uint32
	Height() uint32
	Format() gputypes.TextureFormat
	CreateView() TextureView
	Destroy()
}

// TextureView is a view into a Texture, used to bind it to a render
// pass or shader stage.
type TextureView interface {
	Destroy()
}

// TextureUsage is a bitmask of how a texture will be used.
type TextureUsage uint32

const (
	TextureUsageCopySrc TextureUsage = 1 << iota
	TextureUsageCopyDst
	TextureUsageTextureBinding
	TextureUsageStorageBinding
	TextureUsageRenderAttachment
)

// TextureDescriptor describes parameters for creating a texture. This
// mirrors the WebGPU GPUTextureDescriptor shape.
type TextureDescriptor struct {
	Label         string
	Width         uint32
	Height        uint32
	MipLevelCount uint32
	SampleCount   uint32
	Format        gputypes.TextureFormat
	Usage         TextureUsage
}

// DefaultTextureDescriptor returns a TextureDescriptor with sensible
// defaults for a render-attachment-sampled texture. Only Width, Height,
// and Format need to be set by the caller.
func DefaultTextureDescriptor(width, height uint32, format gputypes.TextureFormat) TextureDescriptor {
	return TextureDescriptor{
		Width:         width,
		Height:        height,
		MipLevelCount: 1,
		SampleCount:   1,
		Format:        format,
		Usage:         TextureUsageTextureBinding | TextureUsageRenderAttachment,
	}
}

// DeviceLostError indicates the GPU device was lost (driver reset,
// device removed, etc). It is unrecoverable: the owning application must
// decide whether to recreate the whole renderer.
type DeviceLostError struct {
	Reason string
}

func (e *DeviceLostError) Error() string {
	return fmt.Sprintf("gpu: device lost: %s", e.Reason)
}

// Sentinel errors for transient surface acquisition failures. The
// Compositor recovers from these locally by reconfiguring the surface
// and skipping the frame; it never retries in a tight loop.
var (
	ErrSurfaceOutdated = fmt.Errorf("gpu: surface outdated")
	ErrSurfaceTimeout  = fmt.Errorf("gpu: surface acquisition timed out")
	ErrSurfaceLost     = fmt.Errorf("gpu: surface lost")
)

// AdapterInfo describes the selected GPU adapter.
type AdapterInfo struct {
	Name       string
	Vendor     string
	DeviceType types.DeviceType
	Backend    types.Backend
	Driver     string
}

func (a *AdapterInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", a.Name, a.DeviceType, a.Backend)
}

// queryAdapterInfo retrieves information about a selected adapter.
func queryAdapterInfo(adapterID core.AdapterID) (*AdapterInfo, error) {
	info, err := core.GetAdapterInfo(adapterID)
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to get adapter info: %w", err)
	}
	return &AdapterInfo{
		Name:       info.Name,
		Vendor:     info.Vendor,
		DeviceType: info.DeviceType,
		Backend:    info.Backend,
		Driver:     info.Driver,
	}, nil
}

// LogAdapterInfo logs a human-readable summary of the selected adapter.
// Construction-time diagnostics only; never called on the hot path.
func LogAdapterInfo(adapterID core.AdapterID) {
	info, err := queryAdapterInfo(adapterID)
	if err != nil {
		log.Printf("cellrender: failed to query GPU adapter: %v", err)
		return
	}
	log.Printf("cellrender: GPU adapter: %s", info.String())
	if info.Driver != "" {
		log.Printf("cellrender: driver: %s", info.Driver)
	}
}

// RequestDevice creates a logical device + queue from an adapter, using
// default limits and no optional features. This is the one place the
// renderer touches adapter/device creation directly; everywhere else it
// is handed a DeviceHandle by its caller.
func RequestDevice(adapterID core.AdapterID, label string) (core.DeviceID, core.QueueID, error) {
	desc := &types.DeviceDescriptor{
		Label:            label,
		RequiredFeatures: nil,
		RequiredLimits:   types.DefaultLimits(),
	}

	deviceID, err := core.RequestDevice(adapterID, desc)
	if err != nil {
		return core.DeviceID{}, core.QueueID{}, fmt.Errorf("gpu: failed to create device: %w", err)
	}

	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		return core.DeviceID{}, core.QueueID{}, fmt.Errorf("gpu: failed to get device queue: %w", err)
	}

	return deviceID, queueID, nil
}

// ReleaseDevice drops a device, tolerating a zero-value ID.
func ReleaseDevice(deviceID core.DeviceID) error {
	if deviceID.IsZero() {
		return nil
	}
	if err := core.DeviceDrop(deviceID); err != nil {
		return fmt.Errorf("gpu: failed to release device: %w", err)
	}
	return nil
}

// ReleaseAdapter drops an adapter, tolerating a zero-value ID.
func ReleaseAdapter(adapterID core.AdapterID) error {
	if adapterID.IsZero() {
		return nil
	}
	if err := core.AdapterDrop(adapterID); err != nil {
		return fmt.Errorf("gpu: failed to release adapter: %w", err)
	}
	return nil
}

// NullDeviceHandle is a DeviceHandle with nil implementations, usable in
// tests that never touch the GPU.
type NullDeviceHandle struct{}

func (NullDeviceHandle) Device() gpucontext.Device   { return nil }
func (NullDeviceHandle) Queue() gpucontext.Queue     { return nil }
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ DeviceHandle = NullDeviceHandle{}
