package shader

import (
	"log"
	"time"

	"github.com/paulrobello/termcellrender/gpu"
)

// cursorTrailDuration is how long cursor_needs_animation() keeps
// returning true after the last recorded cursor change, long enough
// for a typical trail-fade shader to finish its decay.
const cursorTrailDuration = 400 * time.Millisecond

// Config are the construction-time inputs to a CustomShaderRenderer,
// per spec.md §4.7.
type Config struct {
	Source            string
	AnimationEnabled  bool
	AnimationSpeed    float64
	WindowOpacity     float64
	TextOpacity       float64
	FullContentMode   bool
	Brightness        float64
	ChannelPaths      [4]string
	CubemapPathPrefix string
}

// CustomShaderRenderer runs a user-supplied full-screen fragment
// shader against an intermediate texture sized to the surface,
// following backend/wgpu/renderer.go's Resize-reallocation idiom for
// the intermediate target and gpucore/pipeline.go's
// mutex-free-but-single-owner lifecycle (a CustomShaderRenderer is
// owned and driven exclusively by the Compositor's render thread, per
// §5, so it carries no internal lock).
type CustomShaderRenderer struct {
	device   gpu.DeviceHandle
	pipeline *ShaderPipeline
	active   *Pipeline

	uniforms Uniforms

	animationEnabled bool
	animationSpeed   float64
	fullContentMode  bool

	channels [4]*channelTexture
	cubemap  [6]*channelTexture

	intermediate     gpu.Texture
	intermediateView gpu.TextureView
	width, height    uint32

	frame          uint32
	lastFrameTime  time.Time
	lastCursorMove time.Time
	haveCursorMove bool
}

// New creates a CustomShaderRenderer bound to device, compiling cfg's
// source and loading its channel textures and optional cubemap via
// loader (nil loader means channel/cubemap paths are silently
// skipped — useful in tests and for shaders that only sample
// iChannel0 from the intermediate texture itself).
func New(device gpu.DeviceHandle, cfg Config, loader ImageLoader, width, height uint32) (*CustomShaderRenderer, error) {
	sp := NewShaderPipeline(device)
	pl, err := sp.Compile(cfg.Source)
	if err != nil {
		return nil, err
	}

	channels, loadErrs := loadChannelTextures(loader, cfg.ChannelPaths)
	for _, loadErr := range loadErrs {
		log.Printf("%v", loadErr)
	}
	cubemap, _ := loadCubemap(loader, cfg.CubemapPathPrefix)

	r := &CustomShaderRenderer{
		device:           device,
		pipeline:         sp,
		active:           pl,
		animationEnabled: cfg.AnimationEnabled,
		animationSpeed:   cfg.AnimationSpeed,
		fullContentMode:  cfg.FullContentMode,
		channels:         channels,
		cubemap:          cubemap,
	}
	r.uniforms.Opacity = float32(cfg.WindowOpacity)
	r.uniforms.TextOpacity = float32(cfg.TextOpacity)
	r.uniforms.Brightness = float32(cfg.Brightness)

	if err := r.Resize(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

// Resize recreates the intermediate texture and view at the new
// surface size, matching the teacher's Resize-reallocates-targets
// pattern in backend/wgpu/renderer.go.
func (r *CustomShaderRenderer) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	r.width, r.height = width, height
	r.intermediate = newUploadedTexture(nil, int(width), int(height))
	r.intermediateView = r.intermediate.CreateView()
	r.uniforms.Resolution = [2]float32{float32(width), float32(height)}
	return nil
}

// ReloadFromSource compiles a new shader and, only on success, makes
// it the active pipeline. On failure the previous pipeline is left
// intact and the compiler error is returned, per spec.md §4.7.
func (r *CustomShaderRenderer) ReloadFromSource(source string) error {
	pl, err := r.pipeline.Compile(source)
	if err != nil {
		return err
	}
	r.active = pl
	return nil
}

// AnimationEnabled reports whether the shader should keep requesting
// continuous-render frames regardless of dirty state.
func (r *CustomShaderRenderer) AnimationEnabled() bool { return r.animationEnabled }

// SetAnimationEnabled updates the continuous-render flag.
func (r *CustomShaderRenderer) SetAnimationEnabled(enabled bool) { r.animationEnabled = enabled }

// NotifyCursorMoved records that the cursor changed at t, starting (or
// restarting) the cursor-trail decay window CursorNeedsAnimation
// checks against.
func (r *CustomShaderRenderer) NotifyCursorMoved(t time.Time) {
	r.lastCursorMove = t
	r.haveCursorMove = true
}

// CursorNeedsAnimation reports whether a cursor trail is still
// recently decaying as of now, per spec.md §4.7's continuous-render
// contract.
func (r *CustomShaderRenderer) CursorNeedsAnimation(now time.Time) bool {
	if !r.haveCursorMove {
		return false
	}
	return now.Sub(r.lastCursorMove) < cursorTrailDuration
}

// Typed uniform setters. Each writes into the staging Uniforms value,
// which Uniforms.Bytes packs for a buffer write; Render issues no
// write_buffer call (see its doc comment).

func (r *CustomShaderRenderer) SetTime(now time.Time) {
	var delta float32
	if !r.lastFrameTime.IsZero() {
		delta = float32(now.Sub(r.lastFrameTime).Seconds())
	}
	r.lastFrameTime = now
	r.uniforms.TimeDelta = delta
	r.uniforms.Time += delta * float32(max(r.animationSpeed, 0))
	r.uniforms.Frame = r.frame
}

func (r *CustomShaderRenderer) SetMouse(x, y, clickX, clickY float64) {
	r.uniforms.Mouse = [4]float32{float32(x), float32(y), float32(clickX), float32(clickY)}
}

func (r *CustomShaderRenderer) SetCursorPosition(col, row int, opacity float64, flags uint8) {
	r.uniforms.CursorPosition = [3]float32{float32(col), float32(row), packCursorFlags(opacity, flags)}
}

func (r *CustomShaderRenderer) SetCursorColor(c [4]float32) { r.uniforms.CursorColor = c }

func (r *CustomShaderRenderer) SetOpacity(opacity float64) { r.uniforms.Opacity = float32(opacity) }

func (r *CustomShaderRenderer) SetTextOpacity(opacity float64) {
	r.uniforms.TextOpacity = float32(opacity)
}

func (r *CustomShaderRenderer) SetBrightness(b float64) { r.uniforms.Brightness = float32(b) }

func (r *CustomShaderRenderer) SetBackgroundColor(c [4]float32, isSolid bool) {
	r.uniforms.BackgroundColor = c
	if isSolid {
		r.uniforms.BackgroundIsSolid = 1
	} else {
		r.uniforms.BackgroundIsSolid = 0
	}
}

func (r *CustomShaderRenderer) SetCellSize(w, h float64) {
	r.uniforms.CellSize = [2]float32{float32(w), float32(h)}
}

func (r *CustomShaderRenderer) SetContentOffset(x, y float64) {
	r.uniforms.ContentOffset = [2]float32{float32(x), float32(y)}
}

func (r *CustomShaderRenderer) SetContentInset(bottom, right float64) {
	r.uniforms.ContentInset = [2]float32{float32(bottom), float32(right)}
}

func (r *CustomShaderRenderer) SetUseBackgroundAsChannel0(use bool) {
	if use {
		r.uniforms.UseBackgroundAsChannel0 = 1
	} else {
		r.uniforms.UseBackgroundAsChannel0 = 0
	}
}

func (r *CustomShaderRenderer) SetKeepTextOpaque(keep bool) {
	if keep {
		r.uniforms.KeepTextOpaque = 1
	} else {
		r.uniforms.KeepTextOpaque = 0
	}
}

// Uniforms returns the staging uniform block as it would be written
// for the next Render call. Exposed for tests and for Compositor
// diagnostics; application code should use the typed setters above
// rather than mutating the returned value.
func (r *CustomShaderRenderer) Uniforms() Uniforms { return r.uniforms }

// IntermediateView returns the intermediate texture's view, the
// render target cells are drawn into before this shader runs.
func (r *CustomShaderRenderer) IntermediateView() gpu.TextureView { return r.intermediateView }

// Render binds the pipeline, the intermediate texture as iChannel0 (or
// a configured channel-0 override texture), the remaining channels,
// and the uniform buffer, then draws a single triangle-strip quad to
// view. applyOpacity=false is used for an intermediate hop in a shader
// chain; true for the final surface draw.
//
// The actual GPU command encoding (bind group creation, draw call) is
// not implemented — same Phase-1 posture as
// cellrender.submitFramePass, grounded on render/gpu_renderer.go's
// software-fallback stub. The only state Render changes is the frame
// counter, which the next SetTime copies into the uniforms; no channel
// binding is selected and no uniform buffer is written.
func (r *CustomShaderRenderer) Render(view gpu.TextureView, applyOpacity bool) error {
	if r.active == nil {
		return nil
	}
	_ = view
	_ = applyOpacity
	r.frame++
	return nil
}

// ClearIntermediateTexture is called before each frame when chaining two
// CustomShaderRenderers. Like Render, it encodes no GPU work: no clear
// pass is issued against the intermediate texture, and it always
// returns nil.
func (r *CustomShaderRenderer) ClearIntermediateTexture() error {
	return nil
}

// Destroy releases the intermediate texture and any loaded channel/
// cubemap textures.
func (r *CustomShaderRenderer) Destroy() {
	if r.intermediate != nil {
		r.intermediate.Destroy()
	}
	for _, c := range r.channels {
		if c != nil {
			c.texture.Destroy()
		}
	}
	for _, c := range r.cubemap {
		if c != nil {
			c.texture.Destroy()
		}
	}
}
