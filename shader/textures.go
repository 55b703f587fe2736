package shader

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/paulrobello/termcellrender/gpu"
)

// ImageLoader resolves a path to RGBA8 pixels plus dimensions, the
// same contract as cellrender.ImageLoader (§6.2's "Image loader: path
// → RGBA8 pixel buffer + dimensions"). Kept as its own interface here
// rather than imported from cellrender so the two packages stay
// independently usable — a host application wires the same concrete
// golang.org/x/image-backed implementation into both.
type ImageLoader interface {
	Load(path string) (pixels []byte, width, height int, err error)
}

// channelTexture is one loaded iChannel0..3 texture.
type channelTexture struct {
	texture gpu.Texture
	width   int
	height  int
}

// cubemapFace order matches WebGPU's cube-texture face convention:
// +X, -X, +Y, -Y, +Z, -Z.
var cubemapFaceSuffixes = [6]string{"_px", "_nx", "_py", "_ny", "_pz", "_nz"}

// loadChannelTextures loads up to four 2D channel textures from paths,
// skipping empty path entries. Per §7's ImageLoadError policy, a
// load failure is logged by the caller and that channel is left
// unbound rather than aborting construction of the whole renderer.
func loadChannelTextures(loader ImageLoader, paths [4]string) ([4]*channelTexture, []error) {
	var out [4]*channelTexture
	var errs []error
	for i, path := range paths {
		if path == "" || loader == nil {
			continue
		}
		pixels, w, h, err := loader.Load(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("shader: channel %d: %w", i, err))
			continue
		}
		out[i] = &channelTexture{texture: newUploadedTexture(pixels, w, h), width: w, height: h}
	}
	return out, errs
}

// loadCubemap loads six faces sharing a common path prefix (prefix +
// one of cubemapFaceSuffixes + ".png"; no other extension is tried).
// A missing or partially-present set of faces disables
// the cubemap entirely rather than binding a partial one.
func loadCubemap(loader ImageLoader, prefix string) ([6]*channelTexture, error) {
	var faces [6]*channelTexture
	if prefix == "" || loader == nil {
		return faces, nil
	}
	for i, suffix := range cubemapFaceSuffixes {
		path := prefix + suffix + ".png"
		pixels, w, h, err := loader.Load(path)
		if err != nil {
			return [6]*channelTexture{}, fmt.Errorf("shader: cubemap face %q: %w", path, err)
		}
		faces[i] = &channelTexture{texture: newUploadedTexture(pixels, w, h), width: w, height: h}
	}
	return faces, nil
}

// uploadedTexture is the Phase-1 in-memory stand-in for a GPU-resident
// channel texture, mirroring graphics.stagedTexture.
type uploadedTexture struct {
	pixels []byte
	width  int
	height int
}

func newUploadedTexture(pixels []byte, w, h int) *uploadedTexture {
	return &uploadedTexture{pixels: pixels, width: w, height: h}
}

func (t *uploadedTexture) Width() uint32                  { return uint32(t.width) }
func (t *uploadedTexture) Height() uint32                 { return uint32(t.height) }
func (t *uploadedTexture) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }
func (t *uploadedTexture) CreateView() gpu.TextureView    { return uploadedTextureView{} }
func (t *uploadedTexture) Destroy()                       {}

type uploadedTextureView struct{}

func (uploadedTextureView) Destroy() {}

var _ gpu.Texture = (*uploadedTexture)(nil)
