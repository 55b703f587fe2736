package main

import "github.com/paulrobello/termcellrender/gpu"

// nullSurface stands in for a real window swapchain: it hands back a
// texture view that discards everything drawn to it. Used so the demo
// can drive the full CPU-side renderer/compositor pipeline without a
// display.
type nullSurface struct{}

func (s *nullSurface) AcquireNextTexture() (gpu.SurfaceTexture, error) {
	return &nullSurfaceTexture{}, nil
}

func (s *nullSurface) Reconfigure(cfg gpu.SurfaceConfig) error { return nil }

type nullSurfaceTexture struct{}

func (t *nullSurfaceTexture) View() gpu.TextureView { return nullTextureView{} }
func (t *nullSurfaceTexture) Present()              {}
func (t *nullSurfaceTexture) Discard()              {}

type nullTextureView struct{}

func (nullTextureView) Destroy() {}
