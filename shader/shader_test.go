package shader

import (
	"fmt"
	"testing"
	"time"

	"github.com/paulrobello/termcellrender/gpu"
)

const validSource = "void mainImage(out vec4 fragColor, in vec2 fragCoord) { fragColor = vec4(1.0); }"

type fakeLoader struct {
	fail map[string]bool
}

func (f fakeLoader) Load(path string) ([]byte, int, int, error) {
	if f.fail[path] {
		return nil, 0, 0, fmt.Errorf("fake load failure: %s", path)
	}
	return make([]byte, 4*4*4), 4, 4, nil
}

func TestNew_CompilesAndSizesIntermediateTexture(t *testing.T) {
	r, err := New(gpu.NullDeviceHandle{}, Config{Source: validSource}, nil, 800, 600)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.Uniforms().Resolution != [2]float32{800, 600} {
		t.Fatalf("unexpected resolution: %+v", r.Uniforms().Resolution)
	}
}

func TestNew_RejectsBadSource(t *testing.T) {
	if _, err := New(gpu.NullDeviceHandle{}, Config{Source: ""}, nil, 100, 100); err == nil {
		t.Fatal("expected error for empty shader source")
	}
}

func TestNew_LoadsChannelTextures(t *testing.T) {
	cfg := Config{
		Source:       validSource,
		ChannelPaths: [4]string{"a.png", "", "c.png", ""},
	}
	r, err := New(gpu.NullDeviceHandle{}, cfg, fakeLoader{}, 100, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.channels[0] == nil || r.channels[2] == nil {
		t.Fatal("expected channels 0 and 2 to be loaded")
	}
	if r.channels[1] != nil || r.channels[3] != nil {
		t.Fatal("expected channels 1 and 3 to stay unbound (empty path)")
	}
}

func TestNew_ChannelLoadFailureLeavesChannelUnbound(t *testing.T) {
	cfg := Config{Source: validSource, ChannelPaths: [4]string{"missing.png", "", "", ""}}
	r, err := New(gpu.NullDeviceHandle{}, cfg, fakeLoader{fail: map[string]bool{"missing.png": true}}, 100, 100)
	if err != nil {
		t.Fatalf("New should not fail construction on a channel load error: %v", err)
	}
	if r.channels[0] != nil {
		t.Fatal("expected failed channel to stay unbound")
	}
}

func TestResize_UpdatesResolutionUniform(t *testing.T) {
	r, err := New(gpu.NullDeviceHandle{}, Config{Source: validSource}, nil, 100, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.Resize(1920, 1080); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if r.Uniforms().Resolution != [2]float32{1920, 1080} {
		t.Fatalf("unexpected resolution after resize: %+v", r.Uniforms().Resolution)
	}
}

func TestReloadFromSource_KeepsOldPipelineOnFailure(t *testing.T) {
	r, err := New(gpu.NullDeviceHandle{}, Config{Source: validSource}, nil, 100, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := r.active

	if err := r.ReloadFromSource(""); err == nil {
		t.Fatal("expected reload with empty source to fail")
	}
	if r.active != before {
		t.Fatal("expected active pipeline to stay unchanged after a failed reload")
	}

	if err := r.ReloadFromSource(validSource + " // v2"); err != nil {
		t.Fatalf("expected successful reload, got %v", err)
	}
	if r.active == before {
		t.Fatal("expected active pipeline to change after a successful reload")
	}
}

func TestCursorNeedsAnimation_DecaysAfterTrailDuration(t *testing.T) {
	r, err := New(gpu.NullDeviceHandle{}, Config{Source: validSource}, nil, 100, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	now := time.Now()
	if r.CursorNeedsAnimation(now) {
		t.Fatal("expected no animation before any cursor movement")
	}
	r.NotifyCursorMoved(now)
	if !r.CursorNeedsAnimation(now.Add(100 * time.Millisecond)) {
		t.Fatal("expected animation still active shortly after cursor move")
	}
	if r.CursorNeedsAnimation(now.Add(time.Second)) {
		t.Fatal("expected animation to have decayed after the trail duration")
	}
}

func TestSetTime_AccumulatesScaledByAnimationSpeed(t *testing.T) {
	r, err := New(gpu.NullDeviceHandle{}, Config{Source: validSource, AnimationSpeed: 2}, nil, 100, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t0 := time.Now()
	r.SetTime(t0)
	if r.Uniforms().Time != 0 {
		t.Fatalf("expected zero time delta on first SetTime, got %v", r.Uniforms().Time)
	}
	r.SetTime(t0.Add(500 * time.Millisecond))
	got := r.Uniforms().Time
	want := float32(1.0) // 0.5s * speed 2
	if got < want-0.01 || got > want+0.01 {
		t.Fatalf("expected accumulated time ~%v, got %v", want, got)
	}
}

func TestRender_NoopsWithoutActivePipeline(t *testing.T) {
	r := &CustomShaderRenderer{}
	if err := r.Render(nil, true); err != nil {
		t.Fatalf("expected nil error from a no-op render, got %v", err)
	}
}

func TestSetBackgroundColor_TogglesSolidFlag(t *testing.T) {
	r, err := New(gpu.NullDeviceHandle{}, Config{Source: validSource}, nil, 100, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.SetBackgroundColor([4]float32{1, 0, 0, 1}, true)
	if r.Uniforms().BackgroundIsSolid != 1 {
		t.Fatal("expected BackgroundIsSolid = 1")
	}
	r.SetBackgroundColor([4]float32{1, 0, 0, 1}, false)
	if r.Uniforms().BackgroundIsSolid != 0 {
		t.Fatal("expected BackgroundIsSolid = 0")
	}
}
