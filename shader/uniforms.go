package shader

import (
	"encoding/binary"
	"math"
)

// Uniforms is the Shadertoy-compatible uniform set plus the
// terminal-specific additions from spec.md §4.7, in the stable layout
// the fragment shader binds at group 0. Fields are exported so tests
// can assert on them directly; CustomShaderRenderer's typed setters are
// the only way application code should mutate a live renderer's copy.
type Uniforms struct {
	Time      float32
	TimeDelta float32
	Frame     uint32

	Resolution [2]float32
	Mouse      [4]float32 // x, y, clickX, clickY

	// CursorPosition.Z packs opacity and a small flag set into one
	// float via packCursorFlags, since Shadertoy's uniform set has no
	// room for a fourth scalar here.
	CursorPosition [3]float32
	CursorColor    [4]float32

	Opacity     float32
	TextOpacity float32
	Brightness  float32

	BackgroundColor   [4]float32
	BackgroundIsSolid float32 // 0 or 1

	CellSize      [2]float32
	ContentOffset [2]float32
	ContentInset  [2]float32 // bottom, right

	UseBackgroundAsChannel0 float32 // 0 or 1
	KeepTextOpaque          float32 // 0 or 1
}

// packCursorFlags packs a cursor's opacity (clamped to [0, 0.999]) and
// a small flag bitset into a single float: flags occupy the integer
// part, opacity the fractional part. A shader unpacks them with
// floor()/fract().
func packCursorFlags(opacity float64, flags uint8) float32 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 0.999 {
		opacity = 0.999
	}
	return float32(flags) + float32(opacity)
}

// Bytes packs the uniform block into a byte slice suitable for a
// write_buffer call, in 16-byte rows: the leading scalars share one row,
// iResolution and the vec3 cursor position are each padded out to a full
// row, and the remaining scalars and vec2 fields pack four floats to a
// row.
func (u Uniforms) Bytes() []byte {
	buf := make([]byte, 0, 256)
	putF32 := func(v float32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
		buf = append(buf, b[:]...)
	}
	putU32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		buf = append(buf, b[:]...)
	}
	pad := func(n int) {
		buf = append(buf, make([]byte, n)...)
	}

	putF32(u.Time)
	putF32(u.TimeDelta)
	putU32(u.Frame)
	pad(4) // align iResolution to 16 bytes

	putF32(u.Resolution[0])
	putF32(u.Resolution[1])
	pad(8)

	for _, v := range u.Mouse {
		putF32(v)
	}
	for _, v := range u.CursorPosition {
		putF32(v)
	}
	pad(4)
	for _, v := range u.CursorColor {
		putF32(v)
	}

	putF32(u.Opacity)
	putF32(u.TextOpacity)
	putF32(u.Brightness)
	putF32(u.BackgroundIsSolid)

	for _, v := range u.BackgroundColor {
		putF32(v)
	}

	putF32(u.CellSize[0])
	putF32(u.CellSize[1])
	putF32(u.ContentOffset[0])
	putF32(u.ContentOffset[1])

	putF32(u.ContentInset[0])
	putF32(u.ContentInset[1])
	putF32(u.UseBackgroundAsChannel0)
	putF32(u.KeepTextOpaque)

	return buf
}
