package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func litPixels(f *Framebuffer) int {
	count := 0
	for _, row := range f.Rows() {
		for _, lit := range row {
			if lit {
				count++
			}
		}
	}
	return count
}

func TestFramebuffer_Clear(t *testing.T) {
	var f Framebuffer
	f.DrawSprite(0, 0, []byte{0xFF, 0xFF})
	f.ClearDirty()

	f.Clear()

	assert.True(t, f.Dirty())
	assert.Equal(t, 0, litPixels(&f))
	for y := range ScreenHeight {
		for x := range ScreenWidth {
			assert.False(t, f.Pixel(x, y))
		}
	}
}

func TestFramebuffer_DrawSprite(t *testing.T) {
	var f Framebuffer

	collision := f.DrawSprite(2, 3, []byte{0b1010_0001})

	assert.False(t, collision)
	assert.True(t, f.Dirty())
	assert.True(t, f.Pixel(2, 3))
	assert.False(t, f.Pixel(3, 3))
	assert.True(t, f.Pixel(4, 3))
	assert.True(t, f.Pixel(9, 3))
	assert.Equal(t, 3, litPixels(&f))
}

func TestFramebuffer_DrawTwiceRestores(t *testing.T) {
	var f Framebuffer
	f.DrawSprite(0, 0, []byte{0x0F})
	before := f.Rows()

	sprite := Font[0:5]
	assert.False(t, f.DrawSprite(10, 10, sprite))
	assert.True(t, f.DrawSprite(10, 10, sprite))
	assert.Equal(t, before, f.Rows())
}

func TestFramebuffer_OriginWraps(t *testing.T) {
	var f Framebuffer

	f.DrawSprite(ScreenWidth+1, ScreenHeight+2, []byte{0x80})

	assert.True(t, f.Pixel(1, 2))
	assert.Equal(t, 1, litPixels(&f))
}

func TestFramebuffer_ClipsAtEdges(t *testing.T) {
	var f Framebuffer

	f.DrawSprite(60, 30, []byte{0xFF, 0xFF, 0xFF, 0xFF})

	// 4 columns and 2 rows fit on screen
	assert.Equal(t, 8, litPixels(&f))
	assert.True(t, f.Pixel(63, 31))
	assert.False(t, f.Pixel(0, 30))
	assert.False(t, f.Pixel(60, 0))
}

func TestFramebuffer_DirtyWithoutChange(t *testing.T) {
	var f Framebuffer

	f.DrawSprite(0, 0, []byte{0x00})

	assert.True(t, f.Dirty())
	f.ClearDirty()
	assert.False(t, f.Dirty())
}

func TestFramebuffer_PixelOutOfRange(t *testing.T) {
	var f Framebuffer
	f.Clear()

	assert.False(t, f.Pixel(-1, 0))
	assert.False(t, f.Pixel(ScreenWidth, 0))
	assert.False(t, f.Pixel(0, ScreenHeight))
}
