package chip8

// Framebuffer dimensions in pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// spriteWidth is the fixed width of a sprite in pixels, one byte per row.
const spriteWidth = 8

// Framebuffer is the monochrome pixel grid of the machine.
// The dirty flag is set by every pixel mutation and cleared by the host
// once it has presented the frame.
type Framebuffer struct {
	pixels [ScreenHeight][ScreenWidth]bool
	dirty  bool
}

// Clear turns all pixels off and marks the framebuffer dirty.
func (f *Framebuffer) Clear() {
	f.pixels = [ScreenHeight][ScreenWidth]bool{}
	f.dirty = true
}

// Pixel returns whether the pixel at the given coordinate is lit.
// Coordinates outside the screen return false.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	return f.pixels[y][x]
}

// Rows returns a copy of the pixel grid, indexed by row then column.
func (f *Framebuffer) Rows() [ScreenHeight][ScreenWidth]bool {
	return f.pixels
}

// Dirty returns whether the framebuffer changed since the last ClearDirty call.
func (f *Framebuffer) Dirty() bool {
	return f.dirty
}

// ClearDirty resets the dirty flag after the frame was presented.
func (f *Framebuffer) ClearDirty() {
	f.dirty = false
}

// DrawSprite XORs the sprite rows into the framebuffer at the given origin and
// returns whether any lit pixel was turned off. The origin wraps around the
// screen, pixels that would cross the right or bottom edge are clipped.
// The framebuffer is always marked dirty.
func (f *Framebuffer) DrawSprite(x, y uint8, sprite []byte) bool {
	originX := int(x) % ScreenWidth
	originY := int(y) % ScreenHeight
	collision := false

	for row, data := range sprite {
		py := originY + row
		if py >= ScreenHeight {
			break
		}

		for bit := range spriteWidth {
			px := originX + bit
			if px >= ScreenWidth {
				break
			}
			if data&(0x80>>bit) == 0 {
				continue
			}

			if f.pixels[py][px] {
				collision = true
			}
			f.pixels[py][px] = !f.pixels[py][px]
		}
	}

	f.dirty = true
	return collision
}

func (f *Framebuffer) reset() {
	f.pixels = [ScreenHeight][ScreenWidth]bool{}
	f.dirty = false
}
