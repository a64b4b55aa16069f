package wakey

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Canvas capacity: segment count stays small on any sane canvas, this
// just bounds the preallocated vertex buffer.
const maxCanvasRects = 1024

// glOffset converts a byte offset to unsafe.Pointer for GL VBO offset
// params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type rgba struct{ r, g, b, a float32 }

// Marker and corridor colors per pixel class; the background clear is
// white (the wall).
var classColors = map[PixelClass]rgba{
	ClassCorridor: {0, 0, 0, 1},
	ClassStart:    {0, 0.6, 0, 1},
	ClassGoal:     {0.85, 0, 0, 1},
}

type glRect struct {
	id    RectID
	rect  Rect
	class PixelClass
}

// GLCanvas implements Canvas on a glfw window: rectangles are retained
// in draw order and replayed every Refresh, so overlap queries see
// exactly what is on screen.
type GLCanvas struct {
	window *glfw.Window

	prog uint32
	vao  uint32
	vbo  uint32
	uRes int32

	rects  []glRect
	nextID RectID
	buf    []float32
}

func NewGLCanvas(window *glfw.Window) (*GLCanvas, error) {
	prog, err := linkProgram(rectVertSrc, rectFragSrc)
	if err != nil {
		return nil, fmt.Errorf("rect program: %w", err)
	}

	gl.UseProgram(prog)
	uRes := gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))

	// Per-vertex pos(2) + color(4) = 6 floats.
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := int32(6 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxCanvasRects*6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aColor
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, glOffset(2*4))
	gl.BindVertexArray(0)

	return &GLCanvas{
		window: window,
		prog:   prog,
		vao:    vao,
		vbo:    vbo,
		uRes:   uRes,
		nextID: 1,
	}, nil
}

func (c *GLCanvas) Size() (int, int) {
	return c.window.GetSize()
}

func (c *GLCanvas) FillRect(r Rect, class PixelClass) RectID {
	id := c.nextID
	c.nextID++
	c.rects = append(c.rects, glRect{id: id, rect: r, class: class})
	return id
}

func (c *GLCanvas) Delete(id RectID) {
	for i := range c.rects {
		if c.rects[i].id == id {
			c.rects = append(c.rects[:i], c.rects[i+1:]...)
			return
		}
	}
}

func (c *GLCanvas) ClassesAt(p Point) []PixelClass {
	var classes []PixelClass
	for i := range c.rects {
		if c.rects[i].rect.Contains(p) {
			classes = append(classes, c.rects[i].class)
		}
	}
	return classes
}

// Refresh pumps window events and repaints the retained rectangles.
func (c *GLCanvas) Refresh() {
	glfw.PollEvents()

	fbW, fbH := c.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(1, 1, 1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	c.buf = c.buf[:0]
	for i := range c.rects {
		c.appendRect(c.rects[i])
	}

	if len(c.buf) > 0 {
		w, h := c.window.GetSize()
		gl.UseProgram(c.prog)
		gl.Uniform2f(c.uRes, float32(w), float32(h))
		gl.BindVertexArray(c.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(c.buf)*4, gl.Ptr(c.buf))
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(c.buf)/6))
		gl.BindVertexArray(0)
	}

	c.window.SwapBuffers()
}

// appendRect emits two triangles. Thin centerline rectangles have zero
// extent on one axis; give them a hairline so the reveal animation is
// visible before the thickening pass.
func (c *GLCanvas) appendRect(r glRect) {
	if len(c.buf) >= maxCanvasRects*6*6 {
		return
	}
	col := classColors[r.class]
	x0 := float32(r.rect.X0)
	y0 := float32(r.rect.Y0)
	x1 := float32(r.rect.X1)
	y1 := float32(r.rect.Y1)
	if x1 == x0 {
		x1++
	}
	if y1 == y0 {
		y1++
	}
	c.buf = append(c.buf,
		x0, y0, col.r, col.g, col.b, col.a,
		x1, y0, col.r, col.g, col.b, col.a,
		x0, y1, col.r, col.g, col.b, col.a,
		x1, y0, col.r, col.g, col.b, col.a,
		x1, y1, col.r, col.g, col.b, col.a,
		x0, y1, col.r, col.g, col.b, col.a,
	)
}
