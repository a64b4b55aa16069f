package wakey

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// initWindow creates the awake-test window at the top-left of the
// screen. Floating and non-resizable: the corridor geometry is fixed
// once generated, and the window must stay where the pointer offsets
// assume it is.
func initWindow(width, height int) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Floating, glfw.True)

	window, err := glfw.CreateWindow(width, height, "Wakey Wakey - Awake test", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.SetPos(0, 0)
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return window, nil
}

// GLFWPointer implements Pointer over the window cursor. Coordinates
// are relative to the window's content area, which is also canvas
// space up to the configured offsets.
type GLFWPointer struct {
	window *glfw.Window
}

func (p *GLFWPointer) Position() (int, int) {
	x, y := p.window.GetCursorPos()
	return int(x), int(y)
}

func (p *GLFWPointer) MoveTo(x, y int) {
	p.window.SetCursorPos(float64(x), float64(y))
}
