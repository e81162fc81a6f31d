package main

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
)

// keyZoomStep is the zoom applied per tick while W or S is held.
const keyZoomStep = 0.05

// controls collects window input between ticks and applies it to the camera controller.
// Window callbacks and ticks both run on the message loop thread.
type controls struct {
	held map[uint32]bool

	dragging bool
	panning  bool
	lastX    int32
	lastY    int32
	dragX    float32
	dragY    float32
	scroll   float32

	wireframe     bool
	showTexCoords bool
	profile       bool
	reset         bool
}

func newControls(wireframe, profile bool) *controls {
	return &controls{held: make(map[uint32]bool), wireframe: wireframe, profile: profile}
}

func (c *controls) keyDown(code uint32) {
	// Toggles fire on the initial press only, not on key repeat.
	if c.held[code] {
		return
	}
	c.held[code] = true

	switch code {
	case common.KeyH:
		c.wireframe = !c.wireframe
	case common.KeyN:
		c.showTexCoords = !c.showTexCoords
	case common.KeyP:
		c.profile = !c.profile
	case common.KeyR:
		c.reset = true
	}
}

func (c *controls) keyUp(code uint32) {
	delete(c.held, code)
}

func (c *controls) shiftHeld() bool {
	return c.held[common.KeyLeftShift] || c.held[common.KeyRightShift]
}

func (c *controls) middleDown(x, y int32) {
	c.dragging = true
	c.panning = c.shiftHeld()
	c.lastX, c.lastY = x, y
}

func (c *controls) middleUp(x, y int32) {
	c.mouseMove(x, y)
	c.dragging = false
}

func (c *controls) mouseMove(x, y int32) {
	if !c.dragging {
		return
	}
	c.dragX += float32(x - c.lastX)
	c.dragY += float32(y - c.lastY)
	c.lastX, c.lastY = x, y
}

func (c *controls) scrolled(delta float32) {
	c.scroll += delta
}

// apply moves the camera by the held keys and the input accumulated since the last tick.
func (c *controls) apply(ctrl camera.CameraController) {
	if c.reset {
		ctrl.Reset()
		c.reset = false
	}

	if c.held[common.KeyA] {
		ctrl.OrbitLeft()
	}
	if c.held[common.KeyD] {
		ctrl.OrbitRight()
	}
	if c.held[common.KeyQ] {
		ctrl.OrbitUp()
	}
	if c.held[common.KeyE] {
		ctrl.OrbitDown()
	}
	if c.held[common.KeyW] {
		ctrl.Zoom(keyZoomStep)
	}
	if c.held[common.KeyS] {
		ctrl.Zoom(-keyZoomStep)
	}

	if c.dragX != 0 || c.dragY != 0 {
		if c.panning {
			ctrl.PanRight(-c.dragX)
			ctrl.PanUp(c.dragY)
		} else {
			ctrl.Orbit(c.dragX, c.dragY)
		}
		c.dragX, c.dragY = 0, 0
	}

	if c.scroll != 0 {
		ctrl.Zoom(c.scroll)
		c.scroll = 0
	}
}
