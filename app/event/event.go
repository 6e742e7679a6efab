// Package event defines the window events delivered by package app.
//
package event

import "github.com/go-gl/glfw/v3.3/glfw"

// Interface is implemented by all event types.
//
type Interface interface{}

// WindowClose is sent when the user attempts to close the window.
//
type WindowClose struct{}

// FrameBufferSize is sent when the frame buffer is resized. The renderer's
// viewport has already been updated when the event is delivered.
//
type FrameBufferSize struct {
	Width, Height int
}

type KeyDown struct {
	Key    glfw.Key
	Mods   glfw.ModifierKey
	Repeat bool
}

type KeyUp struct {
	Key  glfw.Key
	Mods glfw.ModifierKey
}

// FromKey converts a glfw key callback to a KeyDown or KeyUp event.
//
func FromKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) Interface {
	if action == glfw.Release {
		return KeyUp{Key: key, Mods: mods}
	}
	return KeyDown{Key: key, Mods: mods, Repeat: action == glfw.Repeat}
}
