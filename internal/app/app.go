// Package app wires the window, renderer selection, input, and the frame
// loop into the model viewer application.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/engine/model"
	"github.com/Faultbox/meshview/internal/engine/render"
	"github.com/Faultbox/meshview/internal/engine/window"
	"github.com/Faultbox/meshview/internal/importer"
	"github.com/Faultbox/meshview/internal/logger"
)

// App is the viewer application.
type App struct {
	cfg      *config.Config
	window   *window.Window
	renderer render.Renderer
	input    *input.Input
	camera   *camera.ViewerCamera
	playback *Playback
	model    *model.Data

	wireOverlay bool
	dragging    bool
	// the blank-output fallback fires at most once per run
	fellBack bool
	running  bool
}

// New builds the application: window, model, renderer.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:         cfg,
		wireOverlay: cfg.Graphics.WireOverlay,
	}

	if cfg.Viewer.ModelPath != "" {
		m, err := importer.LoadOBJ(cfg.Viewer.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("load model %s: %w", cfg.Viewer.ModelPath, err)
		}
		a.model = m
		logger.Info("model loaded",
			zap.String("path", cfg.Viewer.ModelPath),
			zap.Int("vertices", len(m.Positions)),
			zap.Int("triangles", len(m.Indices)/3),
			zap.Int("submeshes", len(m.Submeshes)),
		)
	} else {
		logger.Warn("no model path given, window will show the empty scene")
	}

	win, err := window.New(window.Config{
		Title:  "MeshView",
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
		OpenGL: cfg.Graphics.Native,
	})
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	a.window = win

	renderer, err := initRenderer(win, cfg.Graphics)
	if err != nil {
		win.Close()
		return nil, err
	}
	a.renderer = renderer
	win.SetTitle(fmt.Sprintf("MeshView [%s]", renderer.Name()))

	a.input = input.New()
	a.camera = camera.New(
		cfg.Viewer.RotateSpeed,
		cfg.Viewer.ZoomStep,
		cfg.Viewer.MinZoom,
		cfg.Viewer.MaxZoom,
	)
	var clips []model.AnimationClip
	if a.model != nil {
		clips = a.model.Animations
	}
	a.playback = NewPlayback(clips)

	return a, nil
}

// Run drives the frame loop until quit.
func (a *App) Run() error {
	a.running = true
	lastTime := time.Now()

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()
		a.playback.Advance(dt)

		a.renderer.BeginFrame()
		a.renderer.RenderModelWireframe(
			a.model,
			a.camera.YawDeg,
			a.camera.PitchDeg,
			a.camera.RollDeg,
			a.camera.Distance,
			a.wireOverlay,
		)
		a.renderer.EndFrame()

		if err := a.checkBlankFallback(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) handleEvents() {
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventKeyDown:
			a.handleKey(e.Key)

		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				a.dragging = true
			}

		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				a.dragging = false
			}

		case input.EventMouseMove:
			if a.dragging {
				a.camera.HandleDrag(float32(e.RelX), float32(e.RelY))
			}

		case input.EventMouseWheel:
			a.camera.HandleZoom(float32(e.WheelY))
		}
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
	case sdl.SCANCODE_TAB:
		a.wireOverlay = !a.wireOverlay
	case sdl.SCANCODE_LEFTBRACKET:
		a.playback.Step(-1)
		a.logClip()
	case sdl.SCANCODE_RIGHTBRACKET:
		a.playback.Step(1)
		a.logClip()
	case sdl.SCANCODE_SPACE:
		a.playback.TogglePause()
	case sdl.SCANCODE_R:
		a.camera.Reset()
	}
}

func (a *App) logClip() {
	if a.playback.HasClips() {
		logger.Info("animation clip selected", zap.String("clip", a.playback.ClipName()))
	}
}

// shouldFallBack gates the runtime renderer swap: at most once per run, and
// never when the user forced a specific backend.
func shouldFallBack(requested render.Backend, alreadyFell, wentBlank bool) bool {
	return wentBlank && !alreadyFell && requested == render.BackendNone
}

// checkBlankFallback swaps an accelerated SDL backend for the software one
// when its watchdog reports nothing but clear color. Failing to bring up
// the software renderer is fatal.
func (a *App) checkBlankFallback() error {
	sdlRenderer, ok := a.renderer.(*render.SDLRenderer)
	if !ok {
		return nil
	}
	requested := render.ParseBackend(a.cfg.Graphics.Renderer)
	if !shouldFallBack(requested, a.fellBack, sdlRenderer.WentBlank()) {
		return nil
	}
	a.fellBack = true

	logger.Warn("falling back to the software renderer",
		zap.String("from", a.renderer.Name()),
	)
	a.renderer.Shutdown()

	software := render.NewSDLRenderer(render.BackendSoftware, a.cfg.Graphics.VSync)
	if err := software.Initialize(a.window.SDL()); err != nil {
		return fmt.Errorf("software renderer fallback failed: %w", err)
	}
	a.renderer = software
	a.window.SetTitle(fmt.Sprintf("MeshView [%s]", software.Name()))
	return nil
}

// Close shuts the renderer and window down and persists the config.
func (a *App) Close() {
	if a.renderer != nil {
		a.renderer.Shutdown()
		a.renderer = nil
	}
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
	if err := a.cfg.Save(); err != nil {
		logger.Warn("failed to save config", zap.Error(err))
	}
}
