package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/render"
	"github.com/Faultbox/meshview/internal/engine/render/native"
	"github.com/Faultbox/meshview/internal/engine/window"
	"github.com/Faultbox/meshview/internal/logger"
)

// rendererAttempt is one entry in the startup attempt plan.
type rendererAttempt struct {
	backend render.Backend
	native  bool
}

func (a rendererAttempt) name() string {
	if a.native {
		return "native"
	}
	return a.backend.Name()
}

// planAttempts builds the ordered list of renderers to try. The native
// renderer takes the primary hardware slot when enabled; a forced backend
// yields exactly one attempt with no fallback.
func planAttempts(requested render.Backend, useNative bool) []rendererAttempt {
	order := render.BuildAttemptOrder(requested)
	attempts := make([]rendererAttempt, 0, len(order)+1)
	for i, b := range order {
		if i == 0 && useNative && b == render.BackendDx12 {
			attempts = append(attempts, rendererAttempt{backend: b, native: true})
			if requested != render.BackendNone {
				continue
			}
		}
		attempts = append(attempts, rendererAttempt{backend: b})
	}
	return attempts
}

// initRenderer tries each planned renderer until one initializes. The
// configured backend name must parse; a typo is a startup error, not a
// silent fallback to the automatic order.
func initRenderer(win *window.Window, g config.GraphicsConfig) (render.Renderer, error) {
	requested := render.ParseBackend(g.Renderer)
	if requested == render.BackendNone && g.Renderer != "" {
		return nil, fmt.Errorf("unknown renderer %q (want dx12, vulkan, or software)", g.Renderer)
	}

	var lastErr error
	for _, attempt := range planAttempts(requested, g.Native) {
		var r render.Renderer
		if attempt.native {
			r = native.New(g.VSync)
		} else {
			r = render.NewSDLRenderer(attempt.backend, g.VSync)
		}

		if err := r.Initialize(win.SDL()); err != nil {
			logger.Warn("renderer failed to initialize, trying next",
				zap.String("renderer", attempt.name()),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		logger.Info("renderer selected", zap.String("renderer", r.Name()))
		return r, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("no renderer could initialize: %w", lastErr)
	}
	return nil, fmt.Errorf("no renderer could initialize")
}
