package app

import (
	"context"
	"fmt"

	"github.com/vk/gategrid/internal/circuit"
	"github.com/vk/gategrid/internal/ctxlog"
	"github.com/vk/gategrid/internal/editor"
	"github.com/vk/gategrid/internal/raster"
	"github.com/vk/gategrid/internal/replay"
)

// Run executes one task against the configured scene.
func (a *App) Run(ctx context.Context, task Task) (err error) {
	ctx = ctxlog.With(ctxlog.WithLogger(ctx, a.logger), "task", string(task.Kind))
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	if err := validate.Struct(&task); err != nil {
		return describeValidation(err)
	}
	if task.Save && a.config.SceneFile == "" {
		return fmt.Errorf("--save needs a scene file")
	}

	a.healthCheckServer()
	defer func() {
		if cerr := a.closeHealthCheckServer(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	sc, err := a.openScene(ctx)
	if err != nil {
		return fmt.Errorf("failed to open scene: %w", err)
	}
	defer sc.close()
	ctx = ctxlog.With(ctx, "scene", sc.id)

	ctrl, reporter, err := a.newController(ctx, sc)
	if err != nil {
		return err
	}

	switch task.Kind {
	case TaskCheck:
	case TaskRender:
		if err := a.render(ctx, ctrl, task.OutPath); err != nil {
			return err
		}
	case TaskReplay:
		script, err := replay.LoadFile(ctx, task.ScriptPath)
		if err != nil {
			return err
		}
		logger.Info("🚀 Replaying script...", "steps", len(script.Steps))
		if err := replay.Run(ctx, ctrl, script); err != nil {
			return fmt.Errorf("replay failed: %w", err)
		}
		if task.Save {
			if err := a.save(ctx, sc); err != nil {
				return err
			}
		}
		if task.OutPath != "" {
			if err := a.render(ctx, ctrl, task.OutPath); err != nil {
				return err
			}
		}
	}

	graph := ctrl.Graph()
	writeReport(a.outW, sc.id, graph, ctrl.Signals(), circuit.FeedbackGates(graph), reporter.errs)

	logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) render(ctx context.Context, ctrl *editor.Controller, path string) error {
	view := ctrl.Viewport()
	canvas := raster.New(view.Width, view.Height)
	ctrl.Render(canvas)
	if err := canvas.SavePNG(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Info("🏁 Frame rendered.", "path", path, "width", view.Width, "height", view.Height)
	return nil
}
