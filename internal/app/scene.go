package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/gategrid/internal/ctxlog"
	"github.com/vk/gategrid/internal/editor"
	"github.com/vk/gategrid/internal/hclscene"
	"github.com/vk/gategrid/internal/inmemoryscene"
	"github.com/vk/gategrid/internal/metrics"
	"github.com/vk/gategrid/internal/scenestore"
	"github.com/vk/gategrid/internal/socketscene"
)

// scene is an opened scene source.
type scene struct {
	id    string
	store scenestore.Store
	// local is set when the scene comes from a file and can be saved back.
	local *inmemoryscene.Store
	close func() error
}

// openScene connects to the configured scene source. Every store call is
// instrumented.
func (a *App) openScene(ctx context.Context) (*scene, error) {
	logger := ctxlog.FromContext(ctx)

	if a.config.BackendURL != "" {
		client, err := socketscene.Dial(ctx, socketscene.Options{
			URL:                a.config.BackendURL,
			Namespace:          a.config.Namespace,
			InsecureSkipVerify: a.config.InsecureSkipVerify,
			Timeout:            a.config.Timeout,
		})
		if err != nil {
			return nil, err
		}
		id := a.config.SceneID
		if id == "" {
			id = hclscene.DefaultSceneID
		}
		logger.Info("Using remote scene.", "scene", id, "url", a.config.BackendURL)
		return &scene{id: id, store: metrics.InstrumentStore(client), close: client.Close}, nil
	}

	file, err := hclscene.Load(ctx, a.config.SceneFile)
	if err != nil {
		return nil, err
	}
	if a.config.SceneID != "" && a.config.SceneID != file.ID {
		return nil, fmt.Errorf("scene file %s holds scene '%s', not '%s'", a.config.SceneFile, file.ID, a.config.SceneID)
	}
	local := inmemoryscene.New()
	local.Seed(file.Gates, file.Wires)
	logger.Info("Using scene file.", "scene", file.ID, "path", a.config.SceneFile, "gates", len(file.Gates), "wires", len(file.Wires))

	return &scene{
		id:    file.ID,
		store: metrics.InstrumentStore(local),
		local: local,
		close: func() error { return nil },
	}, nil
}

// save writes a file-backed scene back to its file.
func (a *App) save(ctx context.Context, sc *scene) error {
	if sc.local == nil {
		return errors.New("only a scene loaded from a file can be saved")
	}
	gates, err := sc.local.ListGates(ctx, sc.id)
	if err != nil {
		return err
	}
	wires, err := sc.local.ListWires(ctx, sc.id)
	if err != nil {
		return err
	}
	return hclscene.Save(ctx, a.config.SceneFile, &hclscene.Scene{ID: sc.id, Gates: gates, Wires: wires})
}

// errorCounter is an editor.Reporter that remembers errors for the final
// report. The controller already logs them.
type errorCounter struct {
	errs []error
}

func (r *errorCounter) Report(_ context.Context, err error) {
	r.errs = append(r.errs, err)
}

// newController creates a controller over sc, loads the scene, and applies
// the configured pins.
func (a *App) newController(ctx context.Context, sc *scene) (*editor.Controller, *errorCounter, error) {
	logger := ctxlog.FromContext(ctx)
	reporter := &errorCounter{}

	ctrl := editor.New(sc.store, a.catalog, editor.Options{
		SceneID:  sc.id,
		Settings: a.model.Editor,
		Reporter: reporter,
	})
	if err := ctrl.Load(ctx); err != nil {
		return nil, reporter, fmt.Errorf("failed to load scene '%s': %w", sc.id, err)
	}

	for id, v := range a.config.Pins {
		if _, ok := ctrl.Graph().Gate(id); !ok {
			logger.Warn("Pinned gate is not in the graph.", "gate", id)
		}
		ctrl.Pin(id, v)
	}
	return ctrl, reporter, nil
}
