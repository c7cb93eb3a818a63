package editor

import (
	"context"

	"github.com/vk/gategrid/internal/ctxlog"
)

// Reporter receives errors the user should be told about: failed backend
// requests and rejected graph builds.
type Reporter interface {
	Report(ctx context.Context, err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, err error)

// Report calls f.
func (f ReporterFunc) Report(ctx context.Context, err error) { f(ctx, err) }

// LogReporter reports errors to the context logger.
var LogReporter = ReporterFunc(func(ctx context.Context, err error) {
	ctxlog.FromContext(ctx).Error("Editor error.", "error", err)
})
