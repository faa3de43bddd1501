package events

import (
	"context"
	"log"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

type eventLogger interface {
	Info(ctx context.Context, msg string)
	Warn(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

var logger eventLogger = stdLogger{}

func LogInfo(ctx context.Context, msg string)  { logger.Info(ctx, msg) }
func LogWarn(ctx context.Context, msg string)  { logger.Warn(ctx, msg) }
func LogError(ctx context.Context, msg string) { logger.Error(ctx, msg) }

// UseStdLogger restores the std log backend, e.g. after tests or on shutdown.
func UseStdLogger() {
	logger = stdLogger{}
}

type stdLogger struct{}

func (stdLogger) Info(_ context.Context, msg string)  { log.Printf("INFO  %s", msg) }
func (stdLogger) Warn(_ context.Context, msg string)  { log.Printf("WARN  %s", msg) }
func (stdLogger) Error(_ context.Context, msg string) { log.Printf("ERROR %s", msg) }

type runtimeLogger struct{}

func (runtimeLogger) Info(ctx context.Context, msg string)  { runtime.LogInfo(ctx, msg) }
func (runtimeLogger) Warn(ctx context.Context, msg string)  { runtime.LogWarning(ctx, msg) }
func (runtimeLogger) Error(ctx context.Context, msg string) { runtime.LogError(ctx, msg) }
