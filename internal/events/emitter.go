package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Emit delivers a payload to the webview. It is a no-op until the runtime emitter
// is enabled, so services can run outside a Wails context.
var Emit = func(ctx context.Context, name string, payload any) {}

// EnableRuntimeEmitter routes events and logs through the Wails runtime. Call it
// from OnStartup, once ctx carries the runtime.
func EnableRuntimeEmitter() {
	Emit = func(ctx context.Context, name string, payload any) {
		runtime.EventsEmit(ctx, name, payload)
	}
	logger = runtimeLogger{}
}

func SetCustomEmitter(f func(ctx context.Context, name string, payload any)) {
	if f == nil {
		Emit = func(context.Context, string, any) {}
		return
	}
	Emit = f
}
