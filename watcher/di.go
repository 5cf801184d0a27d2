package watcher

import (
	"go.uber.org/fx"
)

// NewModule creates an Fx module running a save watcher for the given
// config. The watcher starts with the application and stops on shutdown.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(cfg Config) fx.Option {
	return fx.Module("watcher",
		fx.Supply(cfg),
		fx.Provide(New),
		fx.Invoke(func(lifecycle fx.Lifecycle, w *Watcher) {
			lifecycle.Append(fx.Hook{
				OnStart: w.Start,
				OnStop:  w.Stop,
			})
		}),
	)
}
