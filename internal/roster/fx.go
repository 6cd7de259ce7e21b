package roster

import "go.uber.org/fx"

var Module = fx.Module("roster",
	fx.Provide(NewClient),
	fx.Provide(NewSyncer),
)
