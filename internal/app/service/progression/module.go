package progression

import "go.uber.org/fx"

// Module exposes the progression service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
