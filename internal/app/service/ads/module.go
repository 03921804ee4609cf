package ads

import "go.uber.org/fx"

// Module exposes the ad unit service via Fx.
var Module = fx.Options(
	fx.Provide(New),
)
