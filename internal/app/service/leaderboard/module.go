package leaderboard

import "go.uber.org/fx"

// Module exposes the leaderboard service via Fx.
var Module = fx.Options(
	fx.Provide(New),
)
