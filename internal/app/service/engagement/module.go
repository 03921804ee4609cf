package engagement

import "go.uber.org/fx"

// Module exposes the engagement actions via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
