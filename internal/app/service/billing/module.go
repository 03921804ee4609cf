package billing

import "go.uber.org/fx"

// Module exposes the subscription synchronizer via Fx. The Gateway is
// provided by the platform layer.
var Module = fx.Options(
	fx.Provide(NewService),
)
