package stripegw

import "go.uber.org/fx"

// Module provides the Stripe-backed billing gateway.
var Module = fx.Options(
	fx.Provide(New),
)
