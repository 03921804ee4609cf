package types

// PointPack is a purchasable one-time bundle of points, mapped to a provider
// price. Configured in pkg/config; the checkout flow snapshots the points
// amount into the checkout session metadata.
type PointPack struct {
	ID              string `json:"id" mapstructure:"id"`
	ProviderPriceID string `json:"provider_price_id" mapstructure:"provider_price_id"`
	Points          int64  `json:"points" mapstructure:"points"`
	Title           string `json:"title" mapstructure:"title"`
}
