package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthlab/boostup/pkg/types"
)

func TestGetPointPack(t *testing.T) {
	cfg := &Config{
		PointPacks: []*types.PointPack{
			{ID: "pack_small", ProviderPriceID: "price_100", Points: 100, Title: "Starter"},
			{ID: "pack_big", ProviderPriceID: "price_500", Points: 500, Title: "Creator"},
		},
	}

	p := cfg.GetPointPackByID("pack_big")
	require.NotNil(t, p)
	assert.Equal(t, int64(500), p.Points)

	p = cfg.GetPointPackByPriceID("price_100")
	require.NotNil(t, p)
	assert.Equal(t, "pack_small", p.ID)

	assert.Nil(t, cfg.GetPointPackByID("missing"))
	assert.Nil(t, cfg.GetPointPackByPriceID("price_999"))
}
