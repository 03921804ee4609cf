package app

import (
	"time"

	"github.com/growthlab/boostup/internal/app/api/server"
	"github.com/growthlab/boostup/internal/app/service/ads"
	"github.com/growthlab/boostup/internal/app/service/billing"
	"github.com/growthlab/boostup/internal/app/service/content"
	"github.com/growthlab/boostup/internal/app/service/engagement"
	"github.com/growthlab/boostup/internal/app/service/eventlog"
	"github.com/growthlab/boostup/internal/app/service/leaderboard"
	"github.com/growthlab/boostup/internal/app/service/ledger"
	"github.com/growthlab/boostup/internal/app/service/progression"
	"github.com/growthlab/boostup/internal/app/service/statistics"
	"github.com/growthlab/boostup/internal/platform/cache"
	"github.com/growthlab/boostup/internal/platform/db"
	"github.com/growthlab/boostup/internal/platform/stripegw"
	"github.com/growthlab/boostup/pkg/authz"
	"github.com/growthlab/boostup/pkg/config"
	"github.com/growthlab/boostup/pkg/logger"

	"go.uber.org/fx"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	cache.Module,
	authz.Module,
	server.Module,
	stripegw.Module,
	leaderboard.Module,
	ledger.Module,
	progression.Module,
	engagement.Module,
	content.Module,
	billing.Module,
	eventlog.Module,
	statistics.Module,
	ads.Module,
)
