package authz

import (
	"github.com/samber/lo"
	"go.uber.org/fx"

	"github.com/growthlab/boostup/pkg/config"
)

// Policy answers privileged-access questions. Every admin entry point
// consults the same injected instance instead of carrying its own list.
type Policy interface {
	IsAdmin(userID string) bool
}

type allowList struct {
	ids []string
}

// NewAllowList builds a Policy from a fixed set of user IDs.
func NewAllowList(ids []string) Policy {
	return &allowList{ids: lo.Uniq(ids)}
}

func (p *allowList) IsAdmin(userID string) bool {
	return userID != "" && lo.Contains(p.ids, userID)
}

func New(cfg *config.Config) Policy {
	return NewAllowList(cfg.AdminUserIDs)
}

var Module = fx.Options(
	fx.Provide(New),
)
