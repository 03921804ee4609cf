package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/growthlab/boostup/internal/app/service/ledger"
	"github.com/growthlab/boostup/internal/models"
	"github.com/growthlab/boostup/pkg/config"
	"github.com/growthlab/boostup/pkg/logctx"
	"github.com/growthlab/boostup/pkg/tool"
	"github.com/growthlab/boostup/pkg/types"
)

// ErrNoBillingCustomer marks a portal request for a user the provider does
// not know yet.
var ErrNoBillingCustomer = errors.New("no billing customer for user")

// Service reconciles provider-reported billing state into the local
// SubscriptionRecord. Both entry points (webhook and poll) funnel into the
// same upsert so they converge on one state model.
type Service struct {
	cfg    *config.Config
	db     *gorm.DB
	log    *zap.SugaredLogger
	gw     Gateway
	ledger *ledger.Service
}

func NewService(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger, gw Gateway, led *ledger.Service) *Service {
	return &Service{cfg: cfg, db: db, log: log, gw: gw, ledger: led}
}

// PollStatus queries the provider by account email and reconciles the local
// record. PointsEarnedToday resets lazily when the calendar day advanced
// past LastPointsReset.
func (s *Service) PollStatus(ctx context.Context, userID, email string) (*types.SubscriptionInfo, error) {
	customerID, err := s.gw.FindCustomerID(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find billing customer: %w", err)
	}

	record, err := s.loadOrInitRecord(ctx, userID)
	if err != nil {
		return nil, err
	}
	record.BillingCustomerID = customerID

	if customerID == "" {
		record.Subscribed = false
		record.Tier = types.SubscriptionTierFree
		record.SubscriptionEnd = nil
	} else {
		sub, err := s.gw.ActiveSubscription(ctx, customerID)
		if err != nil {
			return nil, fmt.Errorf("failed to query subscription: %w", err)
		}
		if sub == nil {
			record.Subscribed = false
			record.Tier = types.SubscriptionTierFree
			record.SubscriptionEnd = nil
		} else {
			end := sub.PeriodEnd
			record.Subscribed = true
			record.Tier = s.tierForPrice(sub.PriceID)
			record.SubscriptionEnd = &end
		}
	}
	s.resetDailyPointsIfStale(record)

	if err := s.upsertRecord(ctx, s.db, record, types.SubscriptionChangeReasonPoll); err != nil {
		return nil, err
	}
	return &types.SubscriptionInfo{
		Subscribed: record.Subscribed,
		Tier:       record.Tier,
		ExpireAt:   record.SubscriptionEnd,
	}, nil
}

// ApplyEvent applies one verified webhook event. Replays are no-ops: the
// processed-event insert and every effect share one transaction, keyed on
// the provider event id, so a redelivered event cannot double-award points.
func (s *Service) ApplyEvent(ctx context.Context, ev *types.BillingEvent) error {
	if ev == nil || ev.ID == "" {
		return fmt.Errorf("invalid billing event")
	}

	userID := ev.UserID
	if userID == "" && ev.CustomerID != "" {
		userID = s.userForCustomer(ctx, ev.CustomerID)
	}
	if userID == "" {
		logctx.FromCtx(ctx, s.log).Warnw("billing_event_unlinked_customer",
			"event_id", ev.ID, "kind", ev.Kind, "customer_id", ev.CustomerID)
		return nil
	}

	duplicate := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mark := &models.ProcessedBillingEvent{EventID: ev.ID, Kind: string(ev.Kind), UserID: userID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(mark)
		if res.Error != nil {
			return fmt.Errorf("failed to mark event processed: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			duplicate = true
			return nil
		}
		return s.applyEventTx(ctx, tx, userID, ev)
	})
	if err != nil {
		return fmt.Errorf("failed to apply billing event %s: %w", ev.ID, err)
	}
	if duplicate {
		logctx.FromCtx(ctx, s.log).Infow("billing_event_replay_skipped", "event_id", ev.ID, "kind", ev.Kind)
		return nil
	}
	// The cache mirror waits for the commit; a rolled-back grant must never
	// reach the leaderboard.
	s.ledger.MirrorBalance(ctx, userID)
	return nil
}

func (s *Service) applyEventTx(ctx context.Context, tx *gorm.DB, userID string, ev *types.BillingEvent) error {
	record, err := s.loadOrInitRecordTx(ctx, tx, userID)
	if err != nil {
		return err
	}
	if ev.CustomerID != "" {
		record.BillingCustomerID = ev.CustomerID
	}

	switch ev.Kind {
	case types.BillingEventCheckoutCompleted:
		switch ev.CheckoutMode {
		case types.CheckoutModeSubscription:
			record.Subscribed = true
			record.Tier = ev.Tier
			if record.Tier == types.SubscriptionTierFree {
				record.Tier = types.SubscriptionTierPremium
			}
			record.SubscriptionEnd = ev.PeriodEnd
			if _, err := s.ledger.AddPointsTx(ctx, tx, userID, types.SubscriptionBonusPoints, "subscription_bonus"); err != nil {
				return err
			}
		case types.CheckoutModePayment:
			if ev.PackPoints <= 0 {
				return fmt.Errorf("point pack checkout without points metadata")
			}
			if _, err := s.ledger.AddPointsTx(ctx, tx, userID, ev.PackPoints, "points_purchase"); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown checkout mode: %s", ev.CheckoutMode)
		}

	case types.BillingEventSubscriptionCreated, types.BillingEventSubscriptionUpdated:
		record.Subscribed = ev.PeriodEnd != nil && ev.PeriodEnd.After(time.Now())
		record.Tier = ev.Tier
		record.SubscriptionEnd = ev.PeriodEnd
		if !record.Subscribed {
			record.Tier = types.SubscriptionTierFree
		}

	case types.BillingEventSubscriptionDeleted:
		record.Subscribed = false
		record.Tier = types.SubscriptionTierFree
		record.SubscriptionEnd = nil

	case types.BillingEventInvoicePaid:
		// A paid invoice extends the current period.
		record.Subscribed = true
		if record.Tier == types.SubscriptionTierFree {
			record.Tier = s.tierForEvent(ev)
		}
		if ev.PeriodEnd != nil {
			record.SubscriptionEnd = ev.PeriodEnd
		}

	default:
		return fmt.Errorf("unsupported event kind: %s", ev.Kind)
	}

	return s.upsertRecord(ctx, tx, record, types.SubscriptionChangeReasonWebhook)
}

// Status returns the local record without touching the provider.
func (s *Service) Status(ctx context.Context, userID string) (*types.SubscriptionInfo, error) {
	var record models.SubscriptionRecord
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &types.SubscriptionInfo{}, nil
		}
		return nil, err
	}
	return &types.SubscriptionInfo{
		Subscribed: record.Subscribed,
		Tier:       record.Tier,
		ExpireAt:   record.SubscriptionEnd,
	}, nil
}

// CreateCheckout starts a provider checkout for the premium plan
// (item == "premium") or a configured point pack id.
func (s *Service) CreateCheckout(ctx context.Context, userID, email, item string) (*CheckoutSession, error) {
	req := &CheckoutRequest{
		UserID:     userID,
		Email:      email,
		SuccessURL: s.cfg.Billing.SuccessURL,
		CancelURL:  s.cfg.Billing.CancelURL,
	}
	if item == "premium" {
		req.Mode = types.CheckoutModeSubscription
		req.PriceID = s.cfg.Billing.PremiumPriceID
	} else {
		pack := s.cfg.GetPointPackByID(item)
		if pack == nil {
			return nil, fmt.Errorf("unknown checkout item: %s", item)
		}
		req.Mode = types.CheckoutModePayment
		req.PriceID = pack.ProviderPriceID
		req.PackPoints = pack.Points
	}
	return s.gw.CreateCheckoutSession(ctx, req)
}

// CreatePortal starts a provider billing-portal session.
func (s *Service) CreatePortal(ctx context.Context, userID string) (string, error) {
	var record models.SubscriptionRecord
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error
	if err != nil || record.BillingCustomerID == "" {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		return "", ErrNoBillingCustomer
	}
	return s.gw.CreatePortalSession(ctx, record.BillingCustomerID, s.cfg.Billing.PortalURL)
}

// SetPremiumOverride is the admin toggle. An override is as authoritative as
// provider-driven changes; it carries no expiry.
func (s *Service) SetPremiumOverride(ctx context.Context, userID string, premium bool) error {
	record, err := s.loadOrInitRecord(ctx, userID)
	if err != nil {
		return err
	}
	record.Subscribed = premium
	record.SubscriptionEnd = nil
	if premium {
		record.Tier = types.SubscriptionTierPremium
	} else {
		record.Tier = types.SubscriptionTierFree
	}
	return s.upsertRecord(ctx, s.db, record, types.SubscriptionChangeReasonAdminOverride)
}

func (s *Service) tierForPrice(priceID string) types.SubscriptionTier {
	if priceID != "" && priceID == s.cfg.Billing.PremiumPriceID {
		return types.SubscriptionTierPremium
	}
	// Unknown prices still subscribe; premium is the only tier sold today.
	return types.SubscriptionTierPremium
}

func (s *Service) tierForEvent(ev *types.BillingEvent) types.SubscriptionTier {
	if ev.Tier != types.SubscriptionTierFree {
		return ev.Tier
	}
	return types.SubscriptionTierPremium
}

func (s *Service) userForCustomer(ctx context.Context, customerID string) string {
	var record models.SubscriptionRecord
	err := s.db.WithContext(ctx).Where("billing_customer_id = ?", customerID).First(&record).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logctx.FromCtx(ctx, s.log).Warnw("customer_lookup_failed", "err", err, "customer_id", customerID)
		}
		return ""
	}
	return record.UserID
}

func (s *Service) resetDailyPointsIfStale(record *models.SubscriptionRecord) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if record.LastPointsReset.Before(midnight) {
		record.PointsEarnedToday = 0
		record.LastPointsReset = now
	}
}

func (s *Service) loadOrInitRecord(ctx context.Context, userID string) (*models.SubscriptionRecord, error) {
	return s.loadOrInitRecordTx(ctx, s.db, userID)
}

func (s *Service) loadOrInitRecordTx(ctx context.Context, db *gorm.DB, userID string) (*models.SubscriptionRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("empty user id")
	}
	var record models.SubscriptionRecord
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load subscription record: %w", err)
		}
		record = models.SubscriptionRecord{UserID: userID, LastPointsReset: time.Now()}
	}
	return &record, nil
}

// upsertRecord persists the record, preserving identity fields, and writes
// the change log asynchronously. Provider-reported fields resolve
// last-write-wins: both sources derive from the same provider truth.
func (s *Service) upsertRecord(ctx context.Context, db *gorm.DB, record *models.SubscriptionRecord, reason types.SubscriptionChangeReason) error {
	var original models.SubscriptionRecord
	err := db.WithContext(ctx).Where("user_id = ?", record.UserID).First(&original).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to load original record: %w", err)
	}

	before := func() *models.SubscriptionRecord {
		if original.ID == "" {
			return nil
		}
		cp := original
		return &cp
	}()

	if original.ID != "" {
		record.ID = original.ID
		record.CreatedAt = original.CreatedAt
	} else if record.ID == "" {
		record.ID = tool.GenerateUUIDV7()
	}

	if err := db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("failed to upsert subscription record: %w", err)
	}

	go func(b, a *models.SubscriptionRecord) {
		entry := &models.SubscriptionChangeLog{
			ID:     tool.GenerateUUIDV7(),
			UserID: a.UserID,
			Reason: reason,
			Before: datatypes.NewJSONType(b),
			After:  datatypes.NewJSONType(a),
		}
		if err := s.db.Create(entry).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save subscription change log: %v", err)
		}
	}(before, record)

	return nil
}
