package ads

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/growthlab/boostup/internal/models"
	"github.com/growthlab/boostup/pkg/tool"
)

var ErrAdUnitNotFound = fmt.Errorf("ad unit not found")

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

type UpsertAdUnitRequest struct {
	Name      string `json:"name" binding:"required"`
	Placement string `json:"placement" binding:"required"`
	ImageURL  string `json:"image_url"`
	TargetURL string `json:"target_url"`
	Active    *bool  `json:"active"`
}

func (s *Service) Create(ctx context.Context, req *UpsertAdUnitRequest) (*models.AdUnit, error) {
	unit := &models.AdUnit{
		ID:        tool.GenerateUUIDV7(),
		Name:      req.Name,
		Placement: req.Placement,
		ImageURL:  req.ImageURL,
		TargetURL: req.TargetURL,
		Active:    true,
	}
	if req.Active != nil {
		unit.Active = *req.Active
	}
	if err := s.db.WithContext(ctx).Create(unit).Error; err != nil {
		return nil, fmt.Errorf("failed to create ad unit: %w", err)
	}
	return unit, nil
}

func (s *Service) Update(ctx context.Context, id string, req *UpsertAdUnitRequest) (*models.AdUnit, error) {
	var unit models.AdUnit
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&unit).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAdUnitNotFound
		}
		return nil, err
	}
	unit.Name = req.Name
	unit.Placement = req.Placement
	unit.ImageURL = req.ImageURL
	unit.TargetURL = req.TargetURL
	if req.Active != nil {
		unit.Active = *req.Active
	}
	if err := s.db.WithContext(ctx).Save(&unit).Error; err != nil {
		return nil, fmt.Errorf("failed to update ad unit: %w", err)
	}
	return &unit, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.AdUnit{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAdUnitNotFound
	}
	return nil
}

// List returns all units for the admin surface, newest first.
func (s *Service) List(ctx context.Context) ([]*models.AdUnit, error) {
	var units []*models.AdUnit
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// ActiveForPlacement returns the active units for one placement, for the
// client-facing surface.
func (s *Service) ActiveForPlacement(ctx context.Context, placement string) ([]*models.AdUnit, error) {
	var units []*models.AdUnit
	if err := s.db.WithContext(ctx).
		Where("active AND placement = ?", placement).
		Order("created_at DESC").
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}
