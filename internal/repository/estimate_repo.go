package repository

import (
	"context"

	"nadlan-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EstimateRepository interface {
	Create(ctx context.Context, estimate *model.TaxEstimate) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TaxEstimate, error)
	List(ctx context.Context, page, limit int) ([]model.TaxEstimate, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type estimateRepository struct {
	db *gorm.DB
}

func NewEstimateRepository(db *gorm.DB) EstimateRepository {
	return &estimateRepository{db: db}
}

func (r *estimateRepository) Create(ctx context.Context, estimate *model.TaxEstimate) error {
	return GetDB(ctx, r.db).Create(estimate).Error
}

func (r *estimateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TaxEstimate, error) {
	var estimate model.TaxEstimate
	if err := GetDB(ctx, r.db).Preload("Creator").First(&estimate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &estimate, nil
}

func (r *estimateRepository) List(ctx context.Context, page, limit int) ([]model.TaxEstimate, int64, error) {
	var estimates []model.TaxEstimate
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.TaxEstimate{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&estimates).Error; err != nil {
		return nil, 0, err
	}

	return estimates, total, nil
}

func (r *estimateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.TaxEstimate{}).Error
}
