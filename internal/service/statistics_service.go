package service

import (
	"context"
	"time"

	"nadlan-backend/internal/model"

	"gorm.io/gorm"
)

type StatisticsService interface {
	GetStatistics(ctx context.Context, startDate, endDate time.Time) (model.StatisticsResponse, error)
}

type statisticsService struct {
	db *gorm.DB
}

func NewStatisticsService(db *gorm.DB) StatisticsService {
	return &statisticsService{db: db}
}

// GetStatistics aggregates saved estimates bounded by time into dashboard metrics
func (s *statisticsService) GetStatistics(ctx context.Context, startDate, endDate time.Time) (model.StatisticsResponse, error) {
	var response model.StatisticsResponse
	response.TimeRangeStartDate = startDate
	response.TimeRangeEndDate = endDate

	inRange := func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at >= ? AND created_at <= ? AND deleted_at IS NULL", startDate, endDate)
	}

	// Volume and totals
	var totals struct {
		Count    int64
		TotalTax float64
		AvgPrice float64
	}
	if err := s.db.WithContext(ctx).Table("tax_estimates").
		Select("COUNT(*) as count, COALESCE(SUM(total_tax), 0) as total_tax, COALESCE(AVG(price), 0) as avg_price").
		Scopes(inRange).
		Scan(&totals).Error; err != nil {
		return response, err
	}
	response.TotalEstimates = totals.Count
	response.TotalTax = totals.TotalTax
	response.AveragePrice = totals.AvgPrice

	// Per property type
	var slices []model.PropertyTypeSlice
	if err := s.db.WithContext(ctx).Table("tax_estimates").
		Select("property_type, COUNT(*) as count, COALESCE(SUM(total_tax), 0) as total_tax").
		Scopes(inRange).
		Group("property_type").
		Order("count DESC").
		Scan(&slices).Error; err != nil {
		return response, err
	}
	response.ByPropertyType = slices

	// Largest estimates by tax owed
	var largest []model.EstimateRanking
	if err := s.db.WithContext(ctx).Table("tax_estimates").
		Select("id as estimate_id, label, price, total_tax").
		Scopes(inRange).
		Order("total_tax DESC").
		Limit(5).
		Scan(&largest).Error; err != nil {
		return response, err
	}
	response.LargestEstimates = largest

	return response, nil
}
