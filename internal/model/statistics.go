package model

import (
	"time"
)

// StatisticsResponse aggregates estimate volume and tax totals over a range
type StatisticsResponse struct {
	TotalEstimates     int64               `json:"total_estimates"`
	TotalTax           float64             `json:"total_tax"`
	AveragePrice       float64             `json:"average_price"`
	ByPropertyType     []PropertyTypeSlice `json:"by_property_type"`
	LargestEstimates   []EstimateRanking   `json:"largest_estimates"`
	TimeRangeStartDate time.Time           `json:"time_range_start_date"`
	TimeRangeEndDate   time.Time           `json:"time_range_end_date"`
}

// PropertyTypeSlice is the per-property-type share of estimate volume
type PropertyTypeSlice struct {
	PropertyType string  `json:"property_type"`
	Count        int64   `json:"count"`
	TotalTax     float64 `json:"total_tax"`
}

// EstimateRanking represents one of the largest saved estimates by tax owed
type EstimateRanking struct {
	EstimateID string  `json:"estimate_id"`
	Label      string  `json:"label"`
	Price      float64 `json:"price"`
	TotalTax   float64 `json:"total_tax"`
}
