package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Property type values persisted with an estimate.
const (
	PropertyTypeResidential = "residential"
	PropertyTypeLand        = "land"
)

// TaxEstimate is a saved purchase-tax computation: the inputs that produced
// it plus the resulting total and per-buyer breakdown. Buyers and Breakdown
// hold the JSON the calculator consumed/produced, so an estimate stays
// reproducible even if the statutory tables change later.
type TaxEstimate struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Label        string          `gorm:"type:varchar(255);not null" json:"label"`
	PropertyType string          `gorm:"type:varchar(20);not null;index" json:"property_type"`
	Price        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	TotalTax     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_tax"`
	Buyers       string          `gorm:"type:jsonb;not null" json:"buyers"`
	Breakdown    string          `gorm:"type:jsonb;not null" json:"breakdown"`
	CreatedBy    *uuid.UUID      `gorm:"type:uuid;index" json:"created_by"`
	Creator      *User           `gorm:"foreignKey:CreatedBy" json:"-"`
	CreatedAt    time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}
