package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"nadlan-backend/internal/cache"
	"nadlan-backend/internal/model"
	"nadlan-backend/internal/repository"
	"nadlan-backend/internal/tax"
	"nadlan-backend/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type BuyerInput struct {
	Name              string `json:"name"`
	SharePct          string `json:"share_pct" binding:"required"` // Decimal string, e.g. "50"
	IsFirstHome       bool   `json:"is_first_home"`
	IsReplacementHome bool   `json:"is_replacement_home"`
	Oleh              bool   `json:"oleh"`
	Disabled          bool   `json:"disabled"`
	BereavedFamily    bool   `json:"bereaved_family"`
}

type CalculateTaxRequest struct {
	Price        string       `json:"price" binding:"required"` // Decimal string
	PropertyType string       `json:"property_type" binding:"omitempty,oneof=residential land"`
	Buyers       []BuyerInput `json:"buyers" binding:"required,min=1,dive"`
}

type CreateEstimateRequest struct {
	Label string `json:"label" binding:"required"`
	CalculateTaxRequest
}

type BreakdownLineResponse struct {
	BuyerName    string `json:"buyer_name"`
	SharePct     string `json:"share_pct"`
	PortionPrice string `json:"portion_price"`
	Tax          string `json:"tax"`
	Track        string `json:"track"`
}

type PurchaseTaxResponse struct {
	Price        string                  `json:"price"`
	PropertyType string                  `json:"property_type"`
	TotalTax     string                  `json:"total_tax"`
	Breakdown    []BreakdownLineResponse `json:"breakdown"`
}

type EstimateResponse struct {
	ID           string                  `json:"id"`
	Label        string                  `json:"label"`
	PropertyType string                  `json:"property_type"`
	Price        string                  `json:"price"`
	TotalTax     string                  `json:"total_tax"`
	Buyers       []BuyerInput            `json:"buyers"`
	Breakdown    []BreakdownLineResponse `json:"breakdown"`
	CreatedBy    string                  `json:"created_by,omitempty"`
	CreatedAt    string                  `json:"created_at"`
}

// --- Interface ---

type EstimateService interface {
	Calculate(ctx context.Context, req CalculateTaxRequest) (PurchaseTaxResponse, error)
	CreateEstimate(ctx context.Context, userID string, req CreateEstimateRequest) (EstimateResponse, error)
	GetEstimates(ctx context.Context, page, limit int) ([]EstimateResponse, int64, error)
	GetEstimate(ctx context.Context, id string) (EstimateResponse, error)
	DeleteEstimate(ctx context.Context, id, userID string) error
}

type estimateService struct {
	estimateRepo repository.EstimateRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	cache        cache.Cache
	hub          *websocket.Hub // nil disables event broadcasting
}

func NewEstimateService(
	estimateRepo repository.EstimateRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	cache cache.Cache,
	hub *websocket.Hub,
) EstimateService {
	return &estimateService{
		estimateRepo: estimateRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		cache:        cache,
		hub:          hub,
	}
}

const calcCacheTTL = time.Hour

// --- Implementation ---

// Calculate runs the purchase-tax computation without persisting anything.
// Identical requests are served from the cache when one is configured; the
// computation itself is deterministic, so a cached response is always exact.
func (s *estimateService) Calculate(ctx context.Context, req CalculateTaxRequest) (PurchaseTaxResponse, error) {
	key, err := calcCacheKey(req)
	if err == nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			var res PurchaseTaxResponse
			if jsonErr := json.Unmarshal([]byte(cached), &res); jsonErr == nil {
				return res, nil
			}
		}
	}

	price, buyers, opts, err := parseCalculateRequest(req)
	if err != nil {
		return PurchaseTaxResponse{}, err
	}

	result, err := tax.Calculate(price, buyers, opts)
	if err != nil {
		return PurchaseTaxResponse{}, err
	}

	res := toPurchaseTaxResponse(req, price, opts, result)

	if key != "" {
		if payload, jsonErr := json.Marshal(res); jsonErr == nil {
			if cacheErr := s.cache.Set(ctx, key, string(payload), calcCacheTTL); cacheErr != nil {
				log.Println("estimate cache write failed:", cacheErr)
			}
		}
	}

	return res, nil
}

// CreateEstimate computes the tax and persists it as a named estimate,
// together with an audit entry, in a single transaction. Connected
// dashboard clients are notified afterwards.
func (s *estimateService) CreateEstimate(ctx context.Context, userID string, req CreateEstimateRequest) (EstimateResponse, error) {
	price, buyers, opts, err := parseCalculateRequest(req.CalculateTaxRequest)
	if err != nil {
		return EstimateResponse{}, err
	}

	result, err := tax.Calculate(price, buyers, opts)
	if err != nil {
		return EstimateResponse{}, err
	}

	buyersJSON, err := json.Marshal(req.Buyers)
	if err != nil {
		return EstimateResponse{}, fmt.Errorf("failed to serialize buyers: %w", err)
	}
	breakdown := toBreakdownResponses(req.Buyers, result)
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return EstimateResponse{}, fmt.Errorf("failed to serialize breakdown: %w", err)
	}

	estimate := model.TaxEstimate{
		Label:        req.Label,
		PropertyType: string(opts.PropertyType),
		Price:        price,
		TotalTax:     result.TotalTax,
		Buyers:       string(buyersJSON),
		Breakdown:    string(breakdownJSON),
	}

	if userID != "" {
		parsed, parseErr := uuid.Parse(userID)
		if parseErr == nil {
			estimate.CreatedBy = &parsed
		}
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if txErr := s.estimateRepo.Create(txCtx, &estimate); txErr != nil {
			return fmt.Errorf("failed to create estimate: %w", txErr)
		}

		entry := auditEntry(estimate.CreatedBy, model.ActionCreateEstimate, estimate.ID.String(), estimate.Label, req)
		if auditErr := s.auditRepo.Log(txCtx, entry); auditErr != nil {
			// Best-effort audit log, don't fail the operation if logging fails
			log.Println("audit log write failed:", auditErr)
		}
		return nil
	})
	if err != nil {
		return EstimateResponse{}, err
	}

	if s.hub != nil {
		s.hub.BroadcastEvent("estimate_created", map[string]string{
			"id":        estimate.ID.String(),
			"label":     estimate.Label,
			"total_tax": estimate.TotalTax.StringFixed(2),
		})
	}

	return toEstimateResponse(estimate)
}

func (s *estimateService) GetEstimates(ctx context.Context, page, limit int) ([]EstimateResponse, int64, error) {
	estimates, total, err := s.estimateRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch estimates: %w", err)
	}

	res := make([]EstimateResponse, 0, len(estimates))
	for _, e := range estimates {
		mapped, mapErr := toEstimateResponse(e)
		if mapErr != nil {
			return nil, 0, mapErr
		}
		res = append(res, mapped)
	}

	return res, total, nil
}

func (s *estimateService) GetEstimate(ctx context.Context, id string) (EstimateResponse, error) {
	estimateID, err := uuid.Parse(id)
	if err != nil {
		return EstimateResponse{}, fmt.Errorf("invalid estimate id: %w", err)
	}

	estimate, err := s.estimateRepo.FindByID(ctx, estimateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EstimateResponse{}, fmt.Errorf("estimate not found")
		}
		return EstimateResponse{}, fmt.Errorf("failed to fetch estimate: %w", err)
	}

	return toEstimateResponse(*estimate)
}

func (s *estimateService) DeleteEstimate(ctx context.Context, id, userID string) error {
	estimateID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid estimate id: %w", err)
	}

	estimate, err := s.estimateRepo.FindByID(ctx, estimateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("estimate not found")
		}
		return fmt.Errorf("failed to fetch estimate: %w", err)
	}

	if err := s.estimateRepo.Delete(ctx, estimateID); err != nil {
		return fmt.Errorf("failed to delete estimate: %w", err)
	}

	var actor *uuid.UUID
	if userID != "" {
		if parsed, parseErr := uuid.Parse(userID); parseErr == nil {
			actor = &parsed
		}
	}
	entry := auditEntry(actor, model.ActionDeleteEstimate, id, estimate.Label, map[string]string{"deleted_id": id})
	if auditErr := s.auditRepo.Log(ctx, entry); auditErr != nil {
		log.Println("audit log write failed:", auditErr)
	}

	if s.hub != nil {
		s.hub.BroadcastEvent("estimate_deleted", map[string]string{"id": id})
	}

	return nil
}

// --- Helpers ---

func parseCalculateRequest(req CalculateTaxRequest) (decimal.Decimal, []tax.Buyer, tax.Options, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return decimal.Zero, nil, tax.Options{}, fmt.Errorf("%w: invalid price %q", tax.ErrValidation, req.Price)
	}

	buyers := make([]tax.Buyer, 0, len(req.Buyers))
	for i, b := range req.Buyers {
		share, shareErr := decimal.NewFromString(b.SharePct)
		if shareErr != nil {
			return decimal.Zero, nil, tax.Options{}, fmt.Errorf("%w: buyer %d has invalid share_pct %q", tax.ErrValidation, i, b.SharePct)
		}
		buyers = append(buyers, tax.Buyer{
			Name:            b.Name,
			SharePct:        share,
			FirstHome:       b.IsFirstHome,
			ReplacementHome: b.IsReplacementHome,
			Oleh:            b.Oleh,
			Disabled:        b.Disabled,
			BereavedFamily:  b.BereavedFamily,
		})
	}

	opts := tax.Options{PropertyType: tax.PropertyType(req.PropertyType)}
	if opts.PropertyType == "" {
		opts.PropertyType = tax.PropertyResidential
	}

	return price, buyers, opts, nil
}

func calcCacheKey(req CalculateTaxRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return "purchase_tax:" + hex.EncodeToString(sum[:]), nil
}

func toBreakdownResponses(buyers []BuyerInput, result tax.Result) []BreakdownLineResponse {
	lines := make([]BreakdownLineResponse, 0, len(result.Breakdown))
	for i, line := range result.Breakdown {
		name := line.Buyer.Name
		if name == "" && i < len(buyers) {
			name = buyers[i].Name
		}
		lines = append(lines, BreakdownLineResponse{
			BuyerName:    name,
			SharePct:     line.Buyer.SharePct.String(),
			PortionPrice: line.PortionPrice.StringFixed(2),
			Tax:          line.Tax.StringFixed(2),
			Track:        string(line.Track),
		})
	}
	return lines
}

func toPurchaseTaxResponse(req CalculateTaxRequest, price decimal.Decimal, opts tax.Options, result tax.Result) PurchaseTaxResponse {
	return PurchaseTaxResponse{
		Price:        price.StringFixed(2),
		PropertyType: string(opts.PropertyType),
		TotalTax:     result.TotalTax.StringFixed(2),
		Breakdown:    toBreakdownResponses(req.Buyers, result),
	}
}

func toEstimateResponse(e model.TaxEstimate) (EstimateResponse, error) {
	var buyers []BuyerInput
	if err := json.Unmarshal([]byte(e.Buyers), &buyers); err != nil {
		return EstimateResponse{}, fmt.Errorf("corrupted buyers payload for estimate %s: %w", e.ID, err)
	}
	var breakdown []BreakdownLineResponse
	if err := json.Unmarshal([]byte(e.Breakdown), &breakdown); err != nil {
		return EstimateResponse{}, fmt.Errorf("corrupted breakdown payload for estimate %s: %w", e.ID, err)
	}

	res := EstimateResponse{
		ID:           e.ID.String(),
		Label:        e.Label,
		PropertyType: e.PropertyType,
		Price:        e.Price.StringFixed(2),
		TotalTax:     e.TotalTax.StringFixed(2),
		Buyers:       buyers,
		Breakdown:    breakdown,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
	if e.CreatedBy != nil {
		res.CreatedBy = e.CreatedBy.String()
	}
	return res, nil
}

func auditEntry(userID *uuid.UUID, action, entityID, entityName string, details interface{}) *model.AuditLog {
	detailsJSON, _ := json.Marshal(details)
	return &model.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(detailsJSON),
	}
}
