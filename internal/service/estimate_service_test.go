package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"nadlan-backend/internal/model"
	"nadlan-backend/internal/tax"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Hand-rolled mocks ---

type mockEstimateRepo struct {
	created   []*model.TaxEstimate
	stored    map[uuid.UUID]model.TaxEstimate
	failNext  bool
	deleteIDs []uuid.UUID
}

func newMockEstimateRepo() *mockEstimateRepo {
	return &mockEstimateRepo{stored: make(map[uuid.UUID]model.TaxEstimate)}
}

func (m *mockEstimateRepo) Create(ctx context.Context, e *model.TaxEstimate) error {
	if m.failNext {
		return errors.New("create error")
	}
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	m.created = append(m.created, e)
	m.stored[e.ID] = *e
	return nil
}

func (m *mockEstimateRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.TaxEstimate, error) {
	e, ok := m.stored[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (m *mockEstimateRepo) List(ctx context.Context, page, limit int) ([]model.TaxEstimate, int64, error) {
	out := make([]model.TaxEstimate, 0, len(m.stored))
	for _, e := range m.stored {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (m *mockEstimateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleteIDs = append(m.deleteIDs, id)
	delete(m.stored, id)
	return nil
}

type mockAuditRepo struct {
	entries []*model.AuditLog
}

func (m *mockAuditRepo) Log(ctx context.Context, entry *model.AuditLog) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepo) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	return nil, 0, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
	hits int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string]string)}
}

func (m *memoryCache) Get(ctx context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if ok {
		m.hits++
	}
	return val, ok
}

func (m *memoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func newTestService(repo *mockEstimateRepo, audit *mockAuditRepo, c *memoryCache) EstimateService {
	return NewEstimateService(repo, audit, passthroughTxManager{}, c, nil)
}

func firstHomeRequest() CalculateTaxRequest {
	return CalculateTaxRequest{
		Price: "2000000",
		Buyers: []BuyerInput{
			{Name: "dana", SharePct: "100", IsFirstHome: true},
		},
	}
}

// --- Tests ---

func TestCalculateFirstHomeResponse(t *testing.T) {
	svc := newTestService(newMockEstimateRepo(), &mockAuditRepo{}, newMemoryCache())

	res, err := svc.Calculate(context.Background(), firstHomeRequest())
	require.NoError(t, err)

	assert.Equal(t, "743.93", res.TotalTax)
	assert.Equal(t, "residential", res.PropertyType)
	require.Len(t, res.Breakdown, 1)
	assert.Equal(t, "regular", res.Breakdown[0].Track)
	assert.Equal(t, "dana", res.Breakdown[0].BuyerName)
	assert.Equal(t, "2000000.00", res.Breakdown[0].PortionPrice)
}

func TestCalculateLandResponse(t *testing.T) {
	svc := newTestService(newMockEstimateRepo(), &mockAuditRepo{}, newMemoryCache())

	res, err := svc.Calculate(context.Background(), CalculateTaxRequest{
		Price:        "1000000",
		PropertyType: "land",
		Buyers: []BuyerInput{
			{Name: "a", SharePct: "60", Oleh: true},
			{Name: "b", SharePct: "40"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "60000.00", res.TotalTax)
	require.Len(t, res.Breakdown, 2)
	assert.Equal(t, "36000.00", res.Breakdown[0].Tax)
	assert.Equal(t, "24000.00", res.Breakdown[1].Tax)
	assert.Equal(t, "land", res.Breakdown[0].Track)
	assert.Equal(t, "land", res.Breakdown[1].Track)
}

func TestCalculateServesRepeatedRequestsFromCache(t *testing.T) {
	memCache := newMemoryCache()
	svc := newTestService(newMockEstimateRepo(), &mockAuditRepo{}, memCache)

	first, err := svc.Calculate(context.Background(), firstHomeRequest())
	require.NoError(t, err)
	assert.Equal(t, 0, memCache.hits)

	second, err := svc.Calculate(context.Background(), firstHomeRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, memCache.hits)
	assert.Equal(t, first, second)
}

func TestCalculateRejectsInvalidInput(t *testing.T) {
	svc := newTestService(newMockEstimateRepo(), &mockAuditRepo{}, newMemoryCache())

	_, err := svc.Calculate(context.Background(), CalculateTaxRequest{
		Price:  "not-a-number",
		Buyers: []BuyerInput{{SharePct: "100"}},
	})
	assert.ErrorIs(t, err, tax.ErrValidation)

	_, err = svc.Calculate(context.Background(), CalculateTaxRequest{
		Price:  "-5",
		Buyers: []BuyerInput{{SharePct: "100"}},
	})
	assert.ErrorIs(t, err, tax.ErrValidation)
}

func TestCreateEstimatePersistsAndAudits(t *testing.T) {
	repo := newMockEstimateRepo()
	audit := &mockAuditRepo{}
	svc := newTestService(repo, audit, newMemoryCache())

	res, err := svc.CreateEstimate(context.Background(), uuid.NewString(), CreateEstimateRequest{
		Label:               "Herzl St deal",
		CalculateTaxRequest: firstHomeRequest(),
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "Herzl St deal", repo.created[0].Label)
	assert.Equal(t, "743.93", res.TotalTax)
	assert.NotEmpty(t, res.ID)
	require.Len(t, res.Buyers, 1)
	assert.Equal(t, "dana", res.Buyers[0].Name)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, model.ActionCreateEstimate, audit.entries[0].Action)
	assert.Equal(t, "Herzl St deal", audit.entries[0].EntityName)
}

func TestCreateEstimateRejectsInvalidInputWithoutSaving(t *testing.T) {
	repo := newMockEstimateRepo()
	svc := newTestService(repo, &mockAuditRepo{}, newMemoryCache())

	_, err := svc.CreateEstimate(context.Background(), "", CreateEstimateRequest{
		Label: "broken",
		CalculateTaxRequest: CalculateTaxRequest{
			Price:  "1000000",
			Buyers: []BuyerInput{{SharePct: "150"}},
		},
	})
	assert.ErrorIs(t, err, tax.ErrValidation)
	assert.Empty(t, repo.created)
}

func TestGetEstimateRoundTrip(t *testing.T) {
	repo := newMockEstimateRepo()
	audit := &mockAuditRepo{}
	svc := newTestService(repo, audit, newMemoryCache())

	created, err := svc.CreateEstimate(context.Background(), "", CreateEstimateRequest{
		Label:               "round trip",
		CalculateTaxRequest: firstHomeRequest(),
	})
	require.NoError(t, err)

	fetched, err := svc.GetEstimate(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Label, fetched.Label)
	assert.Equal(t, created.TotalTax, fetched.TotalTax)
	assert.Equal(t, created.Breakdown, fetched.Breakdown)
}

func TestGetEstimateNotFound(t *testing.T) {
	svc := newTestService(newMockEstimateRepo(), &mockAuditRepo{}, newMemoryCache())

	_, err := svc.GetEstimate(context.Background(), uuid.NewString())
	require.Error(t, err)

	_, err = svc.GetEstimate(context.Background(), "not-a-uuid")
	require.Error(t, err)
}

func TestDeleteEstimateAudits(t *testing.T) {
	repo := newMockEstimateRepo()
	audit := &mockAuditRepo{}
	svc := newTestService(repo, audit, newMemoryCache())

	created, err := svc.CreateEstimate(context.Background(), "", CreateEstimateRequest{
		Label:               "to delete",
		CalculateTaxRequest: firstHomeRequest(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEstimate(context.Background(), created.ID, ""))
	require.Len(t, repo.deleteIDs, 1)

	require.Len(t, audit.entries, 2)
	assert.Equal(t, model.ActionDeleteEstimate, audit.entries[1].Action)

	_, err = svc.GetEstimate(context.Background(), created.ID)
	assert.Error(t, err)
}
