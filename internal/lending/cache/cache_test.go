// internal/lending/cache/cache_test.go
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendscore/internal/common/logger"
	"lendscore/internal/models"
)

// stubClient is a minimal api.Client backend that counts pass-through
// calls.
type stubClient struct {
	loans       []models.LoanApplicationRecord
	listCalls   int
	submitCalls int
}

func (s *stubClient) GetBeneficiary(ctx context.Context, id string) (*models.Beneficiary, error) {
	return nil, nil
}

func (s *stubClient) ListBeneficiaries(ctx context.Context) ([]models.Beneficiary, error) {
	return nil, nil
}

func (s *stubClient) CreateBeneficiary(ctx context.Context, input models.BeneficiaryCreate) (*models.Beneficiary, error) {
	return nil, nil
}

func (s *stubClient) UpdateConsumption(ctx context.Context, id string, data models.ConsumptionData) (*models.Beneficiary, error) {
	return nil, nil
}

func (s *stubClient) ComputeScore(ctx context.Context, id string) (*models.ScoreResult, error) {
	return nil, nil
}

func (s *stubClient) SubmitLoanApplication(ctx context.Context, app models.LoanApplication) (*models.LoanApplicationRecord, error) {
	s.submitCalls++
	record := models.LoanApplicationRecord{
		ID:            "app-1",
		BeneficiaryID: app.BeneficiaryID,
		LoanAmount:    app.LoanAmount,
		Status:        models.LoanStatusApproved,
	}
	s.loans = append(s.loans, record)
	return &record, nil
}

func (s *stubClient) ListLoans(ctx context.Context) ([]models.LoanApplicationRecord, error) {
	s.listCalls++
	return s.loans, nil
}

func (s *stubClient) GetStats(ctx context.Context) (*models.PlatformStats, error) {
	return nil, nil
}

func newTestCache(t *testing.T) (*CachedClient, *stubClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	inner := &stubClient{
		loans: []models.LoanApplicationRecord{
			{ID: "app-0", BeneficiaryID: "ben-1", Status: models.LoanStatusApproved},
		},
	}
	return New(inner, rdb, time.Minute, logger.NewTestLogger(t)), inner, mr
}

func TestCachedClient_ListLoans_CachesResult(t *testing.T) {
	cached, inner, _ := newTestCache(t)
	ctx := context.Background()

	first, err := cached.ListLoans(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := cached.ListLoans(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.listCalls, "second read must be served from the cache")
}

func TestCachedClient_ListLoans_ExpiryFallsThrough(t *testing.T) {
	cached, inner, mr := newTestCache(t)
	ctx := context.Background()

	_, err := cached.ListLoans(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = cached.ListLoans(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.listCalls)
}

func TestCachedClient_SubmitInvalidatesLoans(t *testing.T) {
	cached, inner, _ := newTestCache(t)
	ctx := context.Background()

	_, err := cached.ListLoans(ctx)
	require.NoError(t, err)

	_, err = cached.SubmitLoanApplication(ctx, models.LoanApplication{
		BeneficiaryID: "ben-1", LoanAmount: 50000, LoanPurpose: "inventory",
	})
	require.NoError(t, err)

	loans, err := cached.ListLoans(ctx)
	require.NoError(t, err)
	assert.Len(t, loans, 2, "the list read after a submission must include the new application")
	assert.Equal(t, 2, inner.listCalls)
}

func TestCachedClient_CorruptEntryIsOverwritten(t *testing.T) {
	cached, inner, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("lendscore:loans", "{not json"))

	loans, err := cached.ListLoans(ctx)
	require.NoError(t, err)
	assert.Len(t, loans, 1)
	assert.Equal(t, 1, inner.listCalls)

	// The bad entry was replaced; the next read is a cache hit.
	_, err = cached.ListLoans(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.listCalls)
}

func TestCachedClient_RedisDownDegradesToAPI(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	inner := &stubClient{loans: []models.LoanApplicationRecord{{ID: "app-0"}}}
	cached := New(inner, rdb, time.Minute, logger.NewTestLogger(t))
	mr.Close() // redis is now unreachable

	ctx := context.Background()
	loans, err := cached.ListLoans(ctx)
	require.NoError(t, err, "cache failures must never surface to the caller")
	assert.Len(t, loans, 1)
	assert.Equal(t, 1, inner.listCalls)

	record, err := cached.SubmitLoanApplication(ctx, models.LoanApplication{
		BeneficiaryID: "ben-1", LoanAmount: 50000, LoanPurpose: "inventory",
	})
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusApproved, record.Status)
}
