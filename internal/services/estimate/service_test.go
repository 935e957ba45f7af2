package estimate

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "feecalc/internal/errors"
	"feecalc/internal/models"
	"feecalc/internal/services/analytics"
	"feecalc/internal/services/fee"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCalculator struct {
	mock.Mock
}

func (m *MockCalculator) Compute(in models.Inputs) (*models.FeeReport, error) {
	args := m.Called(in)
	if r := args.Get(0); r != nil {
		return r.(*models.FeeReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCalculator) Rates() models.RateTable {
	return models.DefaultRateTable()
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, calc *models.Calculation) error {
	args := m.Called(ctx, calc)
	return args.Error(0)
}

func (m *MockRepository) FindBySession(ctx context.Context, sessionID string, limit int) ([]models.Calculation, error) {
	args := m.Called(ctx, sessionID, limit)
	if c := args.Get(0); c != nil {
		return c.([]models.Calculation), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) CacheReport(ctx context.Context, key string, report *models.FeeReport) error {
	args := m.Called(ctx, key, report)
	return args.Error(0)
}

func (m *MockCache) GetReport(ctx context.Context, key string) (*models.FeeReport, bool, error) {
	args := m.Called(ctx, key)
	if r := args.Get(0); r != nil {
		return r.(*models.FeeReport), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

type MockSink struct {
	mock.Mock
}

func (m *MockSink) Track(ctx context.Context, name string, props analytics.Properties) error {
	args := m.Called(ctx, name, props)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordOperationDuration(operation string, duration time.Duration) {
	m.Called(operation, duration)
}
func (m *MockMetrics) RecordCacheHit(key string)  { m.Called(key) }
func (m *MockMetrics) RecordCacheMiss(key string) { m.Called(key) }
func (m *MockMetrics) RecordError(operation, errType string) {
	m.Called(operation, errType)
}

func newEngine(t *testing.T) *fee.Engine {
	t.Helper()
	engine, err := fee.NewEngine(models.DefaultRateTable())
	require.NoError(t, err)
	return engine
}

func sampleInputs() models.Inputs {
	return models.Inputs{
		MonthlyVolume:      decimal.NewFromInt(100000),
		AvgTransactionSize: decimal.NewFromInt(50),
		MethodMix: models.MethodMix{
			models.MethodDomesticCards:      decimal.NewFromInt(70),
			models.MethodInternationalCards: decimal.NewFromInt(10),
			models.MethodACH:                decimal.NewFromInt(10),
			models.MethodStablecoins:        decimal.NewFromInt(10),
		},
		FraudProtectionEnabled: true,
		DisputeRatePercent:     decimal.RequireFromString("0.1"),
		Stablecoin: models.StablecoinConfig{
			Gateway:                models.GatewayPrimary,
			Network:                models.NetworkLowCost,
			RequiresFiatConversion: true,
		},
	}
}

func TestService_Calculate(t *testing.T) {
	ctx := context.Background()
	in := sampleInputs()

	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Calculation")).Return(nil)
	cache := new(MockCache)
	cache.On("GetReport", mock.Anything, mock.AnythingOfType("string")).Return(nil, false, nil)
	cache.On("CacheReport", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(nil)
	sink := new(MockSink)
	sink.On("Track", mock.Anything, analytics.EventCalculationCompleted, mock.Anything).Return(nil)

	svc := NewService(newEngine(t), repo, sink, cache, Config{}, nil)

	result, err := svc.Calculate(ctx, "session-1", in)
	require.NoError(t, err)
	assert.True(t, result.Saved)
	assert.False(t, result.Cached)
	assert.NotEmpty(t, result.CalculationID)
	assert.Equal(t, "session-1", result.SessionID)
	assert.True(t, decimal.NewFromInt(3264).Equal(result.Report.TotalFees), "got %s", result.Report.TotalFees)

	saved := repo.Calls[0].Arguments.Get(1).(*models.Calculation)
	assert.Equal(t, result.CalculationID, saved.ID.String())
	assert.Equal(t, "session-1", saved.SessionID)
	assert.True(t, saved.TotalFees.Equal(result.Report.TotalFees))

	props := sink.Calls[0].Arguments.Get(2).(analytics.Properties)
	assert.Equal(t, "session-1", props["session_id"])
	assert.Equal(t, []string{"fraudProtection", "stablecoinConversion"}, props["features_enabled"])

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
	sink.AssertExpectations(t)
}

func TestService_Calculate_CacheHit(t *testing.T) {
	cached := &models.FeeReport{TotalFees: decimal.NewFromInt(42), Breakdown: models.Breakdown{}}

	calc := new(MockCalculator)
	cache := new(MockCache)
	cache.On("GetReport", mock.Anything, mock.AnythingOfType("string")).Return(cached, true, nil)
	metrics := new(MockMetrics)
	metrics.On("RecordCacheHit", mock.AnythingOfType("string")).Return()
	metrics.On("RecordOperationDuration", opCalculate, mock.Anything).Return()

	svc := NewService(calc, nil, nil, cache, Config{}, metrics)

	result, err := svc.Calculate(context.Background(), "", sampleInputs())
	require.NoError(t, err)
	assert.True(t, result.Cached)
	assert.False(t, result.Saved)
	assert.Same(t, cached, result.Report)

	calc.AssertNotCalled(t, "Compute", mock.Anything)
	cache.AssertNotCalled(t, "CacheReport", mock.Anything, mock.Anything, mock.Anything)
	metrics.AssertExpectations(t)
}

func TestService_Calculate_InvalidInput(t *testing.T) {
	repo := new(MockRepository)
	sink := new(MockSink)
	metrics := new(MockMetrics)
	metrics.On("RecordError", opCalculate, apperrors.CodeInvalidInput).Return()
	metrics.On("RecordOperationDuration", opCalculate, mock.Anything).Return()

	svc := NewService(newEngine(t), repo, sink, nil, Config{}, metrics)

	in := sampleInputs()
	in.AvgTransactionSize = decimal.Zero

	result, err := svc.Calculate(context.Background(), "session-1", in)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	sink.AssertNotCalled(t, "Track", mock.Anything, mock.Anything, mock.Anything)
	metrics.AssertExpectations(t)
}

func TestService_Calculate_CollaboratorFailures(t *testing.T) {
	engine := newEngine(t)
	in := sampleInputs()
	want, err := engine.Compute(in)
	require.NoError(t, err)

	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	cache := new(MockCache)
	cache.On("GetReport", mock.Anything, mock.Anything).Return(nil, false, errors.New("redis down"))
	cache.On("CacheReport", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))
	sink := new(MockSink)
	sink.On("Track", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("stream full"))

	svc := NewService(engine, repo, sink, cache, Config{}, &NoopMetricsCollector{})

	result, err := svc.Calculate(context.Background(), "session-1", in)
	require.NoError(t, err)
	assert.False(t, result.Saved)
	assert.Empty(t, result.CalculationID)
	assert.True(t, want.TotalFees.Equal(result.Report.TotalFees))
	assert.Equal(t, want.Breakdown.Categories(), result.Report.Breakdown.Categories())
}

func TestService_Calculate_WithoutCollaborators(t *testing.T) {
	svc := NewService(newEngine(t), nil, nil, nil, Config{}, nil)

	result, err := svc.Calculate(context.Background(), "session-1", sampleInputs())
	require.NoError(t, err)
	assert.False(t, result.Saved)
	assert.False(t, result.Cached)
	assert.True(t, decimal.NewFromInt(3264).Equal(result.Report.TotalFees))
}

func TestService_Calculate_NoSessionSkipsArchive(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(newEngine(t), repo, nil, nil, Config{}, nil)

	result, err := svc.Calculate(context.Background(), "", sampleInputs())
	require.NoError(t, err)
	assert.False(t, result.Saved)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_History(t *testing.T) {
	ctx := context.Background()
	calcs := []models.Calculation{{SessionID: "session-1"}, {SessionID: "session-1"}}

	tests := []struct {
		name      string
		sessionID string
		limit     int
		setup     func(*MockRepository)
		wantLen   int
		wantErr   error
	}{
		{
			name:      "default limit",
			sessionID: "session-1",
			limit:     0,
			setup: func(r *MockRepository) {
				r.On("FindBySession", ctx, "session-1", DefaultHistoryLimit).Return(calcs, nil)
			},
			wantLen: 2,
		},
		{
			name:      "explicit limit",
			sessionID: "session-1",
			limit:     5,
			setup: func(r *MockRepository) {
				r.On("FindBySession", ctx, "session-1", 5).Return(nil, nil)
			},
			wantLen: 0,
		},
		{
			name:      "limit too large",
			sessionID: "session-1",
			limit:     500,
			setup:     func(*MockRepository) {},
			wantErr:   apperrors.ErrInvalidInput,
		},
		{
			name:      "missing session",
			sessionID: "",
			setup:     func(*MockRepository) {},
			wantErr:   apperrors.ErrInvalidInput,
		},
		{
			name:      "repository failure",
			sessionID: "session-1",
			limit:     10,
			setup: func(r *MockRepository) {
				r.On("FindBySession", ctx, "session-1", 10).Return(nil, errors.New("timeout"))
			},
			wantErr: apperrors.ErrPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setup(repo)
			svc := NewService(newEngine(t), repo, nil, nil, Config{}, nil)

			got, err := svc.History(ctx, tt.sessionID, tt.limit)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.wantLen)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_History_Disabled(t *testing.T) {
	svc := NewService(newEngine(t), nil, nil, nil, Config{}, nil)

	_, err := svc.History(context.Background(), "session-1", 10)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestService_TrackFeatureToggle(t *testing.T) {
	sink := new(MockSink)
	sink.On("Track", mock.Anything, analytics.EventFeatureToggle, analytics.Properties{
		"session_id": "session-1",
		"feature":    "terminal",
		"enabled":    true,
	}).Return(nil)

	svc := NewService(newEngine(t), nil, sink, nil, Config{}, nil)

	assert.NoError(t, svc.TrackFeatureToggle(context.Background(), "session-1", "terminal", true))
	sink.AssertExpectations(t)

	err := svc.TrackFeatureToggle(context.Background(), "session-1", "teleport", true)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	sink.AssertNumberOfCalls(t, "Track", 1)
}

func TestService_TrackFeatureToggle_SinkFailureIgnored(t *testing.T) {
	sink := new(MockSink)
	sink.On("Track", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("down"))

	svc := NewService(newEngine(t), nil, sink, nil, Config{}, nil)
	assert.NoError(t, svc.TrackFeatureToggle(context.Background(), "", "ach", false))
}
