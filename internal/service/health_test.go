package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycare/backend/internal/storage"
	"github.com/mycare/backend/internal/types"
)

func validMeasurement() *types.Measurement {
	return &types.Measurement{
		Weight:          70,
		Systolic:        120,
		Diastolic:       80,
		HeartRate:       72,
		SugarLevel:      95,
		ActivityMinutes: 30,
	}
}

func TestAppendComputesBMIFromHeightAtAppendTime(t *testing.T) {
	svc := NewHealthRecordService(storage.NewMemoryStore())
	userID := uuid.New()

	log, err := svc.Append(context.Background(), userID, 175, validMeasurement())
	require.NoError(t, err)

	// 70 / 1.75^2
	assert.InDelta(t, 22.857142857, log.BMI, 1e-6)
	assert.Equal(t, userID.String(), log.UserID)
	assert.NotEmpty(t, log.ID)
	assert.NotEmpty(t, log.Timestamp)
}

func TestAppendPreservesInsertionOrder(t *testing.T) {
	svc := NewHealthRecordService(storage.NewMemoryStore())
	userID := uuid.New()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		m := validMeasurement()
		m.Weight = 70 + float64(i)
		log, err := svc.Append(ctx, userID, 175, m)
		require.NoError(t, err)
		ids = append(ids, log.ID)
	}

	logs, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, logs, 5)
	for i, log := range logs {
		assert.Equal(t, ids[i], log.ID)
		assert.Equal(t, 70+float64(i), log.Weight)
	}
}

func TestAppendHeightChangeDoesNotRewriteOldLogs(t *testing.T) {
	svc := NewHealthRecordService(storage.NewMemoryStore())
	userID := uuid.New()
	ctx := context.Background()

	first, err := svc.Append(ctx, userID, 175, validMeasurement())
	require.NoError(t, err)

	// Same weight, new height: only the new entry's BMI reflects it.
	second, err := svc.Append(ctx, userID, 180, validMeasurement())
	require.NoError(t, err)
	assert.NotEqual(t, first.BMI, second.BMI)

	logs, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, first.BMI, logs[0].BMI)
	assert.Equal(t, second.BMI, logs[1].BMI)
}

func TestAppendValidationNamesFirstBadField(t *testing.T) {
	svc := NewHealthRecordService(storage.NewMemoryStore())
	userID := uuid.New()
	ctx := context.Background()

	// Multiple invalid fields: the error names the first in field order.
	m := validMeasurement()
	m.Weight = 0
	m.Systolic = -5
	_, err := svc.Append(ctx, userID, 175, m)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "weight", verr.Field)

	m = validMeasurement()
	m.HeartRate = 0
	_, err = svc.Append(ctx, userID, 175, m)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "heartRate", verr.Field)

	m = validMeasurement()
	m.ActivityMinutes = -1
	_, err = svc.Append(ctx, userID, 175, m)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "activityMinutes", verr.Field)

	// Rejected input persists nothing.
	logs, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestAppendAllowsZeroActivityMinutes(t *testing.T) {
	svc := NewHealthRecordService(storage.NewMemoryStore())
	m := validMeasurement()
	m.ActivityMinutes = 0

	log, err := svc.Append(context.Background(), uuid.New(), 175, m)
	require.NoError(t, err)
	assert.Equal(t, 0, log.ActivityMinutes)
}

// failingStore wraps a Store and fails every Set.
type failingStore struct {
	storage.Store
}

func (f *failingStore) Set(_ context.Context, _ string, _ []byte) error {
	return errors.New("connection refused")
}

func TestAppendStorageFailureLeavesPriorValueIntact(t *testing.T) {
	backing := storage.NewMemoryStore()
	svc := NewHealthRecordService(backing)
	userID := uuid.New()
	ctx := context.Background()

	_, err := svc.Append(ctx, userID, 175, validMeasurement())
	require.NoError(t, err)

	broken := NewHealthRecordService(&failingStore{Store: backing})
	_, err = broken.Append(ctx, userID, 175, validMeasurement())
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "save", perr.Op)

	// The stored collection still holds exactly the first entry.
	logs, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestLatestReturnsNilForEmptyCollection(t *testing.T) {
	svc := NewHealthRecordService(storage.NewMemoryStore())

	latest, err := svc.Latest(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestLatestReturnsMostRecentEntry(t *testing.T) {
	svc := NewHealthRecordService(storage.NewMemoryStore())
	userID := uuid.New()
	ctx := context.Background()

	for _, w := range []float64{70, 71, 72} {
		m := validMeasurement()
		m.Weight = w
		_, err := svc.Append(ctx, userID, 175, m)
		require.NoError(t, err)
	}

	latest, err := svc.Latest(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 72.0, latest.Weight)
}

func TestTrendExtractsFieldInInsertionOrder(t *testing.T) {
	svc := NewHealthRecordService(storage.NewMemoryStore())
	userID := uuid.New()
	ctx := context.Background()

	weights := []float64{70, 68.5, 69}
	for _, w := range weights {
		m := validMeasurement()
		m.Weight = w
		_, err := svc.Append(ctx, userID, 175, m)
		require.NoError(t, err)
	}

	points, err := svc.Trend(ctx, userID, FieldWeight)
	require.NoError(t, err)
	require.Len(t, points, 3)
	for i, p := range points {
		assert.Equal(t, weights[i], p.Value)
		assert.NotEmpty(t, p.Timestamp)
	}
}

func TestTrendUnknownFieldIsValidationError(t *testing.T) {
	svc := NewHealthRecordService(storage.NewMemoryStore())

	_, err := svc.Trend(context.Background(), uuid.New(), "cholesterol")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "field", verr.Field)
}

func TestLatestDeltasRequiresTwoLogs(t *testing.T) {
	svc := NewHealthRecordService(storage.NewMemoryStore())
	userID := uuid.New()
	ctx := context.Background()

	deltas, err := svc.LatestDeltas(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, deltas)

	_, err = svc.Append(ctx, userID, 175, validMeasurement())
	require.NoError(t, err)

	// One log is still not enough for a delta.
	deltas, err = svc.LatestDeltas(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, deltas)
}

func TestLatestDeltasRoundsToOneDecimal(t *testing.T) {
	svc := NewHealthRecordService(storage.NewMemoryStore())
	userID := uuid.New()
	ctx := context.Background()

	m := validMeasurement()
	m.Weight = 70.25
	_, err := svc.Append(ctx, userID, 175, m)
	require.NoError(t, err)

	m = validMeasurement()
	m.Weight = 71.11
	m.Systolic = 118
	_, err = svc.Append(ctx, userID, 175, m)
	require.NoError(t, err)

	deltas, err := svc.LatestDeltas(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, deltas)
	assert.Equal(t, 0.9, deltas.Weight)
	assert.Equal(t, -2.0, deltas.Systolic)
	assert.Equal(t, 0.0, deltas.HeartRate)
}

func TestConcurrentAppendsLoseNoEntries(t *testing.T) {
	svc := NewHealthRecordService(storage.NewMemoryStore())
	userID := uuid.New()
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Append(ctx, userID, 175, validMeasurement())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	logs, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, logs, writers)
}

func TestLogsAreIsolatedPerUser(t *testing.T) {
	svc := NewHealthRecordService(storage.NewMemoryStore())
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.Append(ctx, alice, 175, validMeasurement())
	require.NoError(t, err)

	logs, err := svc.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
