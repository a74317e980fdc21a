package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/mycare/backend/internal/storage"
	"github.com/mycare/backend/internal/types"
)

// HealthRecordService owns the append-only health log collections. Each
// user's logs live under one KV key as a single JSON array; writes go
// through a read-modify-write cycle serialized per user.
type HealthRecordService struct {
	store storage.Store
	locks *keyedMutex
}

func NewHealthRecordService(store storage.Store) *HealthRecordService {
	return &HealthRecordService{
		store: store,
		locks: newKeyedMutex(),
	}
}

func logsKey(userID uuid.UUID) string {
	return "logs_" + userID.String()
}

// validateMeasurement checks fields in a fixed order so the error always
// names the first offending field.
func validateMeasurement(m *types.Measurement) error {
	switch {
	case m.Weight <= 0:
		return invalidField("weight", "must be positive")
	case m.Systolic <= 0:
		return invalidField("systolic", "must be positive")
	case m.Diastolic <= 0:
		return invalidField("diastolic", "must be positive")
	case m.HeartRate <= 0:
		return invalidField("heartRate", "must be positive")
	case m.SugarLevel <= 0:
		return invalidField("sugarLevel", "must be positive")
	case m.ActivityMinutes < 0:
		return invalidField("activityMinutes", "must not be negative")
	}
	return nil
}

// computeBMI derives BMI from weight in kilograms and height in
// centimeters. The value is stored raw; rounding is a display concern.
func computeBMI(weightKg, heightCm float64) float64 {
	meters := heightCm / 100
	return weightKg / (meters * meters)
}

// Append validates the measurement, stamps it with an id, timestamp and
// BMI fixed from the owner's current height, and persists the grown
// collection atomically. On storage failure the prior collection is
// untouched and the call may simply be retried.
func (s *HealthRecordService) Append(ctx context.Context, userID uuid.UUID, heightCm float64, m *types.Measurement) (*types.HealthLog, error) {
	if err := validateMeasurement(m); err != nil {
		return nil, err
	}
	if heightCm <= 0 {
		return nil, invalidField("height", "must be positive")
	}

	key := logsKey(userID)
	unlock := s.locks.Lock(key)
	defer unlock()

	logs, err := s.loadLogs(ctx, key)
	if err != nil {
		return nil, err
	}

	entry := types.HealthLog{
		ID:              uuid.NewString(),
		UserID:          userID.String(),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		Weight:          m.Weight,
		Systolic:        m.Systolic,
		Diastolic:       m.Diastolic,
		HeartRate:       m.HeartRate,
		SugarLevel:      m.SugarLevel,
		ActivityMinutes: m.ActivityMinutes,
		BMI:             computeBMI(m.Weight, heightCm),
	}
	logs = append(logs, entry)

	if err := s.saveLogs(ctx, key, logs); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns the user's full log collection in insertion order. A user
// with no logs gets an empty slice.
func (s *HealthRecordService) List(ctx context.Context, userID uuid.UUID) ([]types.HealthLog, error) {
	return s.loadLogs(ctx, logsKey(userID))
}

// Latest returns the most recent log, or nil when the user has none.
func (s *HealthRecordService) Latest(ctx context.Context, userID uuid.UUID) (*types.HealthLog, error) {
	logs, err := s.loadLogs(ctx, logsKey(userID))
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, nil
	}
	return &logs[len(logs)-1], nil
}

// Trend fields accepted by the charting endpoint.
const (
	FieldWeight          = "weight"
	FieldSystolic        = "systolic"
	FieldDiastolic       = "diastolic"
	FieldHeartRate       = "heartRate"
	FieldSugarLevel      = "sugarLevel"
	FieldActivityMinutes = "activityMinutes"
	FieldBMI             = "bmi"
)

// Trend extracts one metric as (timestamp, value) points in insertion
// order. Values are raw pass-throughs, never interpolated or smoothed.
func (s *HealthRecordService) Trend(ctx context.Context, userID uuid.UUID, field string) ([]types.TrendPoint, error) {
	var pick func(*types.HealthLog) float64
	switch field {
	case FieldWeight:
		pick = func(l *types.HealthLog) float64 { return l.Weight }
	case FieldSystolic:
		pick = func(l *types.HealthLog) float64 { return float64(l.Systolic) }
	case FieldDiastolic:
		pick = func(l *types.HealthLog) float64 { return float64(l.Diastolic) }
	case FieldHeartRate:
		pick = func(l *types.HealthLog) float64 { return float64(l.HeartRate) }
	case FieldSugarLevel:
		pick = func(l *types.HealthLog) float64 { return l.SugarLevel }
	case FieldActivityMinutes:
		pick = func(l *types.HealthLog) float64 { return float64(l.ActivityMinutes) }
	case FieldBMI:
		pick = func(l *types.HealthLog) float64 { return l.BMI }
	default:
		return nil, invalidField("field", "unknown trend field")
	}

	logs, err := s.loadLogs(ctx, logsKey(userID))
	if err != nil {
		return nil, err
	}

	points := make([]types.TrendPoint, 0, len(logs))
	for i := range logs {
		points = append(points, types.TrendPoint{
			Timestamp: logs[i].Timestamp,
			Value:     pick(&logs[i]),
		})
	}
	return points, nil
}

// Deltas summarizes latest minus previous for the dashboard, rounded to
// one decimal place. With fewer than two logs there is no delta at all,
// not a zero delta.
type Deltas struct {
	Weight     float64 `json:"weight"`
	Systolic   float64 `json:"systolic"`
	Diastolic  float64 `json:"diastolic"`
	HeartRate  float64 `json:"heartRate"`
	SugarLevel float64 `json:"sugarLevel"`
	BMI        float64 `json:"bmi"`
}

// LatestDeltas returns the change between the two most recent logs, or
// nil when the user has fewer than two.
func (s *HealthRecordService) LatestDeltas(ctx context.Context, userID uuid.UUID) (*Deltas, error) {
	logs, err := s.loadLogs(ctx, logsKey(userID))
	if err != nil {
		return nil, err
	}
	if len(logs) < 2 {
		return nil, nil
	}

	latest := &logs[len(logs)-1]
	prev := &logs[len(logs)-2]
	return &Deltas{
		Weight:     round1(latest.Weight - prev.Weight),
		Systolic:   round1(float64(latest.Systolic - prev.Systolic)),
		Diastolic:  round1(float64(latest.Diastolic - prev.Diastolic)),
		HeartRate:  round1(float64(latest.HeartRate - prev.HeartRate)),
		SugarLevel: round1(latest.SugarLevel - prev.SugarLevel),
		BMI:        round1(latest.BMI - prev.BMI),
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (s *HealthRecordService) loadLogs(ctx context.Context, key string) ([]types.HealthLog, error) {
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []types.HealthLog{}, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Key: key, Err: err}
	}

	var logs []types.HealthLog
	if err := json.Unmarshal(data, &logs); err != nil {
		return nil, &PersistenceError{Op: "decode", Key: key, Err: err}
	}
	return logs, nil
}

func (s *HealthRecordService) saveLogs(ctx context.Context, key string, logs []types.HealthLog) error {
	data, err := json.Marshal(logs)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: key, Err: err}
	}
	if err := s.store.Set(ctx, key, data); err != nil {
		return &PersistenceError{Op: "save", Key: key, Err: err}
	}
	return nil
}
