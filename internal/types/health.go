package types

// HealthLog is one recorded measurement event. The log collection is
// append-only: entries are never edited, reordered or deleted, and the
// BMI is fixed at creation time using the owner's height at that moment.
type HealthLog struct {
	ID              string  `json:"id"`
	UserID          string  `json:"userId"`
	Timestamp       string  `json:"timestamp"`
	Weight          float64 `json:"weight"`
	Systolic        int     `json:"systolic"`
	Diastolic       int     `json:"diastolic"`
	HeartRate       int     `json:"heartRate"`
	SugarLevel      float64 `json:"sugarLevel"`
	ActivityMinutes int     `json:"activityMinutes"`
	BMI             float64 `json:"bmi"`
}

// Measurement is the typed input for one health log entry. Parsing happens
// once at the HTTP boundary; the record service validates the values.
type Measurement struct {
	Weight          float64 `json:"weight"`
	Systolic        int     `json:"systolic"`
	Diastolic       int     `json:"diastolic"`
	HeartRate       int     `json:"heartRate"`
	SugarLevel      float64 `json:"sugarLevel"`
	ActivityMinutes int     `json:"activityMinutes"`
}

// TrendPoint is one (timestamp, value) sample for charting. Values are raw
// pass-throughs in insertion order, never interpolated or smoothed.
type TrendPoint struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// EmergencyContact belongs to exactly one user. The contact set is mutable
// and unordered; display order may equal insertion order but is not a
// guaranteed contract.
type EmergencyContact struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}
