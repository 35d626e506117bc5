package models

// ComparisonResult is the aggregate-level verdict of a local/server
// comparison. Divergence is data, not an error: every disagreeing dimension
// contributes one discrepancy message.
type ComparisonResult struct {
	IsValid       bool     `json:"isValid"`
	Discrepancies []string `json:"discrepancies"`
	Suggestions   []string `json:"suggestions"`
}

// QuantityDifference is one card present on both sides with differing counts.
type QuantityDifference struct {
	CardID         string  `json:"cardId"`
	Variant        Variant `json:"variant"`
	LocalQuantity  int     `json:"localQuantity"`
	ServerQuantity int     `json:"serverQuantity"`
}

// CollectionDiff is the per-record breakdown between two collections.
type CollectionDiff struct {
	OnlyInLocal         []PersistenceCard    `json:"onlyInLocal"`
	OnlyInServer        []PersistenceCard    `json:"onlyInServer"`
	QuantityDifferences []QuantityDifference `json:"quantityDifferences"`
}

// ValidationResult accumulates every problem found in a single record.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// SnapshotValidationResult is the envelope-level validation outcome.
// Warnings (e.g. schema-version drift) do not make the snapshot invalid.
type SnapshotValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// DataHealthStatus is a coarse classification of the current sync state,
// recomputed from fresh inputs on every request.
type DataHealthStatus string

const (
	HealthHealthy DataHealthStatus = "healthy"
	HealthWarning DataHealthStatus = "warning"
	HealthError   DataHealthStatus = "error"
	HealthEmpty   DataHealthStatus = "empty"
	HealthUnknown DataHealthStatus = "unknown"
)

// Urgency grades how strongly the user should be nudged to sync.
type Urgency string

const (
	UrgencyNone   Urgency = "none"
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// SyncStatus is the user-facing staleness classification.
type SyncStatus struct {
	Message string  `json:"message"`
	Urgency Urgency `json:"urgency"`
}

// SyncStatusReport is the full presentation payload for one profile.
type SyncStatusReport struct {
	ProfileID    string           `json:"profileId"`
	Health       DataHealthStatus `json:"health"`
	Message      string           `json:"message"`
	Color        string           `json:"color"`
	LastSync     string           `json:"lastSync"`
	SyncStatus   SyncStatus       `json:"syncStatus"`
	StatsSummary string           `json:"statsSummary"`
}
