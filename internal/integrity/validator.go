package integrity

import (
	"fmt"
	"math"

	"github.com/spf13/cast"

	"cid/internal/models"
)

// IsValidCardID accepts identifiers of at least two characters, normally in
// "<setIdentifier>-<number>" form. The hyphen is optional; an unseparated
// identifier is still acceptable.
func IsValidCardID(id string) bool {
	return len(id) >= 2
}

// IsValidVariant checks membership in the known print variants.
func IsValidVariant(v models.Variant) bool {
	for _, known := range models.KnownVariants {
		if v == known {
			return true
		}
	}
	return false
}

// IsValidQuantity accepts strictly positive integers.
func IsValidQuantity(q int) bool {
	return q >= 1
}

// ValidateCard runs every check against a typed card, accumulating one error
// per failed check instead of stopping at the first.
func ValidateCard(card models.PersistenceCard) models.ValidationResult {
	res := models.ValidationResult{Errors: []string{}}
	if !IsValidCardID(card.CardID) {
		res.Errors = append(res.Errors, fmt.Sprintf("invalid card ID %q: must be at least 2 characters", card.CardID))
	}
	if !IsValidVariant(card.Variant) {
		res.Errors = append(res.Errors, fmt.Sprintf("invalid variant %q: not a known print variant", card.Variant))
	}
	if !IsValidQuantity(card.Quantity) {
		res.Errors = append(res.Errors, fmt.Sprintf("invalid quantity %d: must be a positive integer", card.Quantity))
	}
	res.IsValid = len(res.Errors) == 0
	return res
}

// ValidatePersistenceCard validates an arbitrary decoded-JSON value as a card
// record. Non-object input is invalid immediately; nothing here panics.
func ValidatePersistenceCard(candidate any) models.ValidationResult {
	res := models.ValidationResult{Errors: []string{}}

	obj, ok := candidate.(map[string]any)
	if !ok {
		res.Errors = append(res.Errors, "card record is not an object")
		return res
	}

	if id, ok := obj["cardId"].(string); !ok || !IsValidCardID(id) {
		res.Errors = append(res.Errors, fmt.Sprintf("invalid card ID %v: must be a string of at least 2 characters", obj["cardId"]))
	}
	if v, ok := obj["variant"].(string); !ok || !IsValidVariant(models.Variant(v)) {
		res.Errors = append(res.Errors, fmt.Sprintf("invalid variant %v: not a known print variant", obj["variant"]))
	}
	if !isIntegerQuantity(obj["quantity"]) {
		res.Errors = append(res.Errors, fmt.Sprintf("invalid quantity %v: must be a positive integer", obj["quantity"]))
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

// isIntegerQuantity accepts positive integral numbers. JSON numbers decode as
// float64, so fractional values and NaN are rejected explicitly.
func isIntegerQuantity(v any) bool {
	switch q := v.(type) {
	case float64:
		return !math.IsNaN(q) && q == math.Trunc(q) && q >= 1
	case int:
		return q >= 1
	case int64:
		return q >= 1
	default:
		return false
	}
}

// ValidateDataSnapshot structurally validates an arbitrary decoded-JSON value
// as a snapshot envelope. Missing checksum or collection are errors; a
// version tag different from the current IntegrityVersion is only a warning,
// since schema drift is recoverable.
func ValidateDataSnapshot(candidate any) models.SnapshotValidationResult {
	res := models.SnapshotValidationResult{Errors: []string{}, Warnings: []string{}}

	obj, ok := candidate.(map[string]any)
	if !ok {
		res.Errors = append(res.Errors, "snapshot is not an object")
		return res
	}

	if _, ok := obj["checksum"]; !ok {
		res.Errors = append(res.Errors, "missing required field: checksum")
	}

	rawCollection, ok := obj["collection"]
	if !ok {
		res.Errors = append(res.Errors, "missing required field: collection")
	} else if cards, ok := rawCollection.([]any); !ok {
		res.Errors = append(res.Errors, "collection is not an array")
	} else {
		for i, c := range cards {
			cardRes := ValidatePersistenceCard(c)
			for _, e := range cardRes.Errors {
				res.Errors = append(res.Errors, fmt.Sprintf("collection[%d]: %s", i, e))
			}
		}
	}

	if raw, ok := obj["version"]; !ok {
		res.Warnings = append(res.Warnings, fmt.Sprintf("snapshot has no version tag; current version is %d", models.IntegrityVersion))
	} else if cast.ToInt(raw) != models.IntegrityVersion {
		res.Warnings = append(res.Warnings, fmt.Sprintf("snapshot version %v does not match current version %d", raw, models.IntegrityVersion))
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

// ValidateSnapshot is the typed twin of ValidateDataSnapshot for snapshots
// already decoded into the current schema.
func ValidateSnapshot(snapshot *models.DataSnapshot) models.SnapshotValidationResult {
	res := models.SnapshotValidationResult{Errors: []string{}, Warnings: []string{}}

	if snapshot == nil {
		res.Errors = append(res.Errors, "snapshot is missing")
		return res
	}

	for i, c := range snapshot.Collection {
		cardRes := ValidateCard(c)
		for _, e := range cardRes.Errors {
			res.Errors = append(res.Errors, fmt.Sprintf("collection[%d]: %s", i, e))
		}
	}

	if snapshot.Version != models.IntegrityVersion {
		res.Warnings = append(res.Warnings, fmt.Sprintf("snapshot version %d does not match current version %d", snapshot.Version, models.IntegrityVersion))
	}

	res.IsValid = len(res.Errors) == 0
	return res
}
