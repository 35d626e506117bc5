package models

// Variant identifies the print style of an owned card. It is part of a
// card's identity: the same cardId in two variants is two distinct records.
type Variant string

const (
	VariantNormal               Variant = "normal"
	VariantHolofoil             Variant = "holofoil"
	VariantReverseHolofoil      Variant = "reverseHolofoil"
	VariantFirstEditionNormal   Variant = "firstEditionNormal"
	VariantFirstEditionHolofoil Variant = "firstEditionHolofoil"
)

// KnownVariants lists every accepted print variant.
var KnownVariants = []Variant{
	VariantNormal,
	VariantHolofoil,
	VariantReverseHolofoil,
	VariantFirstEditionNormal,
	VariantFirstEditionHolofoil,
}

// PersistenceCard is one owned print of a card, keyed by (cardId, variant).
type PersistenceCard struct {
	CardID   string  `json:"cardId"`
	Variant  Variant `json:"variant"`
	Quantity int     `json:"quantity"`
}

// PersistenceWishlistCard is a desired card and its priority flag.
type PersistenceWishlistCard struct {
	CardID     string `json:"cardId"`
	IsPriority bool   `json:"isPriority"`
}

// PersistenceAchievement is an unlocked milestone. Immutable once created.
type PersistenceAchievement struct {
	AchievementType string `json:"achievementType"`
	AchievementKey  string `json:"achievementKey"`
	EarnedAt        int64  `json:"earnedAt"` // unix milliseconds
}
