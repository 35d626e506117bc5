package integrity

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"cid/internal/models"
)

// fieldSeparator joins record fields into the canonical per-record string.
// Card IDs and variant names never contain it.
const fieldSeparator = "|"

// HashCode is a 31-base polynomial rolling hash over the UTF-16 code units
// of s, wrapping in 32-bit arithmetic. Equal inputs always hash equal and
// HashCode("") == 0. Matches the checksum values already stored by clients,
// so the algorithm must not change.
func HashCode(s string) int64 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(u)
	}
	return int64(h)
}

func cardRecordString(c models.PersistenceCard) string {
	return strings.Join([]string{c.CardID, string(c.Variant), strconv.Itoa(c.Quantity)}, fieldSeparator)
}

func wishlistRecordString(c models.PersistenceWishlistCard) string {
	return strings.Join([]string{c.CardID, strconv.FormatBool(c.IsPriority)}, fieldSeparator)
}

func achievementRecordString(a models.PersistenceAchievement) string {
	return strings.Join([]string{a.AchievementType, a.AchievementKey, strconv.FormatInt(a.EarnedAt, 10)}, fieldSeparator)
}

// ComputeCollectionChecksum fingerprints a card collection. Per-record hashes
// are combined by wrapping 32-bit addition — commutative and associative over
// the multiset of records, so any permutation of the same records yields the
// same checksum. An empty or nil collection yields 0.
func ComputeCollectionChecksum(cards []models.PersistenceCard) int64 {
	var sum int32
	for _, c := range cards {
		sum += int32(HashCode(cardRecordString(c)))
	}
	return int64(sum)
}

// ComputeWishlistChecksum fingerprints a wishlist over cardId and priority.
func ComputeWishlistChecksum(cards []models.PersistenceWishlistCard) int64 {
	var sum int32
	for _, c := range cards {
		sum += int32(HashCode(wishlistRecordString(c)))
	}
	return int64(sum)
}

// ComputeAchievementChecksum fingerprints achievements over type, key and
// earnedAt.
func ComputeAchievementChecksum(achievements []models.PersistenceAchievement) int64 {
	var sum int32
	for _, a := range achievements {
		sum += int32(HashCode(achievementRecordString(a)))
	}
	return int64(sum)
}

// ComputeStats derives the aggregate counters in a single pass over each
// array. By construction TotalQuantity >= CollectionCards >= UniqueCardIDs
// whenever every quantity is at least 1.
func ComputeStats(collection []models.PersistenceCard, wishlist []models.PersistenceWishlistCard, achievements []models.PersistenceAchievement) models.DataStats {
	unique := make(map[string]struct{}, len(collection))
	stats := models.DataStats{
		WishlistCards: len(wishlist),
		Achievements:  len(achievements),
	}
	for _, c := range collection {
		stats.CollectionCards++
		stats.TotalQuantity += c.Quantity
		unique[c.CardID] = struct{}{}
	}
	stats.UniqueCardIDs = len(unique)
	return stats
}

// ComputeFullChecksum combines the three per-category checksums into one
// overall value and derives the stats alongside. The categories are fixed
// and always present, so they are folded in a fixed polynomial order; the
// result is fully deterministic for identical inputs. Empty inputs yield
// checksum 0 and all-zero stats.
func ComputeFullChecksum(collection []models.PersistenceCard, wishlist []models.PersistenceWishlistCard, achievements []models.PersistenceAchievement) models.ChecksumResult {
	h := int32(ComputeCollectionChecksum(collection))
	h = h*31 + int32(ComputeWishlistChecksum(wishlist))
	h = h*31 + int32(ComputeAchievementChecksum(achievements))

	return models.ChecksumResult{
		Checksum:   int64(h),
		Stats:      ComputeStats(collection, wishlist, achievements),
		ComputedAt: time.Now(),
	}
}
