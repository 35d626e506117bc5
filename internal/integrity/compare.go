package integrity

import (
	"fmt"
	"sort"

	"cid/internal/models"
)

// CompareChecksums classifies the divergence between local and server
// aggregate state. The result is valid iff the checksums are equal and all
// five stats counters match pairwise; every disagreeing dimension contributes
// its own message, so multiple simultaneous drifts are all reported.
func CompareChecksums(localChecksum, serverChecksum int64, localStats, serverStats models.DataStats) models.ComparisonResult {
	res := models.ComparisonResult{Discrepancies: []string{}, Suggestions: []string{}}

	if localChecksum != serverChecksum {
		res.Discrepancies = append(res.Discrepancies, fmt.Sprintf("Checksum mismatch: local %d vs server %d", localChecksum, serverChecksum))
	}

	collectionDrift := false
	if localStats.CollectionCards != serverStats.CollectionCards {
		res.Discrepancies = append(res.Discrepancies, fmt.Sprintf("Card entry count mismatch: local %d vs server %d", localStats.CollectionCards, serverStats.CollectionCards))
		collectionDrift = true
	}
	if localStats.TotalQuantity != serverStats.TotalQuantity {
		res.Discrepancies = append(res.Discrepancies, fmt.Sprintf("Total card quantity mismatch: local %d vs server %d", localStats.TotalQuantity, serverStats.TotalQuantity))
		collectionDrift = true
	}
	if localStats.UniqueCardIDs != serverStats.UniqueCardIDs {
		res.Discrepancies = append(res.Discrepancies, fmt.Sprintf("Unique card ID count mismatch: local %d vs server %d", localStats.UniqueCardIDs, serverStats.UniqueCardIDs))
		collectionDrift = true
	}
	if collectionDrift {
		res.Suggestions = append(res.Suggestions, "Re-sync the collection from the server to reconcile card entries")
	}

	if localStats.WishlistCards != serverStats.WishlistCards {
		res.Discrepancies = append(res.Discrepancies, fmt.Sprintf("Wishlist count mismatch: local %d vs server %d", localStats.WishlistCards, serverStats.WishlistCards))
	}
	if localStats.Achievements != serverStats.Achievements {
		res.Discrepancies = append(res.Discrepancies, fmt.Sprintf("Achievement count mismatch: local %d vs server %d", localStats.Achievements, serverStats.Achievements))
	}

	res.IsValid = len(res.Discrepancies) == 0
	return res
}

type diffKey struct {
	cardID  string
	variant models.Variant
}

// indexByKey keys cards by (cardId, variant). Duplicate keys are not expected
// but keep the last-seen record, identically for both sides of a diff.
func indexByKey(cards []models.PersistenceCard) map[diffKey]models.PersistenceCard {
	byKey := make(map[diffKey]models.PersistenceCard, len(cards))
	for _, c := range cards {
		byKey[diffKey{cardID: c.CardID, variant: c.Variant}] = c
	}
	return byKey
}

// DiffCollections produces the field-level breakdown between two collections.
// Variant is part of a card's identity: the same cardId in two variants is
// reported as two unrelated records, never as a quantity difference. Results
// are sorted by (cardId, variant) so output is deterministic.
func DiffCollections(local, server []models.PersistenceCard) models.CollectionDiff {
	diff := models.CollectionDiff{
		OnlyInLocal:         []models.PersistenceCard{},
		OnlyInServer:        []models.PersistenceCard{},
		QuantityDifferences: []models.QuantityDifference{},
	}

	localByKey := indexByKey(local)
	serverByKey := indexByKey(server)

	for key, lc := range localByKey {
		sc, ok := serverByKey[key]
		if !ok {
			diff.OnlyInLocal = append(diff.OnlyInLocal, lc)
			continue
		}
		if lc.Quantity != sc.Quantity {
			diff.QuantityDifferences = append(diff.QuantityDifferences, models.QuantityDifference{
				CardID:         key.cardID,
				Variant:        key.variant,
				LocalQuantity:  lc.Quantity,
				ServerQuantity: sc.Quantity,
			})
		}
	}

	for key, sc := range serverByKey {
		if _, ok := localByKey[key]; !ok {
			diff.OnlyInServer = append(diff.OnlyInServer, sc)
		}
	}

	sortCards(diff.OnlyInLocal)
	sortCards(diff.OnlyInServer)
	sort.Slice(diff.QuantityDifferences, func(i, j int) bool {
		a, b := diff.QuantityDifferences[i], diff.QuantityDifferences[j]
		if a.CardID != b.CardID {
			return a.CardID < b.CardID
		}
		return a.Variant < b.Variant
	})

	return diff
}

func sortCards(cards []models.PersistenceCard) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].CardID != cards[j].CardID {
			return cards[i].CardID < cards[j].CardID
		}
		return cards[i].Variant < cards[j].Variant
	})
}
