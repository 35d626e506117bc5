package integrity

import (
	"fmt"
	"strings"
	"time"

	"cid/internal/models"
)

// GetDataHealthMessage maps a health status to its fixed user-facing copy.
func GetDataHealthMessage(status models.DataHealthStatus) string {
	switch status {
	case models.HealthHealthy:
		return "Your collection data is synced and safe"
	case models.HealthWarning:
		return "Your collection data may be out of date"
	case models.HealthError:
		return "There is a problem with your collection data"
	case models.HealthEmpty:
		return "No collection data yet"
	default:
		return "Sync status unknown"
	}
}

// GetDataHealthColor maps a health status to its color token.
func GetDataHealthColor(status models.DataHealthStatus) string {
	switch status {
	case models.HealthHealthy:
		return "green"
	case models.HealthWarning:
		return "yellow"
	case models.HealthError:
		return "red"
	default:
		return "gray"
	}
}

// FormatSyncTime renders how long ago a sync happened. The zero time reads
// as "Never"; anything older than a week renders as an absolute date rather
// than a day count.
func FormatSyncTime(syncedAt time.Time) string {
	return formatSyncTimeAt(syncedAt, time.Now())
}

func formatSyncTimeAt(syncedAt, now time.Time) string {
	if syncedAt.IsZero() {
		return "Never"
	}

	elapsed := now.Sub(syncedAt)
	switch {
	case elapsed < time.Minute:
		return "Just now"
	case elapsed < time.Hour:
		return pluralizeAgo(int(elapsed.Minutes()), "minute")
	case elapsed < 24*time.Hour:
		return pluralizeAgo(int(elapsed.Hours()), "hour")
	case elapsed < 7*24*time.Hour:
		return pluralizeAgo(int(elapsed.Hours())/24, "day")
	default:
		return syncedAt.Format("Jan 2, 2006")
	}
}

func pluralizeAgo(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// GetSyncStatusMessage grades staleness into an urgency bucket with its
// message. Convention: a sync sitting exactly on a bucket edge (24h, 7d,
// 30d) reads as the fresher bucket, so exactly 24 hours old is still
// "recent".
func GetSyncStatusMessage(lastSync time.Time) models.SyncStatus {
	return syncStatusAt(lastSync, time.Now())
}

func syncStatusAt(lastSync, now time.Time) models.SyncStatus {
	if lastSync.IsZero() {
		return models.SyncStatus{Message: "Never synced - your collection is not backed up", Urgency: models.UrgencyHigh}
	}

	elapsed := now.Sub(lastSync)
	switch {
	case elapsed <= 24*time.Hour:
		return models.SyncStatus{Message: "Synced within the last 24 hours", Urgency: models.UrgencyNone}
	case elapsed <= 7*24*time.Hour:
		return models.SyncStatus{Message: "Last synced a few days ago", Urgency: models.UrgencyLow}
	case elapsed <= 30*24*time.Hour:
		return models.SyncStatus{Message: "Last synced over a week ago - consider syncing soon", Urgency: models.UrgencyMedium}
	default:
		return models.SyncStatus{Message: "Last synced over a month ago - sync now to protect your collection", Urgency: models.UrgencyHigh}
	}
}

// FormatDataStats builds a comma-joined human summary of the stats, omitting
// any clause whose count is zero. All-zero stats read as "No data".
func FormatDataStats(stats models.DataStats) string {
	parts := make([]string, 0, 4)
	if stats.TotalQuantity > 0 {
		parts = append(parts, fmt.Sprintf("%d cards", stats.TotalQuantity))
	}
	if stats.UniqueCardIDs > 0 {
		parts = append(parts, fmt.Sprintf("%d unique", stats.UniqueCardIDs))
	}
	if stats.WishlistCards > 0 {
		parts = append(parts, fmt.Sprintf("%d wishlist", stats.WishlistCards))
	}
	if stats.Achievements > 0 {
		parts = append(parts, fmt.Sprintf("%d achievements", stats.Achievements))
	}
	if len(parts) == 0 {
		return "No data"
	}
	return strings.Join(parts, ", ")
}
