// Package shared provides reusable domain logic shared across aggregates.
package shared

import "time"

// IsExpiredAt reports whether expiresAt lies strictly before now.
// A nil expiresAt never expires.
func IsExpiredAt(expiresAt *time.Time, now time.Time) bool {
	if expiresAt == nil {
		return false
	}
	return now.After(*expiresAt)
}

// ContainsID reports whether id is a member of ids.
func ContainsID(ids []uint, id uint) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// UniqueIDs returns ids with duplicates removed, preserving first occurrence order.
func UniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
