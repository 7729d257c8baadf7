package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StaffSessionKey returns the cache key for a staff member's login session.
func (r *CacheKeyStruct) StaffSessionKey(staffID int) string {
	return fmt.Sprintf("login:%d", staffID)
}

// CatalogSnapshotKey returns the cache key for the serialized catalog rows.
func (r *CacheKeyStruct) CatalogSnapshotKey() string {
	return "catalog:snapshot"
}

// EquivalencySnapshotKey returns the cache key for the serialized equivalency rows.
func (r *CacheKeyStruct) EquivalencySnapshotKey() string {
	return "catalog:equivalencies"
}

// JobStateKey returns the cache key for a transcript job's state document.
func (r *CacheKeyStruct) JobStateKey(jobID string) string {
	return fmt.Sprintf("job:%s:state", jobID)
}

// JobResultKey returns the cache key for a transcript job's enriched result.
func (r *CacheKeyStruct) JobResultKey(jobID string) string {
	return fmt.Sprintf("job:%s:result", jobID)
}

// JobProgressChannel returns the Redis PubSub channel for a job's stage events.
func (r *CacheKeyStruct) JobProgressChannel(jobID string) string {
	return fmt.Sprintf("job:%s:progress", jobID)
}

var CacheKey = NewCacheKeyStruct()
