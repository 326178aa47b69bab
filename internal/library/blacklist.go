package library

import (
	"fmt"
	"time"
)

func addToBlacklist(q querier, guid string) error {
	_, err := q.Exec(
		"INSERT OR IGNORE INTO blacklist (guid, added_at) VALUES (?, ?)",
		guid, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("blacklist guid %q: %w", guid, mapSQLiteError(err))
	}
	return nil
}

// Blacklist records a GUID so feed sync will never recreate it.
func (s *Store) Blacklist(guid string) error { return addToBlacklist(s.db, guid) }

// IsBlacklisted reports whether the GUID was removed by a user.
func (s *Store) IsBlacklisted(guid string) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM blacklist WHERE guid = ?", guid).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check blacklist for %q: %w", guid, err)
	}
	return n > 0, nil
}
