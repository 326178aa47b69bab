package library

import (
	"fmt"
	"strings"
	"time"
)

const releaseColumns = `id, guid, title, show_name, clean_title, media_type, season, year,
	tvdb_id, tmdb_id, imdb_id, tvdb_id_manual, tmdb_id_manual, imdb_id_manual,
	resolution, codec, source_tag, audio, size_mb, audio_langs,
	status, existing_score, existing_size_mb, new_score,
	published_at, last_checked_at, added_at, updated_at`

// rowScanner matches both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRelease(row rowScanner) (*Release, error) {
	r := &Release{}
	var langs string
	err := row.Scan(
		&r.ID, &r.GUID, &r.Title, &r.ShowName, &r.CleanTitle, &r.MediaType, &r.Season, &r.Year,
		&r.Identity.TVDBID, &r.Identity.TMDBID, &r.Identity.IMDBID,
		&r.TVDBIDManual, &r.TMDBIDManual, &r.IMDBIDManual,
		&r.Resolution, &r.Codec, &r.SourceTag, &r.Audio, &r.SizeMB, &langs,
		&r.Status, &r.ExistingScore, &r.ExistingSizeMB, &r.NewScore,
		&r.PublishedAt, &r.LastCheckedAt, &r.AddedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.AudioLangs = splitLangs(langs)
	return r, nil
}

func addRelease(q querier, r *Release) error {
	now := time.Now()
	if r.Status == "" {
		r.Status = StatusNew
	}
	if r.LastCheckedAt.IsZero() {
		r.LastCheckedAt = now
	}
	result, err := q.Exec(`
		INSERT INTO releases (guid, title, show_name, clean_title, media_type, season, year,
			tvdb_id, tmdb_id, imdb_id, tvdb_id_manual, tmdb_id_manual, imdb_id_manual,
			resolution, codec, source_tag, audio, size_mb, audio_langs,
			status, existing_score, existing_size_mb, new_score,
			published_at, last_checked_at, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GUID, r.Title, r.ShowName, r.CleanTitle, r.MediaType, r.Season, r.Year,
		r.Identity.TVDBID, r.Identity.TMDBID, r.Identity.IMDBID,
		r.TVDBIDManual, r.TMDBIDManual, r.IMDBIDManual,
		r.Resolution, r.Codec, r.SourceTag, r.Audio, r.SizeMB, joinLangs(r.AudioLangs),
		r.Status, r.ExistingScore, r.ExistingSizeMB, r.NewScore,
		r.PublishedAt, r.LastCheckedAt, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert release: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	r.ID = id
	r.AddedAt = now
	r.UpdatedAt = now
	return nil
}

// AddRelease inserts a new release record.
// Sets ID, AddedAt and UpdatedAt on the struct; Status defaults to NEW.
func (s *Store) AddRelease(r *Release) error { return addRelease(s.db, r) }

// AddRelease inserts a new release record within a transaction.
func (t *Tx) AddRelease(r *Release) error { return addRelease(t.tx, r) }

func getRelease(q querier, id int64) (*Release, error) {
	r, err := scanRelease(q.QueryRow(
		"SELECT "+releaseColumns+" FROM releases WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("get release %d: %w", id, mapSQLiteError(err))
	}
	return r, nil
}

// GetRelease retrieves a release by ID.
// Returns ErrNotFound if the release does not exist.
func (s *Store) GetRelease(id int64) (*Release, error) { return getRelease(s.db, id) }

// GetRelease retrieves a release by ID within a transaction.
func (t *Tx) GetRelease(id int64) (*Release, error) { return getRelease(t.tx, id) }

func getByGUID(q querier, guid string) (*Release, error) {
	r, err := scanRelease(q.QueryRow(
		"SELECT "+releaseColumns+" FROM releases WHERE guid = ?", guid))
	if err != nil {
		return nil, fmt.Errorf("get release by guid %q: %w", guid, mapSQLiteError(err))
	}
	return r, nil
}

// GetByGUID retrieves a release by its feed GUID.
func (s *Store) GetByGUID(guid string) (*Release, error) { return getByGUID(s.db, guid) }

// GetByGUID retrieves a release by its feed GUID within a transaction.
func (t *Tx) GetByGUID(guid string) (*Release, error) { return getByGUID(t.tx, guid) }

func listReleases(q querier, f ReleaseFilter) ([]*Release, error) {
	var conditions []string
	var args []any

	if f.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *f.Status)
	}
	if f.MediaType != nil {
		conditions = append(conditions, "media_type = ?")
		args = append(args, *f.MediaType)
	}
	if f.TVDBID != nil {
		conditions = append(conditions, "tvdb_id = ?")
		args = append(args, *f.TVDBID)
	}
	if f.TMDBID != nil {
		conditions = append(conditions, "tmdb_id = ?")
		args = append(args, *f.TMDBID)
	}
	if f.Unresolved {
		conditions = append(conditions, "tvdb_id IS NULL AND tmdb_id IS NULL AND imdb_id IS NULL")
	}
	if f.Incomplete {
		conditions = append(conditions, "(tvdb_id IS NULL OR tmdb_id IS NULL OR imdb_id IS NULL)")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := "SELECT " + releaseColumns + " FROM releases " + whereClause + " ORDER BY id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Release
	for rows.Next() {
		r, err := scanRelease(rows)
		if err != nil {
			return nil, fmt.Errorf("scan release: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate releases: %w", err)
	}

	return results, nil
}

// ListReleases returns releases matching the filter.
func (s *Store) ListReleases(f ReleaseFilter) ([]*Release, error) { return listReleases(s.db, f) }

// ListReleases returns releases matching the filter within a transaction.
func (t *Tx) ListReleases(f ReleaseFilter) ([]*Release, error) { return listReleases(t.tx, f) }

func updateRelease(q querier, r *Release) error {
	now := time.Now()
	result, err := q.Exec(`
		UPDATE releases SET title = ?, show_name = ?, clean_title = ?, media_type = ?, season = ?, year = ?,
			tvdb_id = ?, tmdb_id = ?, imdb_id = ?, tvdb_id_manual = ?, tmdb_id_manual = ?, imdb_id_manual = ?,
			resolution = ?, codec = ?, source_tag = ?, audio = ?, size_mb = ?, audio_langs = ?,
			status = ?, existing_score = ?, existing_size_mb = ?, new_score = ?,
			published_at = ?, last_checked_at = ?, updated_at = ?
		WHERE id = ?`,
		r.Title, r.ShowName, r.CleanTitle, r.MediaType, r.Season, r.Year,
		r.Identity.TVDBID, r.Identity.TMDBID, r.Identity.IMDBID,
		r.TVDBIDManual, r.TMDBIDManual, r.IMDBIDManual,
		r.Resolution, r.Codec, r.SourceTag, r.Audio, r.SizeMB, joinLangs(r.AudioLangs),
		r.Status, r.ExistingScore, r.ExistingSizeMB, r.NewScore,
		r.PublishedAt, r.LastCheckedAt, now, r.ID,
	)
	if err != nil {
		return fmt.Errorf("update release %d: %w", r.ID, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update release %d: %w", r.ID, ErrNotFound)
	}
	r.UpdatedAt = now
	return nil
}

// UpdateRelease updates an existing release. Sets UpdatedAt on the struct.
func (s *Store) UpdateRelease(r *Release) error { return updateRelease(s.db, r) }

// UpdateRelease updates an existing release within a transaction.
func (t *Tx) UpdateRelease(r *Release) error { return updateRelease(t.tx, r) }

func updateIdentity(q querier, r *Release) error {
	now := time.Now()
	_, err := q.Exec(`
		UPDATE releases SET tvdb_id = ?, tmdb_id = ?, imdb_id = ?,
			tvdb_id_manual = ?, tmdb_id_manual = ?, imdb_id_manual = ?,
			show_name = ?, year = ?, last_checked_at = ?, updated_at = ?
		WHERE id = ?`,
		r.Identity.TVDBID, r.Identity.TMDBID, r.Identity.IMDBID,
		r.TVDBIDManual, r.TMDBIDManual, r.IMDBIDManual,
		r.ShowName, r.Year, now, now, r.ID,
	)
	if err != nil {
		return fmt.Errorf("update identity for release %d: %w", r.ID, mapSQLiteError(err))
	}
	r.LastCheckedAt = now
	r.UpdatedAt = now
	return nil
}

// UpdateIdentity writes only the identity fields, manual flags and display
// metadata of a release.
func (s *Store) UpdateIdentity(r *Release) error { return updateIdentity(s.db, r) }

// UpdateIdentity writes identity fields within a transaction.
func (t *Tx) UpdateIdentity(r *Release) error { return updateIdentity(t.tx, r) }

func transition(q querier, r *Release, target Status) error {
	if !r.Status.CanTransitionTo(target) {
		return fmt.Errorf("transition %s -> %s: %w", r.Status, target, ErrInvalidTransition)
	}
	now := time.Now()
	_, err := q.Exec(`
		UPDATE releases SET status = ?, new_score = ?, last_checked_at = ?, updated_at = ?
		WHERE id = ?`,
		target, r.NewScore, now, now, r.ID,
	)
	if err != nil {
		return fmt.Errorf("transition release %d: %w", r.ID, mapSQLiteError(err))
	}
	r.Status = target
	r.LastCheckedAt = now
	r.UpdatedAt = now
	return nil
}

// Transition moves a release to a new lifecycle status, validating the
// transition and bumping last_checked_at.
func (s *Store) Transition(r *Release, target Status) error { return transition(s.db, r, target) }

// Transition moves a release to a new lifecycle status within a transaction.
func (t *Tx) Transition(r *Release, target Status) error { return transition(t.tx, r, target) }

// Touch updates last_checked_at without changing status; used when a
// re-scoring pass confirms the current verdict.
func (s *Store) Touch(r *Release) error {
	now := time.Now()
	_, err := s.db.Exec("UPDATE releases SET last_checked_at = ?, updated_at = ? WHERE id = ?", now, now, r.ID)
	if err != nil {
		return fmt.Errorf("touch release %d: %w", r.ID, err)
	}
	r.LastCheckedAt = now
	r.UpdatedAt = now
	return nil
}

// DeleteRelease removes a release and blacklists its GUID in one
// transaction so the same feed item can never be recreated.
func (s *Store) DeleteRelease(id int64) error {
	tx, err := s.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	r, err := tx.GetRelease(id)
	if err != nil {
		return err
	}
	if _, err := tx.tx.Exec("DELETE FROM releases WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete release %d: %w", id, mapSQLiteError(err))
	}
	if err := addToBlacklist(tx.tx, r.GUID); err != nil {
		return err
	}
	return tx.Commit()
}
