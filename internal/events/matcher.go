package events

import "github.com/google/uuid"

// Event types emitted by the identity resolver and scoring passes.
const (
	TypePassStarted     = "pass.started"
	TypePassCompleted   = "pass.completed"
	TypePassFailed      = "pass.failed"
	TypeReleaseResolved = "release.resolved"
	TypeReleaseScored   = "release.scored"
)

// PassStarted is emitted when an automatic enrichment pass begins.
type PassStarted struct {
	BaseEvent
	PassID uuid.UUID `json:"pass_id"`
	Queued int       `json:"queued"`
}

// NewPassStarted creates a PassStarted event.
func NewPassStarted(passID uuid.UUID, queued int) PassStarted {
	return PassStarted{
		BaseEvent: NewBaseEvent(TypePassStarted, "pass", 0),
		PassID:    passID,
		Queued:    queued,
	}
}

// PassCompleted is emitted when a pass finishes.
type PassCompleted struct {
	BaseEvent
	PassID   uuid.UUID `json:"pass_id"`
	Resolved int       `json:"resolved"`
	Skipped  int       `json:"skipped"`
}

// NewPassCompleted creates a PassCompleted event.
func NewPassCompleted(passID uuid.UUID, resolved, skipped int) PassCompleted {
	return PassCompleted{
		BaseEvent: NewBaseEvent(TypePassCompleted, "pass", 0),
		PassID:    passID,
		Resolved:  resolved,
		Skipped:   skipped,
	}
}

// PassFailed is emitted when a pass aborts.
type PassFailed struct {
	BaseEvent
	PassID uuid.UUID `json:"pass_id"`
	Error  string    `json:"error"`
}

// NewPassFailed creates a PassFailed event.
func NewPassFailed(passID uuid.UUID, err error) PassFailed {
	return PassFailed{
		BaseEvent: NewBaseEvent(TypePassFailed, "pass", 0),
		PassID:    passID,
		Error:     err.Error(),
	}
}

// ReleaseResolved is emitted when a release gains a catalog identity.
type ReleaseResolved struct {
	BaseEvent
	PassID     uuid.UUID `json:"pass_id"`
	TVDBID     *int64    `json:"tvdb_id,omitempty"`
	TMDBID     *int64    `json:"tmdb_id,omitempty"`
	IMDBID     *string   `json:"imdb_id,omitempty"`
	Propagated int       `json:"propagated"` // sibling records updated
}

// NewReleaseResolved creates a ReleaseResolved event.
func NewReleaseResolved(passID uuid.UUID, releaseID int64, tvdbID, tmdbID *int64, imdbID *string, propagated int) ReleaseResolved {
	return ReleaseResolved{
		BaseEvent:  NewBaseEvent(TypeReleaseResolved, "release", releaseID),
		PassID:     passID,
		TVDBID:     tvdbID,
		TMDBID:     tmdbID,
		IMDBID:     imdbID,
		Propagated: propagated,
	}
}

// ReleaseScored is emitted when the quality engine classifies a release.
type ReleaseScored struct {
	BaseEvent
	Score  int    `json:"score"`
	Status string `json:"status"`
}

// NewReleaseScored creates a ReleaseScored event.
func NewReleaseScored(releaseID int64, score int, status string) ReleaseScored {
	return ReleaseScored{
		BaseEvent: NewBaseEvent(TypeReleaseScored, "release", releaseID),
		Score:     score,
		Status:    status,
	}
}
