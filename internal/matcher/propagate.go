package matcher

import (
	"strings"

	"github.com/vmunix/matcharr/internal/library"
)

// minNameLength is the shortest normalized name that may match a sibling by
// containment. Very short names match by exact equality only.
const minNameLength = 3

// propagate copies the source release's resolved identity to every sibling
// release of the same media type, matched by shared catalog ID or by
// normalized show name. Fields a sibling has manually flagged are left
// untouched. The operation is idempotent: an already-consistent sibling set
// produces zero writes.
func propagate(tx *library.Tx, src *library.Release) (int, error) {
	siblings, err := tx.ListReleases(library.ReleaseFilter{MediaType: &src.MediaType})
	if err != nil {
		return 0, err
	}

	writes := 0
	for _, sib := range siblings {
		if sib.ID == src.ID || !isSibling(src, sib) {
			continue
		}
		if !applyIdentity(sib, src) {
			continue
		}
		if err := tx.UpdateIdentity(sib); err != nil {
			return writes, err
		}
		writes++
	}
	return writes, nil
}

// isSibling reports whether two releases belong to the same show or movie:
// either they share a resolved catalog ID, or their normalized names match.
func isSibling(src, sib *library.Release) bool {
	if src.Identity.TVDBID != nil && sib.Identity.TVDBID != nil &&
		*src.Identity.TVDBID == *sib.Identity.TVDBID {
		return true
	}
	if src.Identity.TMDBID != nil && sib.Identity.TMDBID != nil &&
		*src.Identity.TMDBID == *sib.Identity.TMDBID {
		return true
	}
	return sameShow(nameKey(src), nameKey(sib))
}

// nameKey is the normalized name used for sibling matching.
func nameKey(r *library.Release) string {
	if r.CleanTitle != "" {
		return strings.ToLower(strings.TrimSpace(r.CleanTitle))
	}
	return strings.ToLower(strings.TrimSpace(r.ShowName))
}

// sameShow matches two normalized names exactly, or by containment when the
// shorter name is long enough to be a meaningful signal.
func sameShow(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	shorter, longer := a, b
	if len(b) < len(a) {
		shorter, longer = b, a
	}
	return len(shorter) > minNameLength && strings.Contains(longer, shorter)
}

// applyIdentity copies each of src's resolved ID fields onto the sibling,
// skipping manually flagged fields, and reports whether anything changed.
func applyIdentity(sib, src *library.Release) bool {
	changed := false
	if src.Identity.TVDBID != nil && !sib.TVDBIDManual &&
		(sib.Identity.TVDBID == nil || *sib.Identity.TVDBID != *src.Identity.TVDBID) {
		id := *src.Identity.TVDBID
		sib.Identity.TVDBID = &id
		changed = true
	}
	if src.Identity.TMDBID != nil && !sib.TMDBIDManual &&
		(sib.Identity.TMDBID == nil || *sib.Identity.TMDBID != *src.Identity.TMDBID) {
		id := *src.Identity.TMDBID
		sib.Identity.TMDBID = &id
		changed = true
	}
	if src.Identity.IMDBID != nil && !sib.IMDBIDManual &&
		(sib.Identity.IMDBID == nil || *sib.Identity.IMDBID != *src.Identity.IMDBID) {
		id := *src.Identity.IMDBID
		sib.Identity.IMDBID = &id
		changed = true
	}
	return changed
}
