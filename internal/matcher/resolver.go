package matcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/vmunix/matcharr/internal/events"
	"github.com/vmunix/matcharr/internal/library"
	"github.com/vmunix/matcharr/internal/omdb"
	"github.com/vmunix/matcharr/internal/tmdb"
	"github.com/vmunix/matcharr/internal/websearch"
	"github.com/vmunix/matcharr/pkg/release"
	"github.com/vmunix/matcharr/pkg/tvdb"
)

// similarityFloor is the minimum Similarity score a TVDB candidate must
// reach before validation even runs. Below-floor candidates are rejected
// outright, never accepted as a least-bad match.
const similarityFloor = 0.5

// yearMatchBonus is added to a TVDB candidate's similarity when its year
// equals the release's year, to break ties in favor of the right era.
const yearMatchBonus = 0.1

// yearTolerance is the maximum year difference ValidateYearMatch accepts.
const yearTolerance = 3

// Resolver turns noisy release titles into validated catalog identities.
type Resolver struct {
	store  *library.Store
	shows  TVDBCatalog
	movies MovieCatalog
	imdb   IMDBLookup
	web    WebSearcher
	bus    *events.Bus
	lease  Lease
	pacer  *Pacer
	log    *slog.Logger
}

// ResolverConfig wires a Resolver's collaborators. Store is required; any
// catalog left nil is simply skipped during resolution. Lease, Pacer and
// Logger get working defaults when nil.
type ResolverConfig struct {
	Store  *library.Store
	Shows  TVDBCatalog
	Movies MovieCatalog
	IMDB   IMDBLookup
	Web    WebSearcher
	Bus    *events.Bus
	Lease  Lease
	Pacer  *Pacer
	Logger *slog.Logger
}

// NewResolver creates a resolver from the given collaborators.
func NewResolver(cfg ResolverConfig) *Resolver {
	if cfg.Lease == nil {
		cfg.Lease = NewMemoryLease()
	}
	if cfg.Pacer == nil {
		cfg.Pacer = NewPacer(time.Second)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Resolver{
		store:  cfg.Store,
		shows:  cfg.Shows,
		movies: cfg.Movies,
		imdb:   cfg.IMDB,
		web:    cfg.Web,
		bus:    cfg.Bus,
		lease:  cfg.Lease,
		pacer:  cfg.Pacer,
		log:    cfg.Logger.With("component", "matcher"),
	}
}

// PassStats summarizes one enrichment pass.
type PassStats struct {
	PassID   uuid.UUID
	Queued   int
	Resolved int
	Skipped  int
}

// RunPass resolves every unresolved release sequentially. Only one pass may
// run at a time; a concurrent request is rejected with ErrAlreadyRunning.
// Catalog failures never abort the pass; store failures do, leaving
// already-committed items intact because each item commits its own
// transaction.
func (res *Resolver) RunPass(ctx context.Context) (PassStats, error) {
	var stats PassStats

	ok, err := res.lease.TryAcquire()
	if err != nil {
		return stats, fmt.Errorf("acquire pass lease: %w", err)
	}
	if !ok {
		return stats, ErrAlreadyRunning
	}
	defer func() {
		if err := res.lease.Release(); err != nil {
			res.log.Warn("failed to release pass lease", "error", err)
		}
	}()

	passID := uuid.New()
	// Partially resolved releases stay in the queue: a known ID seeds
	// cross-reference lookups for the missing ones.
	queue, err := res.store.ListReleases(library.ReleaseFilter{Incomplete: true})
	if err != nil {
		return stats, fmt.Errorf("list unresolved releases: %w", err)
	}
	stats.PassID = passID
	stats.Queued = len(queue)
	res.publish(ctx, events.NewPassStarted(passID, len(queue)))
	res.log.Info("enrichment pass started", "pass_id", passID, "queued", len(queue))

	for _, r := range queue {
		if !res.enrich(ctx, r) {
			stats.Skipped++
			continue
		}
		propagated, err := res.commit(r)
		if err != nil {
			res.publish(ctx, events.NewPassFailed(passID, err))
			return stats, fmt.Errorf("commit resolution for release %d: %w", r.ID, err)
		}
		stats.Resolved++
		res.publish(ctx, events.NewReleaseResolved(passID, r.ID,
			r.Identity.TVDBID, r.Identity.TMDBID, r.Identity.IMDBID, propagated))
		res.log.Info("release resolved",
			"pass_id", passID, "release_id", r.ID, "title", r.Title, "propagated", propagated)
	}

	res.publish(ctx, events.NewPassCompleted(passID, stats.Resolved, stats.Skipped))
	res.log.Info("enrichment pass completed",
		"pass_id", passID, "resolved", stats.Resolved, "skipped", stats.Skipped)
	return stats, nil
}

// ManualMatch carries human-supplied catalog IDs. Every non-nil field is
// written as-is and flagged manual so automation never overwrites it.
type ManualMatch struct {
	TVDBID *int64
	TMDBID *int64
	IMDBID *string
}

// ResolveManual applies a user-directed match. It bypasses the pass lease
// and the automatic search steps entirely: the human-supplied IDs are
// trusted, and catalogs are only consulted to fetch canonical display
// metadata and fill unflagged gaps.
func (res *Resolver) ResolveManual(ctx context.Context, releaseID int64, m ManualMatch) (*library.Release, error) {
	r, err := res.store.GetRelease(releaseID)
	if err != nil {
		return nil, err
	}

	if m.TVDBID != nil {
		r.Identity.TVDBID = m.TVDBID
		r.TVDBIDManual = true
	}
	if m.TMDBID != nil {
		r.Identity.TMDBID = m.TMDBID
		r.TMDBIDManual = true
	}
	if m.IMDBID != nil {
		r.Identity.IMDBID = m.IMDBID
		r.IMDBIDManual = true
	}

	res.fetchCanonical(ctx, r)

	propagated, err := res.commit(r)
	if err != nil {
		return nil, fmt.Errorf("commit manual match for release %d: %w", releaseID, err)
	}
	res.publish(ctx, events.NewReleaseResolved(uuid.New(), r.ID,
		r.Identity.TVDBID, r.Identity.TMDBID, r.Identity.IMDBID, propagated))
	res.log.Info("manual match applied", "release_id", r.ID, "propagated", propagated)
	return r, nil
}

// commit writes the identity and its propagation in one transaction per
// triggering resolution, so a crash cannot leave siblings half-updated.
func (res *Resolver) commit(r *library.Release) (int, error) {
	tx, err := res.store.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.UpdateIdentity(r); err != nil {
		return 0, err
	}
	propagated, err := propagate(tx, r)
	if err != nil {
		return 0, err
	}
	return propagated, tx.Commit()
}

// item tracks per-release state across the resolution steps. A catalog that
// reports a rate limit is skipped for the rest of this item but not for the
// pass.
type item struct {
	rel     *library.Release
	changed bool

	tvdbLimited bool
	tmdbLimited bool
}

// enrich runs the automatic resolution flow against one release and reports
// whether any field changed. All catalog failures are logged and treated as
// "no candidate from this source".
func (res *Resolver) enrich(ctx context.Context, r *library.Release) bool {
	it := &item{rel: r}

	res.seedFromKnown(ctx, it)
	if r.MediaType == library.MediaTypeMovie {
		res.deriveTMDBFromIMDB(ctx, it)
	}
	res.lookupIMDB(ctx, it)
	switch r.MediaType {
	case library.MediaTypeMovie:
		res.searchMovie(ctx, it)
		res.crossValidate(ctx, it)
	case library.MediaTypeTV:
		res.searchShow(ctx, it)
	}

	return it.changed
}

// seedFromKnown derives missing identity fields from ones already stored,
// via each catalog's cross-reference lookups.
func (res *Resolver) seedFromKnown(ctx context.Context, it *item) {
	r := it.rel

	if r.MediaType == library.MediaTypeTV && r.Identity.TVDBID != nil && res.shows != nil {
		ext, err := res.pacedSeriesExtended(ctx, it, *r.Identity.TVDBID)
		if err == nil {
			res.fillFromRemoteIDs(it, ext.RemoteIDs)
		}
	}

	if r.MediaType == library.MediaTypeMovie && r.Identity.TMDBID != nil && res.movies != nil {
		movie, err := res.pacedGetMovie(ctx, it, *r.Identity.TMDBID)
		if err == nil && movie.IMDBID != "" {
			it.fillIMDB(movie.IMDBID)
		}
	}
}

// deriveTMDBFromIMDB resolves a missing TMDB ID from a known IMDB ID via
// the find-by-external-ID endpoint.
func (res *Resolver) deriveTMDBFromIMDB(ctx context.Context, it *item) {
	r := it.rel
	if r.Identity.TMDBID != nil || r.Identity.IMDBID == nil || res.movies == nil || it.tmdbLimited {
		return
	}

	found, err := res.pacedFindByIMDB(ctx, it, *r.Identity.IMDBID)
	if err != nil {
		return
	}
	it.fillTMDB(found.ID)
}

// lookupIMDB resolves a missing IMDB ID from the title, first through the
// dedicated lookup service, then through web search extraction.
func (res *Resolver) lookupIMDB(ctx context.Context, it *item) {
	r := it.rel
	if r.Identity.IMDBID != nil {
		return
	}
	title := displayTitle(r)
	if title == "" {
		return
	}

	if res.imdb != nil {
		if err := res.pacer.Wait(ctx); err != nil {
			return
		}
		id, err := res.imdb.LookupIMDBID(ctx, title, r.Year)
		if err == nil {
			it.fillIMDB(id)
			return
		}
		res.logLookupFailure("imdb lookup", r, err)
	}

	if res.web != nil {
		if err := res.pacer.Wait(ctx); err != nil {
			return
		}
		query := title
		if r.Year > 0 {
			query = fmt.Sprintf("%s %d", title, r.Year)
		}
		id, err := res.web.SearchIMDBID(ctx, query)
		if err != nil {
			res.logLookupFailure("web search", r, err)
			return
		}
		it.fillIMDB(id)
	}
}

// searchMovie resolves a missing TMDB ID by title search, retrying once
// with the normalized title variant when the primary form yields nothing.
func (res *Resolver) searchMovie(ctx context.Context, it *item) {
	r := it.rel
	if r.Identity.TMDBID != nil || res.movies == nil || it.tmdbLimited {
		return
	}
	title := displayTitle(r)
	if title == "" {
		return
	}

	if res.searchMovieOnce(ctx, it, title) {
		return
	}
	if normalized := release.CleanTitle(title); normalized != title {
		res.searchMovieOnce(ctx, it, normalized)
	}
}

func (res *Resolver) searchMovieOnce(ctx context.Context, it *item, title string) bool {
	r := it.rel
	results, err := res.pacedSearchMovies(ctx, it, title, r.Year)
	if err != nil || len(results) == 0 {
		return false
	}

	titles := make([]string, len(results))
	for i, c := range results {
		titles[i] = c.Title
	}
	best := release.MatchMovieTitle(title, titles)
	if best.Confidence < release.ConfidenceMedium {
		return false
	}

	candidate := results[best.Index]
	// A year disagreement on both sides rejects the candidate outright; a
	// near-year result is never accepted silently.
	if r.Year > 0 && candidate.Year() > 0 && r.Year != candidate.Year() {
		res.log.Warn("movie candidate rejected on year mismatch",
			"release_id", r.ID, "title", title,
			"candidate", candidate.Title, "release_year", r.Year, "candidate_year", candidate.Year())
		return false
	}

	it.fillTMDB(candidate.ID)
	res.adoptMovieMetadata(it, candidate)
	return true
}

// adoptMovieMetadata takes the matched movie's canonical name and year for
// display.
func (res *Resolver) adoptMovieMetadata(it *item, m tmdb.MovieResult) {
	r := it.rel
	if m.Title != "" && r.ShowName != m.Title {
		r.ShowName = m.Title
		it.changed = true
	}
	if r.Year == 0 && m.Year() > 0 {
		r.Year = m.Year()
		it.changed = true
	}
}

// scoredCandidate pairs a TVDB search result with its acceptance score.
type scoredCandidate struct {
	result tvdb.SearchResult
	score  float64
}

// searchShow resolves a missing TVDB ID by show-name search. Every
// candidate is scored, gated by the similarity floor and the name/year
// validators, and the survivors are ranked; zero survivors leaves the show
// unresolved for this run.
func (res *Resolver) searchShow(ctx context.Context, it *item) {
	r := it.rel
	if r.Identity.TVDBID != nil || res.shows == nil || it.tvdbLimited {
		return
	}
	name := displayTitle(r)
	if name == "" {
		return
	}

	results, err := res.pacedSearchShows(ctx, it, name)
	if err != nil {
		return
	}

	var survivors []scoredCandidate
	for _, c := range results {
		sim := release.Similarity(name, c.Name)
		if sim < similarityFloor {
			continue
		}
		if !release.ValidateShowNameMatch(name, c.Name, 1) {
			continue
		}
		if r.Year > 0 && !release.ValidateYearMatch(r.Year, c.Year, yearTolerance) {
			continue
		}
		score := sim
		if r.Year > 0 && c.Year == r.Year {
			score += yearMatchBonus
		}
		survivors = append(survivors, scoredCandidate{result: c, score: score})
	}
	if len(survivors) == 0 {
		res.log.Debug("no show candidate survived validation",
			"release_id", r.ID, "name", name, "searched", len(results))
		return
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		if survivors[i].score != survivors[j].score {
			return survivors[i].score > survivors[j].score
		}
		return survivors[i].result.ID < survivors[j].result.ID
	})
	top := survivors[0].result

	it.fillTVDB(top.ID)
	if top.Name != "" && r.ShowName != top.Name {
		r.ShowName = top.Name
		it.changed = true
	}
	if r.Year == 0 && top.Year > 0 {
		r.Year = top.Year
		it.changed = true
	}

	// The extended record links the other catalogs' IDs.
	ext, err := res.pacedSeriesExtended(ctx, it, top.ID)
	if err == nil {
		res.fillFromRemoteIDs(it, ext.RemoteIDs)
	}
}

// crossValidate checks a stored TMDB/IMDB pair against each other. On
// disagreement the IMDB-derived TMDB ID wins only when its year matches the
// release's known year (or no year is available to compare); otherwise the
// stored value stays and the discrepancy is logged.
func (res *Resolver) crossValidate(ctx context.Context, it *item) {
	r := it.rel
	if r.Identity.TMDBID == nil || r.Identity.IMDBID == nil || res.movies == nil || it.tmdbLimited {
		return
	}

	movie, err := res.pacedGetMovie(ctx, it, *r.Identity.TMDBID)
	if err != nil || movie.IMDBID == "" || movie.IMDBID == *r.Identity.IMDBID {
		return
	}

	found, err := res.pacedFindByIMDB(ctx, it, *r.Identity.IMDBID)
	if err != nil {
		res.log.Warn("identity conflict: TMDB and IMDB disagree, keeping stored TMDB ID",
			"release_id", r.ID, "tmdb_id", *r.Identity.TMDBID,
			"imdb_id", *r.Identity.IMDBID, "tmdb_linked_imdb", movie.IMDBID)
		return
	}

	if r.Year > 0 && found.Year() > 0 && found.Year() != r.Year {
		res.log.Warn("identity conflict: re-derived TMDB ID fails year check, keeping stored TMDB ID",
			"release_id", r.ID, "stored_tmdb_id", *r.Identity.TMDBID,
			"rederived_tmdb_id", found.ID, "release_year", r.Year, "rederived_year", found.Year())
		return
	}
	if r.TMDBIDManual {
		return
	}
	if *r.Identity.TMDBID != found.ID {
		res.log.Warn("identity conflict resolved from IMDB ID",
			"release_id", r.ID, "old_tmdb_id", *r.Identity.TMDBID, "new_tmdb_id", found.ID)
		id := found.ID
		r.Identity.TMDBID = &id
		it.changed = true
	}
}

// fetchCanonical pulls display metadata for a manually matched release and
// fills unflagged identity gaps from the catalog's cross-references.
func (res *Resolver) fetchCanonical(ctx context.Context, r *library.Release) {
	it := &item{rel: r}

	if r.MediaType == library.MediaTypeTV && r.Identity.TVDBID != nil && res.shows != nil {
		ext, err := res.pacedSeriesExtended(ctx, it, *r.Identity.TVDBID)
		if err != nil {
			return
		}
		if ext.Name != "" {
			r.ShowName = ext.Name
		}
		if ext.Year > 0 {
			r.Year = ext.Year
		}
		res.fillFromRemoteIDs(it, ext.RemoteIDs)
	}

	if r.MediaType == library.MediaTypeMovie && r.Identity.TMDBID != nil && res.movies != nil {
		movie, err := res.pacedGetMovie(ctx, it, *r.Identity.TMDBID)
		if err != nil {
			return
		}
		if movie.Title != "" {
			r.ShowName = movie.Title
		}
		if movie.Year() > 0 {
			r.Year = movie.Year()
		}
		if movie.IMDBID != "" {
			it.fillIMDB(movie.IMDBID)
		}
	}
}

func (res *Resolver) fillFromRemoteIDs(it *item, ids tvdb.RemoteIDs) {
	if ids.TMDBID != 0 {
		it.fillTMDB(ids.TMDBID)
	}
	if ids.IMDBID != "" {
		it.fillIMDB(ids.IMDBID)
	}
}

// Paced catalog calls. Each waits for the rate pacer, performs the call,
// and on failure records whether the catalog rate-limited this item.

func (res *Resolver) pacedSearchShows(ctx context.Context, it *item, query string) ([]tvdb.SearchResult, error) {
	if err := res.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	results, err := res.shows.Search(ctx, query)
	if err != nil {
		if errors.Is(err, tvdb.ErrRateLimited) {
			it.tvdbLimited = true
		}
		res.logLookupFailure("tvdb search", it.rel, err)
		return nil, err
	}
	return results, nil
}

func (res *Resolver) pacedSeriesExtended(ctx context.Context, it *item, id int64) (*tvdb.SeriesExtended, error) {
	if err := res.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	ext, err := res.shows.GetSeriesExtended(ctx, id)
	if err != nil {
		if errors.Is(err, tvdb.ErrRateLimited) {
			it.tvdbLimited = true
		}
		res.logLookupFailure("tvdb extended", it.rel, err)
		return nil, err
	}
	return ext, nil
}

func (res *Resolver) pacedGetMovie(ctx context.Context, it *item, id int64) (*tmdb.Movie, error) {
	if err := res.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	movie, err := res.movies.GetMovie(ctx, id)
	if err != nil {
		if errors.Is(err, tmdb.ErrRateLimited) {
			it.tmdbLimited = true
		}
		res.logLookupFailure("tmdb get", it.rel, err)
		return nil, err
	}
	return movie, nil
}

func (res *Resolver) pacedSearchMovies(ctx context.Context, it *item, title string, year int) ([]tmdb.MovieResult, error) {
	if err := res.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	results, err := res.movies.SearchMovies(ctx, title, year)
	if err != nil {
		if errors.Is(err, tmdb.ErrRateLimited) {
			it.tmdbLimited = true
		}
		res.logLookupFailure("tmdb search", it.rel, err)
		return nil, err
	}
	return results, nil
}

func (res *Resolver) pacedFindByIMDB(ctx context.Context, it *item, imdbID string) (*tmdb.MovieResult, error) {
	if err := res.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	found, err := res.movies.FindByIMDB(ctx, imdbID)
	if err != nil {
		if errors.Is(err, tmdb.ErrRateLimited) {
			it.tmdbLimited = true
		}
		res.logLookupFailure("tmdb find", it.rel, err)
		return nil, err
	}
	return found, nil
}

// logLookupFailure records a catalog failure at a level matching its
// severity. Rate limits are warnings; everything else is a routine miss.
func (res *Resolver) logLookupFailure(op string, r *library.Release, err error) {
	if errors.Is(err, tvdb.ErrRateLimited) || errors.Is(err, tmdb.ErrRateLimited) ||
		errors.Is(err, omdb.ErrRateLimited) || errors.Is(err, websearch.ErrRateLimited) {
		res.log.Warn("catalog rate limited", "op", op, "release_id", r.ID, "error", err)
		return
	}
	res.log.Debug("catalog lookup failed", "op", op, "release_id", r.ID, "error", err)
}

func (res *Resolver) publish(ctx context.Context, e events.Event) {
	if res.bus == nil {
		return
	}
	_ = res.bus.Publish(ctx, e)
}

// displayTitle returns the best available title for catalog searches.
func displayTitle(r *library.Release) string {
	if r.ShowName != "" {
		return r.ShowName
	}
	if r.CleanTitle != "" {
		return r.CleanTitle
	}
	return r.Title
}

// fillTVDB sets the TVDB ID only when the field is empty and not manually
// flagged. Automated code never overwrites a manual value.
func (it *item) fillTVDB(id int64) {
	if it.rel.TVDBIDManual || it.rel.Identity.TVDBID != nil {
		return
	}
	it.rel.Identity.TVDBID = &id
	it.changed = true
}

func (it *item) fillTMDB(id int64) {
	if it.rel.TMDBIDManual || it.rel.Identity.TMDBID != nil {
		return
	}
	it.rel.Identity.TMDBID = &id
	it.changed = true
}

func (it *item) fillIMDB(id string) {
	if it.rel.IMDBIDManual || it.rel.Identity.IMDBID != nil {
		return
	}
	it.rel.Identity.IMDBID = &id
	it.changed = true
}
