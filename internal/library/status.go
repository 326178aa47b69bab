package library

// Status is the lifecycle state of a release record.
type Status string

const (
	StatusNew              Status = "NEW"
	StatusUpgradeCandidate Status = "UPGRADE_CANDIDATE"
	StatusIgnored          Status = "IGNORED"
	StatusAdded            Status = "ADDED"
	StatusUpgraded         Status = "UPGRADED"
)

// validTransitions defines allowed state transitions.
// Key is the "from" status, value is the list of valid "to" statuses.
// NEW, UPGRADE_CANDIDATE and IGNORED move freely between each other under
// re-scoring; ADDED and UPGRADED only ever fall back to IGNORED via
// explicit dismissal.
var validTransitions = map[Status][]Status{
	StatusNew:              {StatusAdded, StatusUpgradeCandidate, StatusIgnored},
	StatusUpgradeCandidate: {StatusUpgraded, StatusNew, StatusIgnored},
	StatusIgnored:          {StatusNew, StatusUpgradeCandidate},
	StatusAdded:            {StatusIgnored},
	StatusUpgraded:         {StatusIgnored},
}

// CanTransitionTo returns true if transitioning from s to target is valid.
func (s Status) CanTransitionTo(target Status) bool {
	for _, v := range validTransitions[s] {
		if v == target {
			return true
		}
	}
	return false
}

// IsAcquired reports whether the release has been confirmed downloaded.
func (s Status) IsAcquired() bool {
	return s == StatusAdded || s == StatusUpgraded
}
