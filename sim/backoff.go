package sim

// GenerateBackoff derives a backoff counter in [0, window) for a node.
//
// The formula (nodeID + ticks) mod window is intentionally not a
// statistical RNG: it is a cheap reproducible placeholder that still
// spreads colliding nodes apart, since their IDs differ. Given identical
// inputs it always returns the same value, which is what makes whole runs
// replayable.
//
// window must be positive; Config.Validate rejects window sequences that
// contain zero before any simulation starts.
func GenerateBackoff(nodeID, ticks, window int) int {
	return (nodeID + ticks) % window
}
