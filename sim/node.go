package sim

// readyToTransmit is the backoff value at which a node attempts
// transmission on the next idle tick.
const readyToTransmit = 0

// Node is the mutable state of one contending station. Nodes are created
// once by NewSimulator and mutated in place every tick; they never move
// between simulators.
type Node struct {
	// ID is the station identity, equal to the node's index in the
	// simulator's slice. Immutable after initialization.
	ID int
	// Backoff is the number of ticks remaining before the node is ready
	// to transmit. Invariant: always in [0, Window); zero means "ready
	// this tick".
	Backoff int
	// Window is the current contention-window bound, one of the
	// configured R-sequence values, indexed by CollisionCount.
	Window int
	// CollisionCount is the number of consecutive collisions since the
	// last successful transmission or packet drop. Invariant: in
	// [0, Config.MaxAttempts].
	CollisionCount int
	// TicksRemaining counts down the configured packet length while this
	// node holds the channel. Meaningless when the node is not
	// transmitting.
	TicksRemaining int
}

// ready reports whether the node's backoff has run out.
func (n *Node) ready() bool {
	return n.Backoff == readyToTransmit
}

// Channel is the single shared broadcast medium. ActiveNodeID is only
// meaningful while Occupied is true.
type Channel struct {
	Occupied     bool
	ActiveNodeID int
}
