package agent

import (
	"sync"

	"github.com/Iron-Ham/swarmbot/internal/mailbox"
)

// unknownDistance marks a peer whose distance was never computed.
const unknownDistance = -1

// Reading is the outcome of one distance recomputation.
type Reading struct {
	Peer      int              // Roster index of the peer
	Position  mailbox.Position // Cached peer position used for the computation
	Distance  int              // Truncated distance to the peer
	Proximate bool             // Whether the peer is a neighbour
}

// Snapshot is a consistent copy of a State.
type Snapshot struct {
	Self      int
	Own       mailbox.Position
	Peers     []mailbox.Position
	Distances []int
	Countdown int
}

// State is the memory an agent keeps about itself and its peers. It is safe
// for concurrent use.
type State struct {
	mu        sync.Mutex
	self      int
	threshold int
	own       mailbox.Position
	peers     []mailbox.Position
	distances []int
	pending   []bool
	countdown int
}

// NewState returns the state of agent self in a swarm of n. Every peer starts
// out cached as departed and the countdown starts at n-1.
func NewState(self, n, threshold int) *State {
	s := &State{
		self:      self,
		threshold: threshold,
		own:       mailbox.Sentinel,
		peers:     make([]mailbox.Position, n),
		distances: make([]int, n),
		pending:   make([]bool, n),
		countdown: max(n-1, 0),
	}
	for i := range s.peers {
		s.peers[i] = mailbox.Sentinel
		s.distances[i] = unknownDistance
	}
	return s
}

// Self returns the agent's roster index.
func (s *State) Self() int {
	return s.self
}

// Len returns the swarm size.
func (s *State) Len() int {
	return len(s.peers)
}

// SetOwn records a newly published own position and schedules a
// recomputation of every peer distance.
func (s *State) SetOwn(p mailbox.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.own = p
	s.countdown = max(len(s.peers)-1, 0)
}

// Own returns the agent's current position.
func (s *State) Own() mailbox.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.own
}

func (s *State) isPeer(i int) bool {
	return i >= 0 && i < len(s.peers) && i != s.self
}

// Observe feeds a freshly read peer position into the cache. The position is
// accepted only when both coordinates differ from the cached ones; Observe
// reports whether it was.
func (s *State) Observe(peer int, p mailbox.Position) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isPeer(peer) {
		return false
	}
	cached := s.peers[peer]
	if p.X == cached.X || p.Y == cached.Y {
		return false
	}
	s.peers[peer] = p
	s.pending[peer] = true
	return true
}

// Evaluate recomputes the distance to peer when its position changed since
// the last evaluation or the countdown is still running. It reports false
// when nothing was recomputed.
func (s *State) Evaluate(peer int) (Reading, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isPeer(peer) {
		return Reading{}, false
	}
	if !s.pending[peer] && s.countdown <= 0 {
		return Reading{}, false
	}

	pos := s.peers[peer]
	d := Distance(s.own, pos)
	s.distances[peer] = d
	s.pending[peer] = false
	if s.countdown > 0 {
		s.countdown--
	}

	return Reading{
		Peer:      peer,
		Position:  pos,
		Distance:  d,
		Proximate: Proximate(pos, d, s.threshold),
	}, true
}

// Peer returns the cached position of peer.
func (s *State) Peer(peer int) mailbox.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	if peer < 0 || peer >= len(s.peers) {
		return mailbox.Sentinel
	}
	return s.peers[peer]
}

// Distance returns the last computed distance to peer, or -1 if none was.
func (s *State) Distance(peer int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if peer < 0 || peer >= len(s.distances) {
		return unknownDistance
	}
	return s.distances[peer]
}

// Countdown returns the number of forced recomputations left.
func (s *State) Countdown() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countdown
}

// Snapshot returns a copy of the whole state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Self:      s.self,
		Own:       s.own,
		Peers:     append([]mailbox.Position(nil), s.peers...),
		Distances: append([]int(nil), s.distances...),
		Countdown: s.countdown,
	}
}
