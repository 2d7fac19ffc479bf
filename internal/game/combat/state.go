package combat

import (
	"github.com/google/uuid"

	"github.com/kmarsden/gametable/internal/game/world"
)

// HoldKind classifies a hold specification.
type HoldKind string

// Hold kinds.
const (
	// HoldUntil parks an actor until a specific trigger actor's turn resolves.
	HoldUntil HoldKind = "until"
	// HoldEndOfRound parks an actor until the round boundary is crossed.
	HoldEndOfRound HoldKind = "end_of_round"
)

// Hold is a hold specification: either until a trigger actor, or end of round.
type Hold struct {
	Kind           HoldKind
	TriggerActorID string // set only for HoldUntil
}

// HeldActor pairs a held actor ID with its hold specification. Holds are kept
// as an ordered slice rather than a map so trigger processing releases actors
// in the order their holds were declared.
type HeldActor struct {
	ActorID string
	Hold    Hold
}

// State is the full mutable state of one encounter. It is a plain value owned
// exclusively by the caller; the engine never retains or shares it.
//
// Invariant: Round >= 1; TurnIndex in [0, len(Initiatives)) while the list is
// non-empty; History is append-only.
type State struct {
	// EncounterID uniquely identifies this encounter for audit logs.
	EncounterID string
	// SessionID is the owning game session.
	SessionID string
	// Active is true while the encounter is running. The engine never sets
	// it false itself; ending combat is the caller's call.
	Active bool
	// Round is the current round number, starting at 1.
	Round int
	// TurnIndex is the index of the current actor in Initiatives.
	TurnIndex int
	// Initiatives is the turn order. Mutable: hold triggers reorder it.
	Initiatives []*Combatant
	// History is the append-only audit trail of resolved actions.
	History []Event
	// Environment is the set of terrain features on the battlefield.
	Environment []world.Feature
	// Holds is the ordered list of parked actors awaiting triggers.
	Holds []HeldActor
	// ThreatScores accumulates per-actor aggression, keyed by actor ID.
	// Absent keys read as 0. Scores never decay on their own.
	ThreatScores map[string]float64
}

// NewState creates the encounter state for a session from an
// initiative-ordered roster.
//
// Precondition: initiatives should come from RollInitiative.
// Postcondition: Round == 1, TurnIndex == 0, Active == true, empty history.
func NewState(sessionID string, initiatives []*Combatant) *State {
	return &State{
		EncounterID:  uuid.NewString(),
		SessionID:    sessionID,
		Active:       true,
		Round:        1,
		TurnIndex:    0,
		Initiatives:  initiatives,
		ThreatScores: make(map[string]float64),
	}
}

// Combatant returns the combatant with the given ID, or nil.
func (s *State) Combatant(id string) *Combatant {
	for _, c := range s.Initiatives {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// indexOf returns the position of the combatant with the given ID, or -1.
func (s *State) indexOf(id string) int {
	for i, c := range s.Initiatives {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// CurrentActor returns the combatant whose turn it is, or nil when the
// initiative list is empty.
func (s *State) CurrentActor() *Combatant {
	if len(s.Initiatives) == 0 || s.TurnIndex < 0 || s.TurnIndex >= len(s.Initiatives) {
		return nil
	}
	return s.Initiatives[s.TurnIndex]
}

// LivingPlayers returns all living player-controlled combatants in
// initiative order.
func (s *State) LivingPlayers() []*Combatant {
	var out []*Combatant
	for _, c := range s.Initiatives {
		if c.IsPlayer() && c.IsAlive() {
			out = append(out, c)
		}
	}
	return out
}

// LivingMonsters returns all living monster-controlled combatants in
// initiative order.
func (s *State) LivingMonsters() []*Combatant {
	var out []*Combatant
	for _, c := range s.Initiatives {
		if c.IsMonster() && c.IsAlive() {
			out = append(out, c)
		}
	}
	return out
}

// HoldFor returns the hold parked for actorID, if any.
func (s *State) HoldFor(actorID string) (Hold, bool) {
	for _, h := range s.Holds {
		if h.ActorID == actorID {
			return h.Hold, true
		}
	}
	return Hold{}, false
}

// removeHold deletes the hold entry for actorID, preserving order of the rest.
func (s *State) removeHold(actorID string) {
	for i, h := range s.Holds {
		if h.ActorID == actorID {
			s.Holds = append(s.Holds[:i], s.Holds[i+1:]...)
			return
		}
	}
}

// Record appends an event to the encounter history.
//
// Postcondition: the event is assigned an ID and the current round number.
func (s *State) Record(ev Event) {
	ev.ID = uuid.NewString()
	ev.Round = s.Round
	s.History = append(s.History, ev)
}
