// Package session owns encounter lifecycle and orchestrates engine calls on
// behalf of the transport layer: it enforces turn order and one-action-at-a-
// time semantics that the engine core deliberately leaves to its caller.
package session

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kmarsden/gametable/internal/game/ai"
	"github.com/kmarsden/gametable/internal/game/combat"
	"github.com/kmarsden/gametable/internal/game/dice"
	"github.com/kmarsden/gametable/internal/game/world"
)

// Narrator turns resolved combat events into human-readable text. It must
// not mutate combat state; the engine is fully usable with no narrator at
// all.
type Narrator interface {
	Narrate(state *combat.State, ev combat.Event) string
}

// Manager tracks all active encounters, keyed by session ID.
// All methods are safe for concurrent use; mutations to any single encounter
// are serialized under the manager's lock.
type Manager struct {
	mu         sync.RWMutex
	encounters map[string]*combat.State
	roller     *dice.Roller
	logger     *zap.Logger
	narrator   Narrator // may be nil
}

// NewManager creates an empty encounter Manager.
//
// Precondition: roller and logger must be non-nil; narrator may be nil.
func NewManager(roller *dice.Roller, logger *zap.Logger, narrator Narrator) *Manager {
	return &Manager{
		encounters: make(map[string]*combat.State),
		roller:     roller,
		logger:     logger,
		narrator:   narrator,
	}
}

// StartEncounter rolls initiative for the rosters and creates the combat
// state for sessionID.
//
// Precondition: the player and monster rosters must be disjoint.
// Postcondition: returns the new state, or an error if an encounter is
// already active for sessionID.
func (m *Manager) StartEncounter(sessionID string, players, monsters []*combat.Combatant, env []world.Feature) (*combat.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.encounters[sessionID]; exists {
		return nil, fmt.Errorf("encounter already active for session %q", sessionID)
	}

	order := combat.RollInitiative(players, monsters, m.roller.Source())
	state := combat.NewState(sessionID, order)
	state.Environment = env
	m.encounters[sessionID] = state

	m.logger.Info("encounter started",
		zap.String("session", sessionID),
		zap.String("encounter", state.EncounterID),
		zap.Int("combatants", len(order)),
	)
	for _, c := range order {
		m.logger.Debug("initiative",
			zap.String("id", c.ID),
			zap.Int("roll", c.Roll),
			zap.Int("modifier", c.Modifier),
			zap.Int("total", c.Total),
		)
	}
	return state, nil
}

// Encounter returns the active encounter for sessionID.
func (m *Manager) Encounter(sessionID string) (*combat.State, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.encounters[sessionID]
	return state, ok
}

// EndEncounter deactivates and removes the encounter for sessionID.
func (m *Manager) EndEncounter(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok := m.encounters[sessionID]; ok {
		state.Active = false
		delete(m.encounters, sessionID)
		m.logger.Info("encounter ended", zap.String("session", sessionID))
	}
}

// SubmitAction validates and applies one action for the current actor, then
// advances the turn. Out-of-turn submissions are rejected here, not in the
// engine core: this layer owns that contract.
//
// Postcondition: on success the action is resolved, recorded in history, and
// the turn pointer has advanced; on error the state is unchanged.
func (m *Manager) SubmitAction(sessionID string, action combat.Action) (*combat.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.encounters[sessionID]
	if !ok {
		return nil, fmt.Errorf("no encounter active for session %q", sessionID)
	}
	if !state.Active {
		return nil, fmt.Errorf("encounter for session %q is over", sessionID)
	}
	current := state.CurrentActor()
	if current == nil {
		return nil, fmt.Errorf("encounter for session %q has no combatants", sessionID)
	}
	if current.ID != action.ActorID {
		return nil, fmt.Errorf("actor %q acted out of turn: current actor is %q", action.ActorID, current.ID)
	}

	ev := m.applyAction(state, action)
	m.advance(state, action.ActorID)
	return ev, nil
}

// Hold parks the current actor behind a hold condition and advances past
// them.
func (m *Manager) Hold(sessionID string, actorID string, hold combat.Hold) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.encounters[sessionID]
	if !ok {
		return fmt.Errorf("no encounter active for session %q", sessionID)
	}
	current := state.CurrentActor()
	if current == nil || current.ID != actorID {
		return fmt.Errorf("actor %q cannot hold out of turn", actorID)
	}
	combat.AddHold(state, actorID, hold)
	m.advance(state, "")
	m.logger.Info("action held",
		zap.String("session", sessionID),
		zap.String("actor", actorID),
		zap.String("kind", string(hold.Kind)),
	)
	return nil
}

// RunMonsterTurn decides and applies up to maxActions monster actions for the
// current pass, advancing the turn once per deciding monster's action.
//
// Postcondition: returns the resolved events in decision order; empty when no
// monster had anything to do.
func (m *Manager) RunMonsterTurn(sessionID string, maxActions int) ([]combat.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.encounters[sessionID]
	if !ok {
		return nil, fmt.Errorf("no encounter active for session %q", sessionID)
	}
	if !state.Active {
		return nil, fmt.Errorf("encounter for session %q is over", sessionID)
	}

	actions := ai.DecideMonsterActions(state, maxActions)
	events := make([]combat.Event, 0, len(actions))
	for _, action := range actions {
		ev := m.applyAction(state, action)
		if ev != nil {
			events = append(events, *ev)
		}
		m.advance(state, action.ActorID)
	}
	return events, nil
}

// applyAction resolves a single action against the state and records it.
func (m *Manager) applyAction(state *combat.State, action combat.Action) *combat.Event {
	var ev combat.Event
	switch action.Type {
	case combat.ActionAttack:
		ev = m.applyAttack(state, action)
	case combat.ActionMove:
		if combat.ApplyMove(state, action) == nil {
			return nil
		}
		ev = state.History[len(state.History)-1]
	default:
		return nil
	}

	if m.narrator != nil {
		m.logger.Info("narration", zap.String("text", m.narrator.Narrate(state, ev)))
	}
	return &ev
}

// applyAttack resolves an attack action: rolls, applies damage, accrues
// threat for the attacker, and records the event.
func (m *Manager) applyAttack(state *combat.State, action combat.Action) combat.Event {
	actor := state.Combatant(action.ActorID)
	target := state.Combatant(action.TargetID)
	if actor == nil || target == nil || !target.IsAlive() {
		ev := combat.Event{Action: action, Note: "the attack finds no target"}
		state.Record(ev)
		return state.History[len(state.History)-1]
	}

	result := combat.ResolveAttack(action.AttackBonus, target.AC, action.DamageExpr, m.roller.Source())
	if result.Hit && result.DamageTotal > 0 {
		target.ApplyDamage(result.DamageTotal)
		combat.UpdateThreat(state, action.ActorID, float64(result.DamageTotal))
	}

	note := fmt.Sprintf("%s misses %s", actor.Name, target.Name)
	switch {
	case result.IsFumble:
		note = fmt.Sprintf("%s fumbles against %s", actor.Name, target.Name)
	case result.IsCritical:
		note = fmt.Sprintf("%s critically hits %s for %d", actor.Name, target.Name, result.DamageTotal)
	case result.Hit:
		note = fmt.Sprintf("%s hits %s for %d", actor.Name, target.Name, result.DamageTotal)
	}

	m.logger.Debug("attack resolved",
		zap.String("actor", action.ActorID),
		zap.String("target", action.TargetID),
		zap.Bool("ranged", action.Ranged),
		zap.Int("d20", result.D20),
		zap.Int("total", result.AttackTotal),
		zap.Bool("hit", result.Hit),
		zap.Int("damage", result.DamageTotal),
	)

	state.Record(combat.Event{Action: action, Attack: &result, Note: note})
	return state.History[len(state.History)-1]
}

// advance fires any holds waiting on the actor that just finished, moves the
// turn pointer, and consumes end-of-round holds at the round boundary.
func (m *Manager) advance(state *combat.State, finishedActorID string) {
	if finishedActorID != "" {
		if released := combat.ProcessTrigger(state, finishedActorID); len(released) > 0 {
			m.logger.Info("held actors released",
				zap.String("trigger", finishedActorID),
				zap.Strings("actors", released),
			)
		}
	}
	before := state.Round
	combat.AdvanceTurn(state)
	if state.Round > before {
		if released := combat.ReleaseEndOfRoundHolds(state); len(released) > 0 {
			m.logger.Info("end-of-round holds released", zap.Strings("actors", released))
		}
	}
}
