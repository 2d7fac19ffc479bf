package combat

// AdvanceTurn moves the turn pointer to the next combatant in initiative
// order. Wrapping past the end of the list starts a new round.
//
// Postcondition: returns the new current actor's ID, or "" when the
// initiative list is empty; wrapping increments Round by exactly 1.
func AdvanceTurn(s *State) string {
	if len(s.Initiatives) == 0 {
		return ""
	}
	s.TurnIndex = (s.TurnIndex + 1) % len(s.Initiatives)
	if s.TurnIndex == 0 {
		s.Round++
	}
	return s.Initiatives[s.TurnIndex].ID
}

// AddHold parks actorID behind a hold condition. The actor stays in the
// initiative list; the caller is expected to skip its normal turn and advance
// past it until the hold releases.
//
// An existing hold for the same actor is replaced. Unknown actor IDs are
// ignored.
func AddHold(s *State, actorID string, hold Hold) {
	if s.Combatant(actorID) == nil {
		return
	}
	for i, h := range s.Holds {
		if h.ActorID == actorID {
			s.Holds[i].Hold = hold
			return
		}
	}
	s.Holds = append(s.Holds, HeldActor{ActorID: actorID, Hold: hold})
}

// ProcessTrigger releases every actor held until triggerActorID, reinserting
// each immediately after the trigger actor's current position. Actors are
// released in the order their holds were declared and keep that relative
// order after reinsertion. Each released hold is consumed.
//
// The turn pointer is re-located by actor ID after the reorder, so it keeps
// referencing the same logical actor it did before the mutation.
//
// Postcondition: returns the IDs of the reinserted actors, in release order;
// empty when the trigger ID is unknown or nothing was held on it.
func ProcessTrigger(s *State, triggerActorID string) []string {
	triggerIdx := s.indexOf(triggerActorID)
	if triggerIdx < 0 {
		return nil
	}

	var toRelease []string
	for _, h := range s.Holds {
		if h.Hold.Kind == HoldUntil && h.Hold.TriggerActorID == triggerActorID {
			toRelease = append(toRelease, h.ActorID)
		}
	}
	if len(toRelease) == 0 {
		return nil
	}

	currentID := ""
	if cur := s.CurrentActor(); cur != nil {
		currentID = cur.ID
	}

	// insertPos tracks the slot after the trigger and after every actor
	// already reinserted this call, preserving declared hold order.
	insertPos := s.indexOf(triggerActorID) + 1
	released := make([]string, 0, len(toRelease))
	for _, actorID := range toRelease {
		from := s.indexOf(actorID)
		if from < 0 {
			continue
		}
		actor := s.Initiatives[from]
		s.Initiatives = append(s.Initiatives[:from], s.Initiatives[from+1:]...)
		if from < insertPos {
			insertPos--
		}
		s.Initiatives = append(s.Initiatives, nil)
		copy(s.Initiatives[insertPos+1:], s.Initiatives[insertPos:])
		s.Initiatives[insertPos] = actor
		insertPos++

		s.removeHold(actorID)
		released = append(released, actorID)
	}

	// Removal and reinsertion shift indices; recover the pointer by ID.
	if currentID != "" {
		if idx := s.indexOf(currentID); idx >= 0 {
			s.TurnIndex = idx
		}
	}
	return released
}

// ReleaseEndOfRoundHolds consumes every end-of-round hold. The caller invokes
// this when the round boundary is crossed; released actors simply rejoin
// normal turn progression at their existing positions.
//
// Postcondition: returns the released actor IDs in hold-declaration order;
// no end-of-round holds remain.
func ReleaseEndOfRoundHolds(s *State) []string {
	var released []string
	kept := s.Holds[:0]
	for _, h := range s.Holds {
		if h.Hold.Kind == HoldEndOfRound {
			released = append(released, h.ActorID)
			continue
		}
		kept = append(kept, h)
	}
	s.Holds = kept
	return released
}
