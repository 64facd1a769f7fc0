package services

import (
	"fmt"

	"streambot/domain/entities"
	"streambot/domain/interfaces"
)

// duelRecord is the registry's owned copy of a duel plus its pending timeout
type duelRecord struct {
	duel       *entities.Duel
	timer      interfaces.Timer
	timerToken uint64 // 0 when no timeout is armed
}

// duelRegistry owns every active duel. byParticipant is a secondary index
// and never holds a duel byID does not. Callers synchronize access.
type duelRegistry struct {
	byID          map[string]*duelRecord
	byParticipant map[string]string
}

func newDuelRegistry() *duelRegistry {
	return &duelRegistry{
		byID:          make(map[string]*duelRecord),
		byParticipant: make(map[string]string),
	}
}

// create registers a new duel and indexes its challenger
func (r *duelRegistry) create(duel *entities.Duel) *duelRecord {
	if _, exists := r.byID[duel.ID]; exists {
		panic(fmt.Sprintf("duel registry: duplicate duel id %s", duel.ID))
	}
	r.index(duel.Challenger.DiscordID, duel.ID)
	rec := &duelRecord{duel: duel}
	r.byID[duel.ID] = rec
	return rec
}

func (r *duelRegistry) get(duelID string) (*duelRecord, bool) {
	rec, ok := r.byID[duelID]
	return rec, ok
}

func (r *duelRegistry) lookupByParticipant(discordID string) (*duelRecord, bool) {
	duelID, ok := r.byParticipant[discordID]
	if !ok {
		return nil, false
	}
	rec, ok := r.byID[duelID]
	if !ok {
		panic(fmt.Sprintf("duel registry: %s indexed under missing duel %s", discordID, duelID))
	}
	return rec, true
}

// index maps a participant to a duel. A participant already mapped to
// another duel means a caller skipped its check.
func (r *duelRegistry) index(discordID, duelID string) {
	if current, ok := r.byParticipant[discordID]; ok && current != duelID {
		panic(fmt.Sprintf("duel registry: %s already indexed under duel %s, refusing %s", discordID, current, duelID))
	}
	r.byParticipant[discordID] = duelID
}

// remove drops a duel and every index entry pointing at it
func (r *duelRegistry) remove(duelID string) (*duelRecord, bool) {
	rec, ok := r.byID[duelID]
	if !ok {
		return nil, false
	}
	delete(r.byID, duelID)
	for _, discordID := range rec.duel.Participants() {
		if r.byParticipant[discordID] == duelID {
			delete(r.byParticipant, discordID)
		}
	}
	return rec, true
}

func (r *duelRegistry) all() []*duelRecord {
	recs := make([]*duelRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		recs = append(recs, rec)
	}
	return recs
}

func (r *duelRegistry) len() int {
	return len(r.byID)
}
