package entities

import "time"

// DuelState is the lifecycle position of a duel. States only move forward.
type DuelState string

const (
	DuelStateConfiguring DuelState = "configuring"
	DuelStatePosted      DuelState = "posted"
	DuelStateAccepted    DuelState = "accepted"
	DuelStateResolved    DuelState = "resolved"
)

var nextDuelState = map[DuelState]DuelState{
	DuelStateConfiguring: DuelStatePosted,
	DuelStatePosted:      DuelStateAccepted,
	DuelStateAccepted:    DuelStateResolved,
}

// CanTransitionTo reports whether next is the single state that follows s
func (s DuelState) CanTransitionTo(next DuelState) bool {
	return nextDuelState[s] == next
}

// IsTerminal reports whether no further transition exists
func (s DuelState) IsTerminal() bool {
	_, ok := nextDuelState[s]
	return !ok
}

// Participant is one side of a duel
type Participant struct {
	DiscordID   string
	DisplayName string
	Linked      bool // Snapshotted when the participant joins
}

// PostRef points at the public challenge message
type PostRef struct {
	ChannelID string
	MessageID string
}

// Duel is a rock-paper-scissors challenge between two participants
type Duel struct {
	ID               string
	State            DuelState
	Challenger       Participant
	Opponent         *Participant
	Wager            int64
	ChallengerWeapon Weapon
	OpponentWeapon   Weapon
	OriginChannelID  string // Channel the challenge was started from
	Post             *PostRef
	CreatedAt        time.Time
	PostedAt         *time.Time
	AcceptedAt       *time.Time
	ResolvedAt       *time.Time
}

// IsConfiguring checks if the challenger is still setting up the duel
func (d *Duel) IsConfiguring() bool {
	return d.State == DuelStateConfiguring
}

// IsPosted checks if the duel is waiting for an opponent
func (d *Duel) IsPosted() bool {
	return d.State == DuelStatePosted
}

// IsAccepted checks if the duel is waiting for the opponent's weapon
func (d *Duel) IsAccepted() bool {
	return d.State == DuelStateAccepted
}

// IsChallenger checks if discordID started this duel
func (d *Duel) IsChallenger(discordID string) bool {
	return d.Challenger.DiscordID == discordID
}

// IsOpponent checks if discordID accepted this duel
func (d *Duel) IsOpponent(discordID string) bool {
	return d.Opponent != nil && d.Opponent.DiscordID == discordID
}

// Participants returns the identities indexed under this duel
func (d *Duel) Participants() []string {
	ids := []string{d.Challenger.DiscordID}
	if d.Opponent != nil {
		ids = append(ids, d.Opponent.DiscordID)
	}
	return ids
}

// Clone returns a deep copy safe to hand out of the registry
func (d *Duel) Clone() *Duel {
	c := *d
	if d.Opponent != nil {
		opp := *d.Opponent
		c.Opponent = &opp
	}
	if d.Post != nil {
		post := *d.Post
		c.Post = &post
	}
	c.PostedAt = cloneTime(d.PostedAt)
	c.AcceptedAt = cloneTime(d.AcceptedAt)
	c.ResolvedAt = cloneTime(d.ResolvedAt)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// DuelResolution is the outcome of a finished duel
type DuelResolution struct {
	DuelID           string
	Outcome          Outcome // Seen from the challenger's side
	Challenger       Participant
	Opponent         Participant
	ChallengerWeapon Weapon
	OpponentWeapon   Weapon
	Wager            int64
	WinnerID         string // Empty on a tie
	LoserID          string
	Transferred      int64
	WinnerBalance    int64
	LoserBalance     int64
	OriginChannelID  string
	Post             *PostRef
}

// IsTie checks if neither side won
func (r *DuelResolution) IsTie() bool {
	return r.Outcome == OutcomeTie
}

// Winner returns the winning participant, nil on a tie
func (r *DuelResolution) Winner() *Participant {
	switch r.Outcome {
	case OutcomeFirstWins:
		return &r.Challenger
	case OutcomeSecondWins:
		return &r.Opponent
	default:
		return nil
	}
}

// Loser returns the losing participant, nil on a tie
func (r *DuelResolution) Loser() *Participant {
	switch r.Outcome {
	case OutcomeFirstWins:
		return &r.Opponent
	case OutcomeSecondWins:
		return &r.Challenger
	default:
		return nil
	}
}

// ExpiryReason tells why a duel timed out
type ExpiryReason string

const (
	ExpiryNotConfirmed    ExpiryReason = "not_confirmed"
	ExpiryNotAccepted     ExpiryReason = "not_accepted"
	ExpiryWeaponNotChosen ExpiryReason = "weapon_not_chosen"
)

// ExpiryReasonFor maps the state a timer guarded to the reason it expired
func ExpiryReasonFor(state DuelState) ExpiryReason {
	switch state {
	case DuelStatePosted:
		return ExpiryNotAccepted
	case DuelStateAccepted:
		return ExpiryWeaponNotChosen
	default:
		return ExpiryNotConfirmed
	}
}
