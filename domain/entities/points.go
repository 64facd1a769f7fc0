package entities

import "math"

// PointsStore names the backing store a balance was routed to
type PointsStore string

const (
	PointsStoreProfile PointsStore = "profile"
	PointsStoreLocal   PointsStore = "local"
)

// PointsAccount is a participant's balance and where it lives
type PointsAccount struct {
	DiscordID    string
	ChatUsername string // Empty when the account is not linked
	Balance      int64
	Store        PointsStore
}

// IsLinked checks if the account resolves through a chat profile
func (a *PointsAccount) IsLinked() bool {
	return a.ChatUsername != ""
}

// TransferResult reports what a transfer actually moved
type TransferResult struct {
	Requested     int64
	Transferred   int64
	WinnerBalance int64
	LoserBalance  int64
}

// NormalizePoints rounds a stored value and clamps it to zero
func NormalizePoints(raw float64) int64 {
	if math.IsNaN(raw) || raw <= 0 {
		return 0
	}
	if raw >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Round(raw))
}

// ClampPoints keeps a balance non-negative
func ClampPoints(amount int64) int64 {
	if amount < 0 {
		return 0
	}
	return amount
}
