package entities

// WagerTiers is the discrete set of stakes a challenger may pick
type WagerTiers struct {
	Step int64
	Max  int64
}

// DefaultWagerTiers allows 0 to 100 points in steps of 10
var DefaultWagerTiers = WagerTiers{Step: 10, Max: 100}

// IsAllowed reports whether amount is zero or a multiple of Step up to Max
func (t WagerTiers) IsAllowed(amount int64) bool {
	if amount < 0 || amount > t.Max {
		return false
	}
	return amount%t.Step == 0
}

// Options lists every allowed amount in ascending order
func (t WagerTiers) Options() []int64 {
	opts := make([]int64, 0, t.Max/t.Step+1)
	for amount := int64(0); amount <= t.Max; amount += t.Step {
		opts = append(opts, amount)
	}
	return opts
}
