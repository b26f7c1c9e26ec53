package models

import "time"

type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	Preference   Preference
	CreatedAt    time.Time
}

// Preference stores the default pair of an account. The home currency is
// the "from" side of the pair.
type Preference struct {
	PairFrom string
	PairTo   string
}

func (p Preference) HomeCurrency() string {
	return p.PairFrom
}

func (p Preference) Pair() string {
	return p.PairFrom + "-" + p.PairTo
}
