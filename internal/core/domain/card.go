package domain

import "time"

// BondStatus is the closed set of states a prize bond can be in.
type BondStatus string

const (
	BondHold BondStatus = "hold"
	BondWin  BondStatus = "win"
	BondSell BondStatus = "sell"
)

// Valid reports whether s is one of the known statuses.
func (s BondStatus) Valid() bool {
	switch s {
	case BondHold, BondWin, BondSell:
		return true
	}
	return false
}

// PrizeBond is a single bond entry embedded in a Card.
type PrizeBond struct {
	ID           string
	Number       string
	PurchaseDate time.Time
	Status       BondStatus
}

// Card is the owned aggregate. Only OwnerID may read or mutate it.
type Card struct {
	ID         string
	OwnerID    string
	Name       string
	PrizeBonds []PrizeBond
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TotalBond counts bonds that are still held (neither won nor sold).
func (c *Card) TotalBond() int {
	n := 0
	for _, b := range c.PrizeBonds {
		if b.Status != BondSell && b.Status != BondWin {
			n++
		}
	}
	return n
}

// TotalWin counts bonds marked as won.
func (c *Card) TotalWin() int {
	n := 0
	for _, b := range c.PrizeBonds {
		if b.Status == BondWin {
			n++
		}
	}
	return n
}

// Bond returns the bond with the given id, or nil.
func (c *Card) Bond(id string) *PrizeBond {
	for i := range c.PrizeBonds {
		if c.PrizeBonds[i].ID == id {
			return &c.PrizeBonds[i]
		}
	}
	return nil
}

// HasNumber reports whether a bond other than exceptID already carries number.
func (c *Card) HasNumber(number, exceptID string) bool {
	for _, b := range c.PrizeBonds {
		if b.Number == number && b.ID != exceptID {
			return true
		}
	}
	return false
}
