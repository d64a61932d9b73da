package domain

import "testing"

func TestCard_Counts(t *testing.T) {
	card := &Card{PrizeBonds: []PrizeBond{
		{ID: "1", Number: "100", Status: BondHold},
		{ID: "2", Number: "200", Status: BondWin},
		{ID: "3", Number: "300", Status: BondSell},
		{ID: "4", Number: "400", Status: BondHold},
		{ID: "5", Number: "500", Status: BondWin},
	}}

	if got := card.TotalBond(); got != 2 {
		t.Errorf("TotalBond: expected 2, got %d", got)
	}
	if got := card.TotalWin(); got != 2 {
		t.Errorf("TotalWin: expected 2, got %d", got)
	}
}

func TestCard_CountsEmpty(t *testing.T) {
	card := &Card{}
	if card.TotalBond() != 0 || card.TotalWin() != 0 {
		t.Fatalf("expected zero counts for empty card")
	}
}

func TestCard_HasNumber(t *testing.T) {
	card := &Card{PrizeBonds: []PrizeBond{{ID: "a", Number: "12345", Status: BondHold}}}

	if !card.HasNumber("12345", "") {
		t.Error("expected number to be found")
	}
	if card.HasNumber("12345", "a") {
		t.Error("bond must not collide with itself")
	}
	if card.HasNumber("99999", "") {
		t.Error("unexpected match")
	}
}

func TestCard_Bond(t *testing.T) {
	card := &Card{PrizeBonds: []PrizeBond{{ID: "a", Number: "1"}, {ID: "b", Number: "2"}}}

	b := card.Bond("b")
	if b == nil || b.Number != "2" {
		t.Fatalf("expected bond b, got %+v", b)
	}
	if card.Bond("zzz") != nil {
		t.Error("expected nil for unknown bond")
	}
}

func TestBondStatus_Valid(t *testing.T) {
	for _, s := range []BondStatus{BondHold, BondWin, BondSell} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []BondStatus{"", "lost", "HOLD"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}
