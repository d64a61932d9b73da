package handler

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestToCardResponse_BondFieldNames(t *testing.T) {
	raw, err := json.Marshal(toCardResponse(sampleCard()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)

	for _, key := range []string{`"prizeBonds"`, `"purchaseDate"`, `"number"`, `"status"`} {
		if !strings.Contains(body, key) {
			t.Errorf("expected key %s in %s", key, body)
		}
	}
	for _, key := range []string{`"purchase_date"`, `"PurchaseDate"`, `"PrizeBonds"`} {
		if strings.Contains(body, key) {
			t.Errorf("unexpected key %s in %s", key, body)
		}
	}
}
