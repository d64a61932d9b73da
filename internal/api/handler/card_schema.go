package handler

import "time"

// --- Request types ---

type cardNameRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type addBondRequest struct {
	Number string `json:"number" validate:"required,number,max=20"`
}

type updateBondRequest struct {
	Number string `json:"number" validate:"required,number,max=20"`
	// PurchaseDate is RFC 3339 or YYYY-MM-DD.
	PurchaseDate string `json:"purchaseDate" validate:"required"`
	Status       string `json:"status"       validate:"required,oneof=hold win sell"`
}

type batchDeleteRequest struct {
	BondIDs []string `json:"bondIds" validate:"required,min=1,dive,required"`
}

// --- Response types ---

type bondResponse struct {
	ID           string    `json:"id"`
	Number       string    `json:"number"`
	PurchaseDate time.Time `json:"purchaseDate"`
	Status       string    `json:"status"`
}

type cardResponse struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	PrizeBonds []bondResponse `json:"prizeBonds"`
	TotalBond  int            `json:"totalBond"`
	TotalWin   int            `json:"totalWin"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

type totalsResponse struct {
	TotalBond int `json:"totalBond"`
	TotalWin  int `json:"totalWin"`
}

type listCardsResponse struct {
	Cards  []cardResponse `json:"cards"`
	Totals totalsResponse `json:"totals"`
}

type singleCardResponse struct {
	Card cardResponse `json:"card"`
}

type bondFailureResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type batchDeleteResponse struct {
	Deleted []string              `json:"deleted"`
	Failed  []bondFailureResponse `json:"failed"`
}

type searchMatchResponse struct {
	CardID   string       `json:"cardId"`
	CardName string       `json:"cardName"`
	Bond     bondResponse `json:"bond"`
}

type searchResponse struct {
	Results []searchMatchResponse `json:"results"`
}
