package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bondledger/prizebond-api/internal/api/metrics"
	"github.com/bondledger/prizebond-api/internal/api/response"
	"github.com/bondledger/prizebond-api/internal/core/ports"
)

// BondHandler handles HTTP requests for the bonds of a card. Every route must
// be mounted behind middleware.Session.
type BondHandler struct {
	service ports.CardService
}

func NewBondHandler(service ports.CardService) *BondHandler {
	return &BondHandler{service: service}
}

// List handles GET /api/card/:cardId/bonds.
//
// @Summary      Get a card with its bonds
// @Tags         bonds
// @Produce      json
// @Security     CookieAuth
// @Param        cardId  path      string  true  "Card id"
// @Success      200     {object}  response.Envelope{data=singleCardResponse}
// @Failure      401     {object}  response.Envelope
// @Failure      404     {object}  response.Envelope
// @Router       /api/card/{cardId}/bonds [get]
func (h *BondHandler) List(c echo.Context) error {
	claim, err := ctxClaims(c)
	if err != nil {
		return err
	}

	card, err := h.service.GetCard(c.Request().Context(), claim.UserID, c.Param("cardId"))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "bonds retrieved", singleCardResponse{Card: toCardResponse(card)})
}

// Add handles POST /api/card/:cardId/bonds.
//
// @Summary      Add a bond to a card
// @Description  The bond starts in "hold" status, purchased now.
// @Tags         bonds
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        cardId  path      string          true  "Card id"
// @Param        body    body      addBondRequest  true  "Bond number"
// @Success      200     {object}  response.Envelope{data=singleCardResponse}
// @Failure      400     {object}  response.Envelope
// @Failure      401     {object}  response.Envelope
// @Failure      404     {object}  response.Envelope
// @Router       /api/card/{cardId}/bonds [post]
func (h *BondHandler) Add(c echo.Context) error {
	claim, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req addBondRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	card, err := h.service.AddBond(c.Request().Context(), claim.UserID, c.Param("cardId"), req.Number)
	if err != nil {
		return err
	}
	metrics.BondOperationsTotal.WithLabelValues("add").Inc()
	return response.OK(c, http.StatusOK, "bond added", singleCardResponse{Card: toCardResponse(card)})
}

// Update handles PUT /api/card/:cardId/bonds/:bondId.
//
// @Summary      Replace a bond's number, purchase date and status
// @Tags         bonds
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        cardId  path      string             true  "Card id"
// @Param        bondId  path      string             true  "Bond id"
// @Param        body    body      updateBondRequest  true  "New bond values"
// @Success      200     {object}  response.Envelope{data=singleCardResponse}
// @Failure      400     {object}  response.Envelope
// @Failure      401     {object}  response.Envelope
// @Failure      404     {object}  response.Envelope
// @Router       /api/card/{cardId}/bonds/{bondId} [put]
func (h *BondHandler) Update(c echo.Context) error {
	claim, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateBondRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := toUpdateBondInput(req, claim.UserID, c.Param("cardId"), c.Param("bondId"))
	if err != nil {
		return err
	}

	card, err := h.service.UpdateBond(c.Request().Context(), input)
	if err != nil {
		return err
	}
	metrics.BondOperationsTotal.WithLabelValues("update").Inc()
	metrics.BondStatusTotal.WithLabelValues(req.Status).Inc()
	return response.OK(c, http.StatusOK, "bond updated", singleCardResponse{Card: toCardResponse(card)})
}

// Delete handles DELETE /api/card/:cardId/bonds/:bondId. Deleting a bond the
// card does not hold succeeds.
//
// @Summary      Delete a bond
// @Tags         bonds
// @Produce      json
// @Security     CookieAuth
// @Param        cardId  path      string  true  "Card id"
// @Param        bondId  path      string  true  "Bond id"
// @Success      200     {object}  response.Envelope
// @Failure      401     {object}  response.Envelope
// @Failure      404     {object}  response.Envelope
// @Router       /api/card/{cardId}/bonds/{bondId} [delete]
func (h *BondHandler) Delete(c echo.Context) error {
	claim, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteBond(c.Request().Context(), claim.UserID, c.Param("cardId"), c.Param("bondId")); err != nil {
		return err
	}
	metrics.BondOperationsTotal.WithLabelValues("delete").Inc()
	return response.OK(c, http.StatusOK, "bond deleted", nil)
}

// BatchDelete handles POST /api/card/:cardId/bonds/batch-delete.
//
// @Summary      Delete several bonds
// @Description  Not atomic: each id is deleted on its own and reported under deleted or failed.
// @Tags         bonds
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        cardId  path      string              true  "Card id"
// @Param        body    body      batchDeleteRequest  true  "Bond ids"
// @Success      200     {object}  response.Envelope{data=batchDeleteResponse}
// @Failure      400     {object}  response.Envelope
// @Failure      401     {object}  response.Envelope
// @Failure      404     {object}  response.Envelope
// @Router       /api/card/{cardId}/bonds/batch-delete [post]
func (h *BondHandler) BatchDelete(c echo.Context) error {
	claim, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req batchDeleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.service.DeleteBonds(c.Request().Context(), claim.UserID, c.Param("cardId"), req.BondIDs)
	if err != nil {
		return err
	}
	metrics.BondOperationsTotal.WithLabelValues("delete").Add(float64(len(res.Deleted)))

	msg := "bonds deleted"
	if len(res.Failed) > 0 {
		msg = "some bonds could not be deleted"
	}
	return response.OK(c, http.StatusOK, msg, toBatchDeleteResponse(res))
}

// Search handles GET /api/bonds/search?number=.
//
// @Summary      Find a bond number across the caller's cards
// @Tags         bonds
// @Produce      json
// @Security     CookieAuth
// @Param        number  query     string  true  "Exact bond number"
// @Success      200     {object}  response.Envelope{data=searchResponse}
// @Failure      400     {object}  response.Envelope
// @Failure      401     {object}  response.Envelope
// @Router       /api/bonds/search [get]
func (h *BondHandler) Search(c echo.Context) error {
	claim, err := ctxClaims(c)
	if err != nil {
		return err
	}

	matches, err := h.service.SearchBonds(c.Request().Context(), claim.UserID, c.QueryParam("number"))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "search complete", toSearchResponse(matches))
}
