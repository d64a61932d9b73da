package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bondledger/prizebond-api/internal/api/metrics"
	"github.com/bondledger/prizebond-api/internal/api/response"
	"github.com/bondledger/prizebond-api/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// CardHandler handles HTTP requests for card operations. Every route must be
// mounted behind middleware.Session.
type CardHandler struct {
	service ports.CardService
}

func NewCardHandler(service ports.CardService) *CardHandler {
	return &CardHandler{service: service}
}

// List handles GET /api/card.
//
// @Summary      List the caller's cards
// @Tags         cards
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  response.Envelope{data=listCardsResponse}
// @Failure      401  {object}  response.Envelope
// @Failure      500  {object}  response.Envelope
// @Router       /api/card [get]
func (h *CardHandler) List(c echo.Context) error {
	claim, err := ctxClaims(c)
	if err != nil {
		return err
	}

	cards, totals, err := h.service.ListCards(c.Request().Context(), claim.UserID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "cards retrieved", toListResponse(cards, totals))
}

// Create handles POST /api/card.
//
// @Summary      Create an empty card
// @Tags         cards
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        Idempotency-Key  header    string           false  "Replays the earlier card instead of creating a duplicate"
// @Param        body             body      cardNameRequest  true   "Card name"
// @Success      201              {object}  response.Envelope{data=singleCardResponse}
// @Success      200              {object}  response.Envelope{data=singleCardResponse}  "Idempotent replay"
// @Failure      400              {object}  response.Envelope
// @Failure      401              {object}  response.Envelope
// @Router       /api/card [post]
func (h *CardHandler) Create(c echo.Context) error {
	claim, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req cardNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.CreateCard(c.Request().Context(), ports.CreateCardInput{
		OwnerID:        claim.UserID,
		Name:           req.Name,
		IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
	})
	if err != nil {
		return err
	}

	body := singleCardResponse{Card: toCardResponse(result.Card)}
	if result.AlreadyExisted {
		return response.OK(c, http.StatusOK, "card already created", body)
	}
	metrics.CardsCreatedTotal.Inc()
	return response.OK(c, http.StatusCreated, "card created", body)
}

// Rename handles PATCH /api/card/:cardId.
//
// @Summary      Rename a card
// @Tags         cards
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        cardId  path      string           true  "Card id"
// @Param        body    body      cardNameRequest  true  "New name"
// @Success      200     {object}  response.Envelope{data=singleCardResponse}
// @Failure      400     {object}  response.Envelope
// @Failure      401     {object}  response.Envelope
// @Failure      404     {object}  response.Envelope
// @Router       /api/card/{cardId} [patch]
func (h *CardHandler) Rename(c echo.Context) error {
	claim, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req cardNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	card, err := h.service.RenameCard(c.Request().Context(), claim.UserID, c.Param("cardId"), req.Name)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "card updated", singleCardResponse{Card: toCardResponse(card)})
}

// Delete handles DELETE /api/card/:cardId.
//
// @Summary      Delete a card and all of its bonds
// @Tags         cards
// @Produce      json
// @Security     CookieAuth
// @Param        cardId  path      string  true  "Card id"
// @Success      200     {object}  response.Envelope
// @Failure      401     {object}  response.Envelope
// @Failure      404     {object}  response.Envelope
// @Router       /api/card/{cardId} [delete]
func (h *CardHandler) Delete(c echo.Context) error {
	claim, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteCard(c.Request().Context(), claim.UserID, c.Param("cardId")); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "card deleted", nil)
}
