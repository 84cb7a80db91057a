package handlers

import (
	"context"
	"net/http"

	request "trades_marketplace/internal/adapter/http/dto/request"
	response "trades_marketplace/internal/adapter/http/dto/response"
	"trades_marketplace/internal/adapter/http/middleware"
	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	quotes    usecase.IQuoteUseCase
	lifecycle usecase.ILifecycleUseCase
}

func NewQuoteHandler(quotes usecase.IQuoteUseCase, lifecycle usecase.ILifecycleUseCase) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, lifecycle: lifecycle}
}

// Create godoc
// @Summary      Submit a quote on a job request
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        payload  body      request.CreateQuoteRequest  true  "Quote"
// @Success      201      {object}  response.QuoteResponse
// @Failure      409      {object}  pkg.HTTPError
// @Router       /quotes [post]
// @Security     Bearer
func (h *QuoteHandler) Create(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	quote, err := h.quotes.Create(c.Request.Context(), middleware.CallerFrom(c), payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

// List godoc
// @Summary      List quotes visible to the caller
// @Tags         quotes
// @Produce      json
// @Param        job_request_id   query     string  false  "Job request id"
// @Param        professional_id  query     string  false  "Professional id"
// @Param        customer_id      query     string  false  "Customer id"
// @Param        status           query     string  false  "Status"
// @Param        my_quotes        query     bool    false  "Only the caller's quotes"
// @Success      200              {array}   response.QuoteResponse
// @Router       /quotes [get]
// @Security     Bearer
func (h *QuoteHandler) List(c *gin.Context) {
	var query request.ListQuotesRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	quotes, err := h.quotes.List(c.Request.Context(), middleware.CallerFrom(c), query.ToQuery())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

// Get godoc
// @Summary      Get a quote
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote id"
// @Success      200  {object}  response.QuoteResponse
// @Router       /quotes/{id} [get]
// @Security     Bearer
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	quote, err := h.quotes.GetByID(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// Update godoc
// @Summary      Update a pending quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Quote id"
// @Param        payload  body      request.UpdateQuoteRequest  true  "Fields to change"
// @Success      200      {object}  response.QuoteResponse
// @Router       /quotes/{id} [put]
// @Security     Bearer
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var payload request.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	quote, err := h.quotes.Update(c.Request.Context(), middleware.CallerFrom(c), id, payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// Accept godoc
// @Summary      Accept a quote
// @Description  Settles the job request on this quote and declines the other pending quotes.
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote id"
// @Success      200  {object}  response.AcceptQuoteResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /quotes/{id}/accept [post]
// @Security     Bearer
func (h *QuoteHandler) Accept(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.lifecycle.AcceptQuote(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromAcceptQuoteResult(res))
}

// Decline godoc
// @Summary      Decline a quote
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote id"
// @Success      200  {object}  response.QuoteResponse
// @Router       /quotes/{id}/decline [post]
// @Security     Bearer
func (h *QuoteHandler) Decline(c *gin.Context) {
	h.transition(c, h.lifecycle.DeclineQuote)
}

// Withdraw godoc
// @Summary      Withdraw a quote
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote id"
// @Success      200  {object}  response.QuoteResponse
// @Router       /quotes/{id}/withdraw [post]
// @Security     Bearer
func (h *QuoteHandler) Withdraw(c *gin.Context) {
	h.transition(c, h.lifecycle.WithdrawQuote)
}

func (h *QuoteHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, caller *entities.Caller, quoteID string) (entities.Quote, error),
) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	quote, err := apply(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}
