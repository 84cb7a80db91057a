package handlers

import (
	"net/http"
	"strings"

	request "trades_marketplace/internal/adapter/http/dto/request"
	response "trades_marketplace/internal/adapter/http/dto/response"
	"trades_marketplace/internal/adapter/http/middleware"
	"trades_marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
)

// JobRequestHandler serves the job request resource, including the
// lifecycle actions the owning customer can take on it.
type JobRequestHandler struct {
	jobs      usecase.IJobRequestUseCase
	lifecycle usecase.ILifecycleUseCase
}

func NewJobRequestHandler(jobs usecase.IJobRequestUseCase, lifecycle usecase.ILifecycleUseCase) *JobRequestHandler {
	return &JobRequestHandler{jobs: jobs, lifecycle: lifecycle}
}

// Create godoc
// @Summary      Create a job request
// @Description  Guests create a draft that is linked to their account later; customers create an open job request.
// @Tags         job-requests
// @Accept       json
// @Produce      json
// @Param        payload  body      request.CreateJobRequestRequest  true  "Job request"
// @Success      201      {object}  response.JobRequestResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      422      {object}  pkg.HTTPError
// @Router       /job-requests [post]
func (h *JobRequestHandler) Create(c *gin.Context) {
	var payload request.CreateJobRequestRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	in, err := payload.ToInput()
	if err != nil {
		respondError(c, err)
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), middleware.CallerFrom(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.FromJobRequest(job))
}

// List godoc
// @Summary      List job requests
// @Tags         job-requests
// @Produce      json
// @Param        category       query     string  false  "Category"
// @Param        subcategory    query     string  false  "Subcategory"
// @Param        postcode       query     string  false  "Postcode prefix"
// @Param        status         query     string  false  "Status"
// @Param        priority       query     string  false  "Priority"
// @Param        budget_min     query     int     false  "Minimum budget"
// @Param        budget_max     query     int     false  "Maximum budget"
// @Param        customer_only  query     bool    false  "Only the caller's job requests"
// @Param        page           query     int     false  "Page, starting at 1"
// @Param        limit          query     int     false  "Page size"
// @Success      200            {object}  response.JobRequestListResponse
// @Router       /job-requests [get]
func (h *JobRequestHandler) List(c *gin.Context) {
	var query request.ListJobRequestsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.jobs.List(c.Request.Context(), middleware.CallerFrom(c), query.ToQuery())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromJobRequestPage(page))
}

// Get godoc
// @Summary      Get a job request
// @Tags         job-requests
// @Produce      json
// @Param        id   path      string  true  "Job request id"
// @Success      200  {object}  response.JobRequestResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /job-requests/{id} [get]
func (h *JobRequestHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	job, err := h.jobs.GetByID(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromJobRequest(job))
}

// Update godoc
// @Summary      Update a job request
// @Tags         job-requests
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Job request id"
// @Param        payload  body      request.UpdateJobRequestRequest  true  "Fields to change"
// @Success      200      {object}  response.JobRequestResponse
// @Failure      403      {object}  pkg.HTTPError
// @Failure      422      {object}  pkg.HTTPError
// @Router       /job-requests/{id} [put]
func (h *JobRequestHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var payload request.UpdateJobRequestRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	in, err := payload.ToInput()
	if err != nil {
		respondError(c, err)
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), middleware.CallerFrom(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromJobRequest(job))
}

// Cancel godoc
// @Summary      Cancel a job request
// @Tags         job-requests
// @Produce      json
// @Param        id   path      string  true  "Job request id"
// @Success      200  {object}  response.JobRequestResponse
// @Router       /job-requests/{id}/cancel [post]
func (h *JobRequestHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	job, err := h.lifecycle.CancelJobRequest(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromJobRequest(job))
}

// Complete godoc
// @Summary      Mark an accepted job request as completed
// @Tags         job-requests
// @Produce      json
// @Param        id   path      string  true  "Job request id"
// @Success      200  {object}  response.JobRequestResponse
// @Router       /job-requests/{id}/complete [post]
func (h *JobRequestHandler) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	job, err := h.lifecycle.CompleteJobRequest(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromJobRequest(job))
}

// Reconcile godoc
// @Summary      Decline quotes left pending after a job request was settled
// @Tags         job-requests
// @Produce      json
// @Param        id   path      string  true  "Job request id"
// @Success      200  {object}  response.ReconcileResponse
// @Router       /job-requests/{id}/reconcile [post]
func (h *JobRequestHandler) Reconcile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.lifecycle.ReconcileSettlement(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromReconcileResult(res))
}

func pathID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(errInvalidID.HTTPStatus, errInvalidID.ToHTTPError())
		return "", false
	}
	return id, true
}
