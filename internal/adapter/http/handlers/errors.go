package handlers

import (
	"errors"
	"net/http"

	request "trades_marketplace/internal/adapter/http/dto/request"
	"trades_marketplace/internal/domain/access"
	"trades_marketplace/internal/usecase"
	"trades_marketplace/pkg"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var (
	errInvalidBody = pkg.NewDomainErrorSimple("INVALID_REQUEST_BODY", "Request body is malformed", http.StatusBadRequest)
	errInvalidID   = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

func respondError(c *gin.Context, err error) {
	appErr := mapError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// bindError separates payloads that parsed but failed binding rules (422)
// from payloads that did not parse at all (400).
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		appErr := pkg.NewDomainError("VALIDATION_ERROR", verrs.Error(), err, http.StatusUnprocessableEntity)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(errInvalidBody.HTTPStatus, errInvalidBody.ToHTTPError())
}

func mapError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrJobRequestNotFound):
		return pkg.NewDomainErrorSimple("JOB_REQUEST_NOT_FOUND", "Job request not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrUserNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "User not found", http.StatusNotFound)

	case errors.Is(err, access.ErrUnauthenticated):
		return pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrInvalidSession):
		return pkg.NewDomainErrorSimple("INVALID_SESSION", "Session is invalid or expired", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Invalid email or password", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrInvalidLoginCode):
		return pkg.NewDomainErrorSimple("INVALID_LOGIN_CODE", "Invalid or expired login code", http.StatusUnauthorized)
	case errors.Is(err, access.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "You are not allowed to perform this action", http.StatusForbidden)

	case errors.Is(err, usecase.ErrInvalidJobRequestState):
		return pkg.NewDomainErrorSimple("INVALID_JOB_REQUEST_STATE", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidQuoteState):
		return pkg.NewDomainErrorSimple("INVALID_QUOTE_STATE", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteExpired):
		return pkg.NewDomainErrorSimple("QUOTE_EXPIRED", "Quote has expired", http.StatusBadRequest)

	case errors.Is(err, usecase.ErrDuplicateQuote):
		return pkg.NewDomainErrorSimple("DUPLICATE_QUOTE", "You already have an active quote on this job request", http.StatusConflict)
	case errors.Is(err, usecase.ErrMaxQuotesReached):
		return pkg.NewDomainErrorSimple("MAX_QUOTES_REACHED", "Job request has reached its maximum number of quotes", http.StatusConflict)
	case errors.Is(err, usecase.ErrJobRequestNotAcceptingQuotes):
		return pkg.NewDomainErrorSimple("NOT_ACCEPTING_QUOTES", "Job request is not accepting quotes", http.StatusConflict)
	case errors.Is(err, usecase.ErrJobRequestAlreadySettled):
		return pkg.NewDomainErrorSimple("ALREADY_SETTLED", "Job request has already been settled", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentModification):
		return pkg.NewDomainErrorSimple("CONCURRENT_MODIFICATION", "Resource was modified concurrently, retry the request", http.StatusConflict)
	case errors.Is(err, usecase.ErrEmailAlreadyRegistered):
		return pkg.NewDomainErrorSimple("EMAIL_ALREADY_REGISTERED", "Email already registered", http.StatusConflict)

	case errors.Is(err, usecase.ErrLoginCodeRateLimited):
		return pkg.NewDomainErrorSimple("RATE_LIMITED", "Too many login code requests, try again later", http.StatusTooManyRequests)

	case errors.Is(err, usecase.ErrInvalidJobRequestID), errors.Is(err, usecase.ErrInvalidQuoteID),
		errors.Is(err, usecase.ErrInvalidJobRequest), errors.Is(err, usecase.ErrInvalidQuote),
		errors.Is(err, usecase.ErrInvalidQuery), errors.Is(err, usecase.ErrImmutableField),
		errors.Is(err, usecase.ErrInvalidRegistration), errors.Is(err, usecase.ErrInvalidRoleChange),
		errors.Is(err, usecase.ErrInvalidEmail), errors.Is(err, request.ErrContactEmailMismatch):
		return pkg.NewDomainError("VALIDATION_ERROR", err.Error(), err, http.StatusUnprocessableEntity)

	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
