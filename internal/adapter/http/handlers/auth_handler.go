package handlers

import (
	"net/http"
	"time"

	request "trades_marketplace/internal/adapter/http/dto/request"
	response "trades_marketplace/internal/adapter/http/dto/response"
	"trades_marketplace/internal/adapter/http/middleware"
	"trades_marketplace/internal/domain/entities"
	"trades_marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves account and session endpoints. Successful logins set
// the session cookie and also return the token for API clients.
type AuthHandler struct {
	auth         usecase.IAuthUseCase
	lifecycle    usecase.ILifecycleUseCase
	cookieSecure bool
	now          func() time.Time
}

func NewAuthHandler(auth usecase.IAuthUseCase, lifecycle usecase.ILifecycleUseCase, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, lifecycle: lifecycle, cookieSecure: cookieSecure, now: time.Now}
}

// Register godoc
// @Summary      Register an account
// @Description  Draft job requests are not linked automatically; call /auth/link-draft-jobs after logging in.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      request.RegisterRequest  true  "Account"
// @Success      201      {object}  response.UserResponse
// @Failure      409      {object}  pkg.HTTPError
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var payload request.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.FromUser(user))
}

// Login godoc
// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      request.LoginRequest  true  "Credentials"
// @Success      200      {object}  response.LoginResponse
// @Failure      401      {object}  pkg.HTTPError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, res)
	c.JSON(http.StatusOK, response.FromLoginResult(res))
}

// Logout godoc
// @Summary      End the current session
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
// @Security     Bearer
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.SessionToken(c); token != "" {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			respondError(c, err)
			return
		}
	}

	h.clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.UserResponse
// @Failure      401  {object}  pkg.HTTPError
// @Router       /auth/me [get]
// @Security     Bearer
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.Me(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromUser(user))
}

// RequestLoginCode godoc
// @Summary      Email a one-time login code
// @Description  The response is the same whether or not the email belongs to an account.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      request.LoginCodeRequest  true  "Email"
// @Success      202      {object}  response.MessageResponse
// @Failure      429      {object}  pkg.HTTPError
// @Router       /auth/login-code [post]
func (h *AuthHandler) RequestLoginCode(c *gin.Context) {
	var payload request.LoginCodeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	if err := h.auth.RequestLoginCode(c.Request.Context(), payload.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, response.MessageResponse{Message: "If the email is registered, a login code has been sent"})
}

// VerifyLoginCode godoc
// @Summary      Log in with a one-time code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      request.VerifyLoginCodeRequest  true  "Email and code"
// @Success      200      {object}  response.LoginResponse
// @Failure      401      {object}  pkg.HTTPError
// @Router       /auth/login-code/verify [post]
func (h *AuthHandler) VerifyLoginCode(c *gin.Context) {
	var payload request.VerifyLoginCodeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.auth.VerifyLoginCode(c.Request.Context(), payload.Email, payload.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, res)
	c.JSON(http.StatusOK, response.FromLoginResult(res))
}

// SwitchRole godoc
// @Summary      Upgrade the current account to professional
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      request.SwitchRoleRequest  true  "Target role"
// @Success      200      {object}  response.UserResponse
// @Failure      422      {object}  pkg.HTTPError
// @Router       /auth/switch-role [post]
// @Security     Bearer
func (h *AuthHandler) SwitchRole(c *gin.Context) {
	var payload request.SwitchRoleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.auth.SwitchRole(c.Request.Context(), middleware.CallerFrom(c), entities.Role(payload.Role))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromUser(user))
}

// LinkDraftJobs godoc
// @Summary      Attach guest drafts to the current account
// @Description  Drafts whose contact email matches the account are assigned to it and opened. Safe to call repeatedly.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.LinkDraftJobsResponse
// @Failure      401  {object}  pkg.HTTPError
// @Router       /auth/link-draft-jobs [post]
// @Security     Bearer
func (h *AuthHandler) LinkDraftJobs(c *gin.Context) {
	linked, err := h.lifecycle.LinkDraftJobs(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.LinkDraftJobsResponse{Linked: linked})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, res usecase.LoginResult) {
	maxAge := int(res.ExpiresAt.Sub(h.now()).Seconds())
	if maxAge <= 0 {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, res.Token, maxAge, "/", "", h.cookieSecure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.cookieSecure, true)
}
