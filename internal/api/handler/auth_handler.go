package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Tourism-Ease/booking-api/internal/api/middleware"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

// AuthHandler exposes the /auth endpoints.
type AuthHandler struct {
	auth         ports.AuthService
	jwtSecret    string
	cookieTTL    time.Duration
	cookieSecure bool
}

func NewAuthHandler(auth ports.AuthService, jwtSecret string, cookieTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		jwtSecret:    jwtSecret,
		cookieTTL:    cookieTTL,
		cookieSecure: cookieSecure,
	}
}

type signupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleLoginRequest struct {
	Code string `json:"code" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyResetCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type resetPasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type reactivateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup creates an account and logs it in.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.auth.Signup(c.Request().Context(), ports.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}

	setSessionCookie(c, token, h.cookieTTL, h.cookieSecure)
	return c.JSON(http.StatusCreated, sessionResponse{Token: token, Data: user})
}

// Login authenticates with email and password.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	setSessionCookie(c, token, h.cookieTTL, h.cookieSecure)
	return c.JSON(http.StatusOK, sessionResponse{Token: token, Data: user})
}

// GoogleLogin exchanges an OAuth authorization code for a session.
//
// @Summary      Login with Google
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      googleLoginRequest  true  "Authorization code"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/google-login [post]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req googleLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.auth.GoogleLogin(c.Request().Context(), req.Code)
	if err != nil {
		return err
	}

	setSessionCookie(c, token, h.cookieTTL, h.cookieSecure)
	return c.JSON(http.StatusOK, sessionResponse{Token: token, Data: user})
}

// Logout ends the session. It is deliberately lenient: the cookie is
// cleared and 200 returned whatever state the session is in, and the
// server-side reset-state cleanup is best-effort.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := middleware.TokenFromRequest(c); token != "" {
		if userID := middleware.ParseUserID(token, h.jwtSecret); userID != "" {
			h.auth.Logout(c.Request().Context(), userID)
		}
	}

	clearSessionCookie(c, h.cookieSecure)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// ForgotPassword issues a reset code.
//
// @Summary      Request a password reset code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      429   {object}  map[string]string
// @Router       /auth/forgotPassword [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "reset code sent if the account exists"})
}

// VerifyResetCode checks the emailed 6-digit code. The length gate sits
// in validation: anything but exactly six digits is rejected before the
// service (and its attempt budget) is touched.
//
// @Summary      Verify a password reset code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyResetCodeRequest  true  "Email and code"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/verifyResetCode [post]
func (h *AuthHandler) VerifyResetCode(c echo.Context) error {
	var req verifyResetCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.auth.VerifyResetCode(c.Request().Context(), req.Email, req.Code); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "code verified"})
}

// ResetPassword rotates the password after a verified code and performs
// an implicit login.
//
// @Summary      Reset the password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Email and new password"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/resetPassword [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.auth.ResetPassword(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	setSessionCookie(c, token, h.cookieTTL, h.cookieSecure)
	return c.JSON(http.StatusOK, sessionResponse{Token: token, Data: user})
}

// Reactivate turns a deactivated account back on and logs it in.
//
// @Summary      Reactivate a deactivated account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      reactivateRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/reactivate [post]
func (h *AuthHandler) Reactivate(c echo.Context) error {
	var req reactivateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.auth.Reactivate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	setSessionCookie(c, token, h.cookieTTL, h.cookieSecure)
	return c.JSON(http.StatusOK, sessionResponse{Token: token, Data: user})
}

// bindAndValidate binds the payload and runs validation, normalizing
// both failure modes to a 400.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
