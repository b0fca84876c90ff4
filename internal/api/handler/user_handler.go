package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Tourism-Ease/booking-api/internal/core/domain"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
	"github.com/Tourism-Ease/booking-api/internal/infrastructure/storage"
)

// UserHandler exposes the profile (getMe/updateMe) and administrative
// (/users) endpoints.
type UserHandler struct {
	users        ports.UserService
	files        *storage.LocalStore
	cookieTTL    time.Duration
	cookieSecure bool
}

// NewUserHandler wires the profile and admin account endpoints.
func NewUserHandler(users ports.UserService, files *storage.LocalStore, cookieTTL time.Duration, cookieSecure bool) *UserHandler {
	return &UserHandler{users: users, files: files, cookieTTL: cookieTTL, cookieSecure: cookieSecure}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type adminCreateUserRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone"`
	Role      string `json:"role" validate:"required"`
}

// GetMe returns the authenticated account.
//
// @Summary      Current account
// @Tags         users
// @Produce      json
// @Success      200  {object}  dataEnvelope[domain.User]
// @Failure      401  {object}  map[string]string
// @Router       /users/getMe [get]
func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope[*domain.User]{Data: user})
}

// UpdateMe shallow-merges the submitted profile fields. Only keys
// present in the payload are touched, so sending {"phone": ""} clears
// the phone without disturbing the rest of the profile. Accepts either
// a JSON body or multipart form with a "data" JSON part plus an
// optional "avatar" image.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      200  {object}  dataEnvelope[domain.User]
// @Failure      400  {object}  map[string]string
// @Router       /users/updateMe [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	fields, err := h.profileFields(c)
	if err != nil {
		return err
	}

	updated, err := h.users.UpdateProfile(c.Request().Context(), user.EntityID(), fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope[*domain.User]{Data: updated})
}

// ChangeMyPassword rotates the password after verifying the current one
// and re-issues the session so the client keeps a valid cookie.
//
// @Summary      Change own password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Router       /users/changeMyPassword [patch]
func (h *UserHandler) ChangeMyPassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, updated, err := h.users.ChangePassword(c.Request().Context(), user.EntityID(), req.CurrentPassword, req.Password)
	if err != nil {
		return err
	}

	setSessionCookie(c, token, h.cookieTTL, h.cookieSecure)
	return c.JSON(http.StatusOK, sessionResponse{Token: token, Data: updated})
}

// DeactivateMe disables the account and ends the session. The document
// stays in place so /auth/reactivate can bring it back.
//
// @Summary      Deactivate own account
// @Tags         users
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Router       /users/deactivateMe [delete]
func (h *UserHandler) DeactivateMe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.users.Deactivate(c.Request().Context(), user.EntityID()); err != nil {
		return err
	}

	clearSessionCookie(c, h.cookieSecure)
	return c.JSON(http.StatusOK, messageResponse{Message: "account deactivated"})
}

// List returns accounts with the shared pagination contract. Admin only.
//
// @Summary      List accounts
// @Tags         users
// @Produce      json
// @Param        page     query     int     false  "Page number"
// @Param        limit    query     int     false  "Page size"
// @Param        keyword  query     string  false  "Keyword filter"
// @Param        sort     query     string  false  "Sort expression"
// @Success      200      {object}  listEnvelope[domain.User]
// @Failure      403      {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	q, err := bindListQuery(c)
	if err != nil {
		return err
	}

	page, err := h.users.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListEnvelope(page))
}

// Get returns a single account by id. Admin only.
//
// @Summary      Get an account
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  dataEnvelope[domain.User]
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope[*domain.User]{Data: user})
}

// Create makes an account with an explicit role. Admin only.
//
// @Summary      Create an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      adminCreateUserRequest  true  "Account details"
// @Success      201   {object}  dataEnvelope[domain.User]
// @Failure      409   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req adminCreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.AdminCreate(c.Request().Context(), ports.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
	}, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataEnvelope[*domain.User]{Data: user})
}

// Update shallow-merges fields into any account, including role and
// active. Admin only.
//
// @Summary      Update an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  dataEnvelope[domain.User]
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	fields := map[string]any{}
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.AdminUpdate(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope[*domain.User]{Data: user})
}

// Delete removes an account permanently. Admin only.
//
// @Summary      Delete an account
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "account deleted"})
}

// profileFields extracts the fields to merge from either a JSON body or
// a multipart form. With multipart the JSON sits in the "data" part and
// an optional "avatar" file is stored and its public path merged in.
func (h *UserHandler) profileFields(c echo.Context) (map[string]any, error) {
	fields := map[string]any{}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if isMultipart(contentType) {
		if raw := c.FormValue("data"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &fields); err != nil {
				return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid data payload")
			}
		}
		if file, err := c.FormFile("avatar"); err == nil {
			path, err := h.files.Save(file)
			if err != nil {
				return nil, err
			}
			fields["avatar"] = path
		}
		return fields, nil
	}

	if err := c.Bind(&fields); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return fields, nil
}

func isMultipart(contentType string) bool {
	return strings.HasPrefix(contentType, echo.MIMEMultipartForm)
}
