package handler

import (
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Harshil0408/contentify-backend/internal/apierr"
	"github.com/Harshil0408/contentify-backend/internal/middleware"
	"github.com/Harshil0408/contentify-backend/internal/model"
	"github.com/Harshil0408/contentify-backend/internal/service"
)

const refreshTokenCookie = "refreshToken"

// AuthHandler serves the /auth group.
type AuthHandler struct {
	auth   *service.AuthService
	tmpDir string
	secure bool
}

// NewAuthHandler creates the auth handler. secure controls the Secure
// flag on token cookies (off in development).
func NewAuthHandler(auth *service.AuthService, tmpDir string, secure bool) *AuthHandler {
	return &AuthHandler{auth: auth, tmpDir: tmpDir, secure: secure}
}

func (h *AuthHandler) saveUpload(c fiber.Ctx, fh *multipart.FileHeader) (string, error) {
	path := filepath.Join(h.tmpDir, uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveFile(fh, path); err != nil {
		return "", err
	}
	return path, nil
}

func (h *AuthHandler) setTokenCookies(c fiber.Ctx, tokens *service.TokenPair) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    tokens.AccessToken,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(48 * time.Hour),
	})
	c.Cookie(&fiber.Cookie{
		Name:     refreshTokenCookie,
		Value:    tokens.RefreshToken,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
	})
}

func (h *AuthHandler) clearTokenCookies(c fiber.Ctx) {
	c.ClearCookie(middleware.AccessTokenCookie, refreshTokenCookie)
}

// Signup handles POST /auth/signup (multipart: avatar, coverImage optional)
func (h *AuthHandler) Signup(c fiber.Ctx) error {
	username, msg := middleware.ValidateUsername(c.FormValue("username"))
	if msg != "" {
		return fail(c, apierr.InvalidArgument(msg))
	}

	in := service.SignupInput{
		Username: username,
		Email:    c.FormValue("email"),
		Fullname: c.FormValue("fullname"),
		Password: c.FormValue("password"),
	}

	if fh, err := c.FormFile("avatar"); err == nil {
		path, err := h.saveUpload(c, fh)
		if err != nil {
			return fail(c, err)
		}
		in.AvatarPath = path
	}
	if fh, err := c.FormFile("coverImage"); err == nil {
		path, err := h.saveUpload(c, fh)
		if err != nil {
			return fail(c, err)
		}
		in.CoverImagePath = path
	}

	user, err := h.auth.Signup(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, user, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return fail(c, apierr.InvalidArgument("Invalid request body"))
	}

	user, tokens, err := h.auth.Login(c.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		return fail(c, err)
	}

	h.setTokenCookies(c, tokens)
	return respond(c, fiber.StatusOK, loginResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "User logged in successfully")
}

// Refresh handles POST /auth/refresh-token
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	token := c.Cookies(refreshTokenCookie)
	if token == "" {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.Bind().Body(&req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		return fail(c, apierr.Unauthorized("Refresh token is required"))
	}

	user, tokens, err := h.auth.Refresh(c.Context(), token)
	if err != nil {
		return fail(c, err)
	}

	h.setTokenCookies(c, tokens)
	return respond(c, fiber.StatusOK, loginResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "Access token refreshed")
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	if err := h.auth.Logout(c.Context(), userID); err != nil {
		return fail(c, err)
	}

	h.clearTokenCookies(c)
	return respond(c, fiber.StatusOK, nil, "User logged out successfully")
}

// GoogleLogin handles GET /auth/google — redirect to the consent screen.
func (h *AuthHandler) GoogleLogin(c fiber.Ctx) error {
	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     "oauthState",
		Value:    state,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(10 * time.Minute),
	})
	return c.Redirect().To(h.auth.GoogleAuthURL(state))
}

// GoogleCallback handles GET /auth/google/callback
func (h *AuthHandler) GoogleCallback(c fiber.Ctx) error {
	if state := fiber.Query[string](c, "state"); state == "" || state != c.Cookies("oauthState") {
		return fail(c, apierr.Unauthorized("Invalid OAuth state"))
	}
	c.ClearCookie("oauthState")

	user, tokens, err := h.auth.LoginWithGoogle(c.Context(), fiber.Query[string](c, "code"))
	if err != nil {
		return fail(c, err)
	}

	h.setTokenCookies(c, tokens)
	return respond(c, fiber.StatusOK, loginResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "User logged in successfully")
}
