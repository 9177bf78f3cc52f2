package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/Harshil0408/contentify-backend/internal/apierr"
	"github.com/Harshil0408/contentify-backend/internal/config"
	"github.com/Harshil0408/contentify-backend/internal/media"
	"github.com/Harshil0408/contentify-backend/internal/model"
	"github.com/Harshil0408/contentify-backend/internal/repository"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Claims is the JWT payload for both access and refresh tokens. The
// token id (jti) only matters on refresh tokens, where it feeds the
// revocation denylist.
type Claims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair bundles the two tokens issued on login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService handles signup, credential and Google login, token
// refresh and logout.
type AuthService struct {
	users  *repository.UserRepo
	cache  *CacheService
	store  media.Store
	cfg    *config.Config
	google *oauth2.Config
}

func NewAuthService(users *repository.UserRepo, cache *CacheService, store media.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		users: users,
		cache: cache,
		store: store,
		cfg:   cfg,
		google: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// SignupInput carries the registration fields plus the optional local
// paths of the uploaded avatar and cover images.
type SignupInput struct {
	Username       string
	Email          string
	Fullname       string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

// Signup registers a new account. Username and email must both be free.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	if in.Username == "" || in.Email == "" || in.Fullname == "" || in.Password == "" {
		return nil, apierr.InvalidArgument("All fields are required")
	}

	if _, err := s.users.FindByEmailOrUsername(ctx, in.Email, in.Username); err == nil {
		return nil, apierr.Conflict("Username or Email already exist")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		Fullname:     in.Fullname,
		PasswordHash: string(hash),
	}

	if in.AvatarPath != "" {
		asset, err := s.store.Upload(ctx, in.AvatarPath)
		if err != nil {
			return nil, apierr.Internal("Avatar upload failed", err)
		}
		user.Avatar = asset.URL
	}
	if in.CoverImagePath != "" {
		asset, err := s.store.Upload(ctx, in.CoverImagePath)
		if err != nil {
			return nil, apierr.Internal("Cover image upload failed", err)
		}
		user.CoverImage = asset.URL
	}

	return s.users.Create(ctx, user)
}

// Login verifies credentials and issues a token pair. The refresh token
// is persisted on the user so a stolen-but-revoked token cannot rotate.
func (s *AuthService) Login(ctx context.Context, email, username, password string) (*model.User, *TokenPair, error) {
	if email == "" && username == "" {
		return nil, nil, apierr.InvalidArgument("Email or username is required")
	}

	user, err := s.users.FindByEmailOrUsername(ctx, email, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apierr.NotFound("User does not exist")
		}
		return nil, nil, err
	}

	if user.PasswordHash == "" {
		return nil, nil, apierr.Unauthorized("Invalid user credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apierr.Unauthorized("Invalid user credentials")
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Refresh rotates the token pair. The incoming refresh token must
// verify, must not be denylisted and must match the stored one.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.User, *TokenPair, error) {
	claims, err := s.parseToken(refreshToken, s.cfg.RefreshTokenSecret)
	if err != nil {
		return nil, nil, apierr.Unauthorized("Invalid refresh token")
	}

	revoked, err := s.cache.IsRefreshTokenRevoked(ctx, claims.ID)
	if err != nil {
		log.Printf("auth: denylist check failed: %v", err)
	}
	if revoked {
		return nil, nil, apierr.Unauthorized("Refresh token is expired or used")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, nil, apierr.Unauthorized("Invalid refresh token")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apierr.Unauthorized("Invalid refresh token")
		}
		return nil, nil, err
	}
	if user.RefreshToken != refreshToken {
		return nil, nil, apierr.Unauthorized("Refresh token is expired or used")
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Logout clears the stored refresh token and denylists the outstanding
// one for the remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apierr.Unauthorized("Invalid session")
		}
		return err
	}

	if user.RefreshToken != "" {
		if claims, err := s.parseToken(user.RefreshToken, s.cfg.RefreshTokenSecret); err == nil {
			ttl := time.Until(claims.ExpiresAt.Time)
			if ttl > 0 {
				if err := s.cache.RevokeRefreshToken(ctx, claims.ID, ttl); err != nil {
					log.Printf("auth: denylist write failed: %v", err)
				}
			}
		}
	}

	return s.users.UpdateRefreshToken(ctx, userID, "")
}

// GoogleAuthURL builds the consent-screen redirect for the given CSRF
// state.
func (s *AuthService) GoogleAuthURL(state string) string {
	return s.google.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

type googleUserinfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// LoginWithGoogle exchanges the OAuth code, fetches the Google profile
// and logs the matching account in, creating it on first login.
func (s *AuthService) LoginWithGoogle(ctx context.Context, code string) (*model.User, *TokenPair, error) {
	if code == "" {
		return nil, nil, apierr.InvalidArgument("Authorization code is required")
	}

	token, err := s.google.Exchange(ctx, code)
	if err != nil {
		return nil, nil, apierr.Unauthorized("Google authorization failed")
	}

	resp, err := s.google.Client(ctx, token).Get(googleUserinfoURL)
	if err != nil {
		return nil, nil, apierr.Internal("Failed to fetch Google profile", err)
	}
	defer resp.Body.Close()

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, nil, apierr.Internal("Failed to fetch Google profile", err)
	}
	if info.ID == "" || info.Email == "" {
		return nil, nil, apierr.Unauthorized("Google authorization failed")
	}

	user, err := s.users.FindByGoogleID(ctx, info.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		user, err = s.users.FindByEmailOrUsername(ctx, info.Email, "")
		if errors.Is(err, pgx.ErrNoRows) {
			username := usernameFromEmail(info.Email)
			if _, lookupErr := s.users.FindByEmailOrUsername(ctx, "", username); lookupErr == nil {
				username = username + "-" + uuid.NewString()[:8]
			}
			user, err = s.users.Create(ctx, &model.User{
				Username: username,
				Email:    info.Email,
				Fullname: info.Name,
				Avatar:   info.Picture,
				GoogleID: &info.ID,
			})
		}
	}
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// ParseAccessToken verifies an access token and returns the user id.
func (s *AuthService) ParseAccessToken(token string) (uuid.UUID, error) {
	claims, err := s.parseToken(token, s.cfg.AccessTokenSecret)
	if err != nil {
		return uuid.Nil, apierr.Unauthorized("Invalid access token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apierr.Unauthorized("Invalid access token")
	}
	return userID, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*TokenPair, error) {
	access, err := s.signToken(user, s.cfg.AccessTokenSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) signToken(user *model.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (s *AuthService) parseToken(token, secret string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func usernameFromEmail(email string) string {
	for i, r := range email {
		if r == '@' {
			return email[:i]
		}
	}
	return email
}
