package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshil0408/contentify-backend/internal/config"
	"github.com/Harshil0408/contentify-backend/internal/model"
)

func testAuthService() *AuthService {
	cfg := &config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     48 * time.Hour,
		RefreshTokenTTL:    7 * 24 * time.Hour,
	}
	return NewAuthService(nil, NewCacheService(""), nil, cfg)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	svc := testAuthService()
	user := &model.User{ID: uuid.New(), Username: "viewer"}

	token, err := svc.signToken(user, svc.cfg.AccessTokenSecret, svc.cfg.AccessTokenTTL)
	require.NoError(t, err)

	gotID, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, gotID)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	svc := testAuthService()
	user := &model.User{ID: uuid.New()}

	// A refresh token must not pass as an access token.
	token, err := svc.signToken(user, svc.cfg.RefreshTokenSecret, time.Hour)
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestAccessToken_Expired(t *testing.T) {
	svc := testAuthService()
	user := &model.User{ID: uuid.New()}

	token, err := svc.signToken(user, svc.cfg.AccessTokenSecret, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestAccessToken_Garbage(t *testing.T) {
	svc := testAuthService()

	_, err := svc.ParseAccessToken("not.a.token")
	assert.Error(t, err)
}

func TestRefreshToken_CarriesUniqueID(t *testing.T) {
	svc := testAuthService()
	user := &model.User{ID: uuid.New()}

	t1, err := svc.signToken(user, svc.cfg.RefreshTokenSecret, time.Hour)
	require.NoError(t, err)
	t2, err := svc.signToken(user, svc.cfg.RefreshTokenSecret, time.Hour)
	require.NoError(t, err)

	c1, err := svc.parseToken(t1, svc.cfg.RefreshTokenSecret)
	require.NoError(t, err)
	c2, err := svc.parseToken(t2, svc.cfg.RefreshTokenSecret)
	require.NoError(t, err)

	assert.NotEmpty(t, c1.ID)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestUsernameFromEmail(t *testing.T) {
	assert.Equal(t, "jane.doe", usernameFromEmail("jane.doe@example.com"))
	assert.Equal(t, "nodomain", usernameFromEmail("nodomain"))
}
