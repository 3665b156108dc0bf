// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangashelf/internal/platform/constants"
	"github.com/taibuivan/mangashelf/internal/platform/sec"
)

func newKeys(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

/*
TestTokenService_RoundTrip verifies a minted token verifies back to the same claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	key := newKeys(t)
	service := sec.NewTokenServiceFromKeys(&key.PublicKey, key, constants.AuthIssuer)

	token, err := service.GenerateAccessToken("u-1", "reader", sec.RoleMember, time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, sec.RoleMember, claims.Role)
}

/*
TestTokenService_Rejections covers expiry, wrong key and wrong issuer.
*/
func TestTokenService_Rejections(t *testing.T) {
	key := newKeys(t)
	service := sec.NewTokenServiceFromKeys(&key.PublicKey, key, constants.AuthIssuer)

	t.Run("expired", func(t *testing.T) {
		token, err := service.GenerateAccessToken("u-1", "reader", sec.RoleMember, -time.Minute)
		require.NoError(t, err)
		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("foreign_key", func(t *testing.T) {
		other := newKeys(t)
		forger := sec.NewTokenServiceFromKeys(&other.PublicKey, other, constants.AuthIssuer)
		token, err := forger.GenerateAccessToken("u-1", "reader", sec.RoleAdmin, time.Minute)
		require.NoError(t, err)
		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("issuer", func(t *testing.T) {
		stranger := sec.NewTokenServiceFromKeys(&key.PublicKey, key, "elsewhere")
		token, err := stranger.GenerateAccessToken("u-1", "reader", sec.RoleMember, time.Minute)
		require.NoError(t, err)
		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := service.VerifyToken("not-a-token")
		assert.Error(t, err)
	})
}

/*
TestTokenService_VerifyOnly verifies signing is refused without a private key.
*/
func TestTokenService_VerifyOnly(t *testing.T) {
	key := newKeys(t)
	service := sec.NewTokenServiceFromKeys(&key.PublicKey, nil, constants.AuthIssuer)

	_, err := service.GenerateAccessToken("u-1", "reader", sec.RoleMember, time.Minute)
	assert.ErrorIs(t, err, sec.ErrSigningDisabled)
}

/*
TestUserRole_AtLeast checks the role ordering.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleMember))
	assert.False(t, sec.RoleMember.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("").AtLeast(sec.RoleMember))
}
