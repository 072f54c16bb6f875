package jwtauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "rutasegura/pkg/domain-errors"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("test-signing-key", "rutasegura")

	token, err := svc.GenerateToken("11111111-1", "guardian", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "11111111-1", claims.RUT)
	assert.Equal(t, "guardian", claims.Role)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewService("test-signing-key", "rutasegura")

	token, err := svc.GenerateToken("11111111-1", "driver", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsForeignKey(t *testing.T) {
	svc := NewService("test-signing-key", "rutasegura")
	other := NewService("another-key", "rutasegura")

	token, err := other.GenerateToken("11111111-1", "driver", time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
