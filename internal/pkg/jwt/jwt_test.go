package jwt

import (
	"testing"

	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	employeeID := "0b9b7b0e-7a53-4d7e-9c39-3c6a7c1f1a10"

	token, expiresAt, err := svc.GenerateAccessToken("user-1", &employeeID, nil, auth.RoleManager)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, employeeID, claims["employee_id"])
	assert.Nil(t, claims["company_id"])
	assert.Equal(t, "manager", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_InvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "soon")

	_, _, err := svc.GenerateAccessToken("user-1", nil, nil, auth.RoleEmployee)
	assert.Error(t, err)
}

func TestRole_CanViewOthers(t *testing.T) {
	assert.True(t, auth.RoleOwner.CanViewOthers())
	assert.True(t, auth.RoleManager.CanViewOthers())
	assert.False(t, auth.RoleEmployee.CanViewOthers())
	assert.False(t, auth.RolePending.CanViewOthers())
}
