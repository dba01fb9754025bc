package jwt

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	secret    = "test-secret-key-for-unit-tests"
	userID    = "00000000-0000-0000-0000-000000000001"
	companyID = "00000000-0000-0000-0000-000000000002"
	issuer    = "inventory-ledger-test"
)

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := Generate(secret, userID, companyID, RoleBodeguero, issuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	u, c, role, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, userID, u)
	assert.Equal(t, companyID, c)
	assert.Equal(t, RoleBodeguero, role)
}

func TestParseClaims_Issuer(t *testing.T) {
	tok, err := Generate(secret, userID, companyID, RoleAdmin, issuer, 60)
	require.NoError(t, err)

	claims, err := ParseClaims(secret, issuer, tok)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)

	_, err = ParseClaims(secret, "otro-emisor", tok)
	assert.Error(t, err)
}

func TestParse_Errores(t *testing.T) {
	expired, err := Generate(secret, userID, companyID, RoleAdmin, issuer, -1)
	require.NoError(t, err)
	_, _, _, err = Parse(secret, expired)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)

	valid, err := Generate(secret, userID, companyID, RoleAdmin, issuer, 60)
	require.NoError(t, err)
	_, _, _, err = Parse("otro-secret-completamente-distinto", valid)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")

	_, _, _, err = Parse("", valid)
	assert.Error(t, err)

	noCompany, err := Generate(secret, userID, "", RoleAdmin, issuer, 60)
	require.NoError(t, err)
	_, _, _, err = Parse(secret, noCompany)
	assert.Error(t, err, "sin empresa no hay tenant")

	_, err = Generate("", userID, companyID, RoleAdmin, issuer, 60)
	assert.Error(t, err)
}

func TestParse_RechazaAlgoritmoDistinto(t *testing.T) {
	claims := Claims{UserID: userID, CompanyID: companyID, Role: RoleAdmin}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, _, _, err = Parse(secret, tok)
	assert.Error(t, err)
}
