package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/apierror"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/config"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/dto"
)

func buildAuthSvc() (AuthService, *stubProductorRepo) {
	repo := newStubProductorRepo()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 24}
	return NewAuthService(repo, nil, cfg), repo
}

func registro(email string) dto.RegistroRequest {
	return dto.RegistroRequest{
		Nombre:   "Juan",
		Apellido: "Pérez",
		Email:    email,
		Password: "secreto123",
	}
}

func TestRegistrar_OK(t *testing.T) {
	svc, _ := buildAuthSvc()

	resp, err := svc.Registrar(context.Background(), registro("juan@campo.test"))
	require.NoError(t, err)
	assert.Equal(t, "juan@campo.test", resp.Productor.Email)
	assert.Equal(t, "Juan Pérez", resp.Productor.NombreCompleto)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 24*3600, resp.ExpiresIn)

	// El token emitido es HS256 firmado con el secreto configurado.
	parsed, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.Productor.ID, claims["user_id"])
	assert.Equal(t, "juan@campo.test", claims["email"])
}

func TestRegistrar_NormalizaEmail(t *testing.T) {
	svc, repo := buildAuthSvc()

	resp, err := svc.Registrar(context.Background(), registro("  Juan@Campo.Test "))
	require.NoError(t, err)
	assert.Equal(t, "juan@campo.test", resp.Productor.Email)

	_, err = repo.FindByEmail(context.Background(), "juan@campo.test")
	assert.NoError(t, err)
}

func TestRegistrar_EmailDuplicado(t *testing.T) {
	svc, _ := buildAuthSvc()

	_, err := svc.Registrar(context.Background(), registro("ana@campo.test"))
	require.NoError(t, err)

	req := registro("ana@campo.test")
	req.Password = "otraclave999"
	_, err = svc.Registrar(context.Background(), req)

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeValidation, apiErr.Code)
	assert.Contains(t, apiErr.Fields, "email")
	assert.Equal(t, "El email ya está registrado.", apiErr.Fields["email"])

	// La cuenta original queda intacta: su contraseña sigue siendo válida.
	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@campo.test",
		Password: "secreto123",
	})
	assert.NoError(t, err)

	// Y la contraseña del intento rechazado nunca entró.
	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@campo.test",
		Password: "otraclave999",
	})
	assert.Error(t, err)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	svc, _ := buildAuthSvc()
	_, err := svc.Registrar(context.Background(), registro("pedro@campo.test"))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "pedro@campo.test",
		Password: "equivocada",
	})
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeForbidden, apiErr.Code)
	assert.Equal(t, "Credenciales inválidas", apiErr.Message)
}

func TestLogin_EmailInexistente(t *testing.T) {
	svc, _ := buildAuthSvc()

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nadie@campo.test",
		Password: "loquesea",
	})
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	// Mismo mensaje que password incorrecta: no se revela si el email existe.
	assert.Equal(t, "Credenciales inválidas", apiErr.Message)
}

func TestLogout_TokenInvalido(t *testing.T) {
	svc, _ := buildAuthSvc()

	err := svc.Logout(context.Background(), "no-es-un-jwt")
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeForbidden, apiErr.Code)
}

func TestLogout_TokenPropio(t *testing.T) {
	svc, _ := buildAuthSvc()
	resp, err := svc.Registrar(context.Background(), registro("laura@campo.test"))
	require.NoError(t, err)

	// Sin Redis el logout es un no-op, pero el token debe validar.
	assert.NoError(t, svc.Logout(context.Background(), resp.Token))
}

func TestPerfil(t *testing.T) {
	svc, repo := buildAuthSvc()
	resp, err := svc.Registrar(context.Background(), registro("sofia@campo.test"))
	require.NoError(t, err)

	p, err := repo.FindByEmail(context.Background(), "sofia@campo.test")
	require.NoError(t, err)

	perfil, err := svc.Perfil(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Productor.ID, perfil.ID)
	assert.Equal(t, "Juan Pérez", perfil.NombreCompleto)
}
