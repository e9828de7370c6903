package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/apierror"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/config"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/dto"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/model"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/repository"
)

const denylistPrefix = "auth:denylist:"

type AuthService interface {
	Registrar(ctx context.Context, req dto.RegistroRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Perfil(ctx context.Context, productorID uuid.UUID) (*dto.ProductorResponse, error)
}

type authService struct {
	repo repository.ProductorRepository
	rdb  *redis.Client
	cfg  *config.Config
}

func NewAuthService(repo repository.ProductorRepository, rdb *redis.Client, cfg *config.Config) AuthService {
	return &authService{repo: repo, rdb: rdb, cfg: cfg}
}

func (s *authService) Registrar(ctx context.Context, req dto.RegistroRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierror.Validation(map[string]string{
			"email": "El email ya está registrado.",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	productor := &model.Productor{
		Nombre:       req.Nombre,
		Apellido:     req.Apellido,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, productor); err != nil {
		return nil, err
	}
	return s.authResponse(productor)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	productor, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, apierror.Forbidden("Credenciales inválidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(productor.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.Forbidden("Credenciales inválidas")
	}
	return s.authResponse(productor)
}

// Logout denylists the token in Redis until its natural expiry, so a revoked
// token cannot be replayed even though JWTs are stateless.
func (s *authService) Logout(ctx context.Context, token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return apierror.Forbidden("Token inválido")
	}

	ttl := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	if claims, ok := parsed.Claims.(jwt.MapClaims); ok {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			if remaining := time.Until(exp.Time); remaining > 0 {
				ttl = remaining
			}
		}
	}
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Set(ctx, denylistPrefix+token, "1", ttl).Err()
}

func (s *authService) Perfil(ctx context.Context, productorID uuid.UUID) (*dto.ProductorResponse, error) {
	productor, err := s.repo.FindByID(ctx, productorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Productor no encontrado")
		}
		return nil, err
	}
	resp := productorToResponse(productor)
	return &resp, nil
}

func (s *authService) authResponse(p *model.Productor) (*dto.AuthResponse, error) {
	token, err := s.generateToken(p)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Productor: productorToResponse(p),
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: s.cfg.JWTExpirationHours * 3600,
	}, nil
}

func (s *authService) generateToken(p *model.Productor) (string, error) {
	claims := jwt.MapClaims{
		"user_id": p.ID.String(),
		"email":   p.Email,
		"exp":     time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("firmar token: %w", err)
	}
	return signed, nil
}

func productorToResponse(p *model.Productor) dto.ProductorResponse {
	return dto.ProductorResponse{
		ID:             p.ID.String(),
		Nombre:         p.Nombre,
		Apellido:       p.Apellido,
		Email:          p.Email,
		NombreCompleto: p.NombreCompleto(),
	}
}
