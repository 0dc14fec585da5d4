package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TipoAccess  = "access"
	TipoRefresh = "refresh"
)

var (
	ErrTokenInvalido = errors.New("token inválido ou expirado")
	ErrTipoToken     = errors.New("tipo de token incorreto")
)

type Claims struct {
	UserID    uint   `json:"user_id"`
	IsAdmin   bool   `json:"is_admin"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Emissor assina e valida os tokens HS256 da API.
type Emissor struct {
	segredo    []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	agora      func() time.Time
}

func NewEmissor(segredo string, accessTTL, refreshTTL time.Duration) *Emissor {
	return &Emissor{
		segredo:    []byte(segredo),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		agora:      time.Now,
	}
}

func (e *Emissor) gerar(userID uint, isAdmin bool, tipo string, ttl time.Duration) (string, error) {
	now := e.agora()
	claims := &Claims{
		UserID:    userID,
		IsAdmin:   isAdmin,
		TokenType: tipo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        fmt.Sprintf("%d-%d", userID, now.UnixNano()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(e.segredo)
}

// GerarPar emite access e refresh para o usuário.
func (e *Emissor) GerarPar(u *Usuario) (ParTokens, error) {
	access, err := e.gerar(u.ID, u.IsAdmin, TipoAccess, e.accessTTL)
	if err != nil {
		return ParTokens{}, err
	}
	refresh, err := e.gerar(u.ID, u.IsAdmin, TipoRefresh, e.refreshTTL)
	if err != nil {
		return ParTokens{}, err
	}
	return ParTokens{Access: access, Refresh: refresh}, nil
}

// Validar confere assinatura e expiração. Com tipo vazio aceita qualquer token da API.
func (e *Emissor) Validar(tokenStr, tipo string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(e.agora),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return e.segredo, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalido, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrTokenInvalido
	}
	if tipo != "" && claims.TokenType != tipo {
		return nil, ErrTipoToken
	}
	return claims, nil
}

// Renovar troca um refresh válido por um novo access.
func (e *Emissor) Renovar(refresh string) (string, error) {
	c, err := e.Validar(refresh, TipoRefresh)
	if err != nil {
		return "", err
	}
	return e.gerar(c.UserID, c.IsAdmin, TipoAccess, e.accessTTL)
}
