package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrSegredoAusente = errors.New("JWT_SECRET não definida")

// Claims do token de acesso (RBAC simples: IsAdmin)
type Claims struct {
	UserID  uint `json:"userId"`
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Tempo de vida do access token
const AccessTTL = 15 * time.Minute

// Tokens emite e valida tokens HS256 assinados com o segredo da API.
type Tokens struct {
	segredo []byte
	emissor string
	agora   func() time.Time
}

func NewTokens(segredo, emissor string) (*Tokens, error) {
	if segredo == "" {
		return nil, ErrSegredoAusente
	}
	return &Tokens{segredo: []byte(segredo), emissor: emissor, agora: time.Now}, nil
}

// GerarAcesso gera um JWT com iss, sub, iat, nbf, exp e jti.
func (t *Tokens) GerarAcesso(userID uint, isAdmin bool) (string, error) {
	now := t.agora()
	claims := &Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.emissor,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.segredo)
}

// Validar confere assinatura, método, emissor e expiração.
func (t *Tokens) Validar(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.emissor),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.agora),
	)
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return t.segredo, nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, errors.New("token inválido")
	}
	return c, nil
}
