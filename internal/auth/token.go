package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims do access token (RBAC simples: papel fechado)
type Claims struct {
	UserID uint  `json:"userId"`
	Papel  Papel `json:"papel"`
	jwt.RegisteredClaims
}

// Tempo de vida do access token
const AccessTTL = 15 * time.Minute

func getSegredo() ([]byte, error) {
	s := os.Getenv("AUTH_JWT_SECRET")
	if s == "" {
		return nil, errors.New("AUTH_JWT_SECRET não configurado")
	}
	return []byte(s), nil
}

func getIssuer() string {
	if v := os.Getenv("AUTH_ISSUER"); v != "" {
		return v
	}
	return "casalink-api"
}

func getAudience() string {
	if v := os.Getenv("AUTH_AUDIENCE"); v != "" {
		return v
	}
	return "casalink-web"
}

// GerarToken emite um JWT HS256 com iss, aud, iat, nbf e jti
func GerarToken(userID uint, papel Papel) (string, error) {
	segredo, err := getSegredo()
	if err != nil {
		return "", fmt.Errorf("segredo jwt: %w", err)
	}
	if !papel.Valido() {
		return "", fmt.Errorf("papel desconhecido: %q", papel)
	}

	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Papel:  papel,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    getIssuer(),
			Audience:  []string{getAudience()},
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			ID:        uuid.NewString(),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(segredo)
}

// helper: verifica se a audience contém o valor esperado
func audienceContains(a jwt.ClaimStrings, want string) bool {
	for _, v := range a {
		if v == want {
			return true
		}
	}
	return false
}

// ParseAndValidate valida assinatura, iss, aud, exp e papel
func ParseAndValidate(tokenStr string) (*Claims, error) {
	segredo, err := getSegredo()
	if err != nil {
		return nil, err
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return segredo, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("token inválido")
	}

	c, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, errors.New("claims inválidas")
	}

	if c.Issuer != getIssuer() {
		return nil, errors.New("issuer inválido")
	}
	if !audienceContains(c.Audience, getAudience()) {
		return nil, errors.New("audience inválida")
	}
	if c.ExpiresAt == nil || time.Now().After(c.ExpiresAt.Time) {
		return nil, errors.New("token expirado")
	}
	if !c.Papel.Valido() {
		return nil, errors.New("papel inválido no token")
	}

	return c, nil
}
