// auth/verifier.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken indica requisição sem header Authorization utilizável.
	ErrMissingToken = errors.New("auth: missing bearer token")
	// ErrInvalidToken indica token com assinatura ou claims inválidas.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// SecretsClient interface para Mock
type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Verifier valida tokens de identidade HS256 e extrai o userId (claim sub).
//
// O core nunca interpreta o token além disso: quem chega aqui já passou pelo
// API Gateway, esta é a validação de borda do serviço.
type Verifier struct {
	secret []byte
}

// NewVerifier cria o verificador com um segredo já resolvido.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// NewVerifierFromSecretsManager resolve o segredo no AWS Secrets Manager no
// boot e devolve o verificador pronto.
func NewVerifierFromSecretsManager(ctx context.Context, client SecretsClient, secretID string) (*Verifier, error) {
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &secretID,
	})
	if err != nil {
		return nil, fmt.Errorf("auth: falha ao resolver segredo %s: %w", secretID, err)
	}
	if out.SecretString == nil || *out.SecretString == "" {
		return nil, fmt.Errorf("auth: segredo %s vazio", secretID)
	}
	return NewVerifier(*out.SecretString), nil
}

// ExtractToken separa o token do header Authorization ("Bearer <token>").
func ExtractToken(authorizationHeader string) (string, error) {
	parts := strings.SplitN(authorizationHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrMissingToken
	}
	return parts[1], nil
}

// ParseUserID valida assinatura e expiração do token e retorna a claim sub.
func (v *Verifier) ParseUserID(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: método de assinatura inesperado %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("%w: claim sub ausente", ErrInvalidToken)
	}
	return claims.Subject, nil
}
