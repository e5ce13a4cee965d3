package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hitoshi/sitedesk/internal/model"
)

// adminClaims はアクセストークンに埋め込むクレーム。
// sub（管理者ID）、username、iat、expのみを保持する。
type adminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer はアクセストークンの発行と検証を行う。
// サーバー保持のシークレットによるHMAC-SHA256署名で、
// トークンはサーバー側に一切保存しない（ステートレス・ベアラー）。
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer はTokenIssuerを生成する。
// ttlが0以下の場合は1時間を使用する。
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue は管理者に対する署名付きアクセストークンを発行する。
// 有効期限は発行時刻からTTL（既定1時間）後。
func (ti *TokenIssuer) Issue(admin *model.Admin) (string, error) {
	now := time.Now()
	claims := adminClaims{
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(admin.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify はトークンの署名と有効期限を検証し、認証主体を復元する。
// 署名不一致、期限切れ、HMAC以外のアルゴリズム指定はすべてエラーを返す。
func (ti *TokenIssuer) Verify(tokenString string) (*model.Principal, error) {
	claims := &adminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}

	return &model.Principal{
		ID:       id,
		Username: claims.Username,
	}, nil
}

// TTL は設定されたトークン有効期間を返す。
func (ti *TokenIssuer) TTL() time.Duration {
	return ti.ttl
}
