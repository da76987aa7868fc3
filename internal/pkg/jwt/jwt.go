package jwt

import (
	"errors"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

var ErrWrongTokenType = errors.New("token is not an access token")

type Service interface {
	GenerateAccessToken(u user.User) (token string, expiresAt time.Time, err error)
	// Subject returns the user id of a verified access token.
	Subject(token jwt.Token) (string, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	clock                 clock.Clock
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpiration time.Duration, c clock.Clock) Service {
	// Verification uses the same clock that stamps iat and exp.
	tokenAuth := jwtauth.New("HS256", []byte(secretKey), nil,
		jwt.WithClock(jwt.ClockFunc(c.Now)),
		jwt.WithAcceptableSkew(30*time.Second),
	)
	return &JWTService{
		accessTokenExpiration: accessTokenExpiration,
		tokenAuth:             tokenAuth,
		clock:                 c,
	}
}

func (j *JWTService) GenerateAccessToken(u user.User) (token string, expiresAt time.Time, err error) {
	issuedAt := j.clock.Now()
	expiresAt = issuedAt.Add(j.accessTokenExpiration)

	claims := map[string]interface{}{
		jwt.SubjectKey:    u.ID,
		jwt.IssuedAtKey:   issuedAt.Unix(),
		jwt.ExpirationKey: expiresAt.Unix(),
		"role":            string(u.Role),
		"organization_id": returnValueOrNil(u.OrganizationID),
		"type":            tokenTypeAccess,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) Subject(token jwt.Token) (string, error) {
	tokenType, ok := token.Get("type")
	if !ok || tokenType != tokenTypeAccess {
		return "", ErrWrongTokenType
	}
	if token.Subject() == "" {
		return "", jwt.ErrInvalidJWT()
	}
	return token.Subject(), nil
}

func returnValueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
