package jwt

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/itchan-dev/community/shared/domain"
	internal_errors "github.com/itchan-dev/community/shared/errors"
	"github.com/itchan-dev/community/shared/logger"
)

// Identity comes from an access token issued elsewhere. The community
// service only needs the caller's id, nickname and admin flag.
type JwtService interface {
	NewToken(user domain.User) (string, error)
	DecodeToken(jwtStr string) (*jwt.Token, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) JwtService {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{}
	claims["uid"] = user.Id
	claims["nickname"] = user.Nickname
	claims["admin"] = user.Admin
	claims["exp"] = time.Now().Add(j.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", errors.New("Can't create token")
	}

	return tokenString, nil
}

func (j *Jwt) DecodeToken(jwtStr string) (*jwt.Token, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &internal_errors.ErrorWithStatusCode{Message: fmt.Sprintf("Unexpected signing method: %v", token.Header["alg"]), StatusCode: http.StatusUnauthorized}
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		logger.Log.Debug("token rejected", "error", err)
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid token signature", StatusCode: http.StatusUnauthorized}
	}

	if !token.Valid {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}

	return token, nil
}

// UserFromClaims rebuilds the caller from a decoded token.
func UserFromClaims(token *jwt.Token) (domain.User, bool) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.User{}, false
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return domain.User{}, false
	}
	nickname, ok := claims["nickname"].(string)
	if !ok || nickname == "" {
		return domain.User{}, false
	}
	admin, _ := claims["admin"].(bool)
	return domain.User{Id: int64(uid), Nickname: nickname, Admin: admin}, true
}
