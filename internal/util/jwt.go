package util

import (
	"errors"
	"time"

	"blog-backend/config"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 令牌固定 30 天有效期，登录/注册/获取当前用户时都会重新签发
const tokenLifetime = 30 * 24 * time.Hour

// GenerateToken 为用户签发携带用户ID的令牌
func GenerateToken(userID primitive.ObjectID) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.Hex(),
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	})

	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ValidateToken 验证令牌签名和有效期，返回其中的用户ID
func ValidateToken(tokenString string) (primitive.ObjectID, error) {
	if tokenString == "" {
		return primitive.NilObjectID, errors.New("令牌为空")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("非预期的签名方法")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return primitive.NilObjectID, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return primitive.NilObjectID, errors.New("无效的令牌")
	}

	hex, ok := claims["user_id"].(string)
	if !ok {
		return primitive.NilObjectID, errors.New("无效的用户ID")
	}

	userID, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, errors.New("无效的用户ID")
	}
	return userID, nil
}
