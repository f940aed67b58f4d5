package middlewares

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"short_video_service/pkg/logger"
	t_token "short_video_service/pkg/token"
)

const (
	//QueryToken token in query name
	QueryToken = "auth"

	//CookieToken token in cookie name
	CookieToken = "auth_token"

	//TokenMemberID get member form token, set c.locals name
	TokenMemberID = "MemberID"
	//TokenRole get role form token, set c.locals name
	TokenRole = "role"
)

// SessionChecker 確認 session 仍有效, key 為 member ID
type SessionChecker interface {
	GetTTL(ctx context.Context, key string) (int, error)
}

// OptionalIdentity 解析 token, 成功時設定 c.Locals(TokenMemberID).
// 沒有 token 或 token 無效都視為匿名, 不中斷請求.
func OptionalIdentity(sessions SessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			return c.Next()
		}

		claims, err := t_token.ParseJWTWrapper(tokenStr)
		if err != nil {
			logger.Log.Debug("ignore invalid token", zap.Error(err))
			return c.Next()
		}

		if sessions != nil {
			ttl, err := sessions.GetTTL(c.UserContext(), claims.MemberID)
			if err != nil || ttl <= 0 {
				logger.Log.Debug("session expired", zap.String("member_id", claims.MemberID), zap.Error(err))
				return c.Next()
			}
		}

		c.Locals(TokenMemberID, claims.MemberID)
		c.Locals(TokenRole, claims.Role)
		return c.Next()
	}
}

// RequireIdentity 必須先經過 OptionalIdentity, 匿名請求回 401
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ViewerID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}

// ViewerID 目前請求的 member ID, 匿名為空字串
func ViewerID(c *fiber.Ctx) string {
	id, _ := c.Locals(TokenMemberID).(string)
	return id
}

// Header > query > cookie
func tokenFromRequest(c *fiber.Ctx) string {
	if tokenStr := t_token.BearerToken(c.Get(fiber.HeaderAuthorization)); tokenStr != "" {
		return tokenStr
	}
	if tokenStr := c.Query(QueryToken); tokenStr != "" {
		return tokenStr
	}
	return c.Cookies(CookieToken)
}
