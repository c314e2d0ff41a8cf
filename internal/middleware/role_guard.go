package middleware

import (
	"net/http"

	"app/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleが最低ロール以上かを確認します。

func RoleGuard(min model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			roleStr, ok := rawRole.(string)
			if !ok || roleStr == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			role, ok := model.ParseRole(roleStr)
			if !ok || !role.AtLeast(min) {
				return c.JSON(http.StatusForbidden, errorJSON("without permission"))
			}

			return next(c)
		}
	}
}
