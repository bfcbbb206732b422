package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-hr-ticketing/internal/domain"
	"go-hr-ticketing/internal/shared/apperror"
	"go-hr-ticketing/internal/shared/contextutil"
	"go-hr-ticketing/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const actorContextKey = "actor"

var (
	ErrTokenMissing = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken = apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
)

// AuthMiddleware verifies the bearer token (or access_token cookie) and
// exposes the caller as a domain.Actor on both the gin and request context.
// Tokens are issued elsewhere; only HMAC signatures are accepted.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, ErrTokenMissing)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			errObj := ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = ErrTokenExpired
			}
			abortWith(c, errObj)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, ErrInvalidToken)
			return
		}

		actor, err := actorFromClaims(claims)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, ErrInvalidToken.Code, err.Error(), nil)
			c.Abort()
			return
		}

		c.Set(actorContextKey, actor)
		c.Set("employee_id", actor.ID.String())
		c.Set("role", string(actor.Role))
		c.Request = c.Request.WithContext(contextutil.WithActor(c.Request.Context(), actor))

		c.Next()
	}
}

func actorFromClaims(claims jwt.MapClaims) (domain.Actor, error) {
	rawID, _ := claims["employee_id"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return domain.Actor{}, errors.New("Employee ID not found in token")
	}

	role := domain.Role(stringClaim(claims, "role"))
	if !role.Valid() {
		return domain.Actor{}, errors.New("Role not found in token")
	}

	actor := domain.Actor{
		ID:    id,
		Role:  role,
		Email: strings.ToLower(stringClaim(claims, "email")),
	}
	if raw := stringClaim(claims, "department_id"); raw != "" {
		deptID, err := uuid.Parse(raw)
		if err != nil {
			return domain.Actor{}, errors.New("Invalid department ID in token")
		}
		actor.DepartmentID = &deptID
	}
	return actor, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

// CurrentActor returns the caller stored by AuthMiddleware.
func CurrentActor(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}

// RoleMiddleware allows only the listed roles through.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok || !actor.Is(allowedRoles...) {
			abortWith(c, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}
