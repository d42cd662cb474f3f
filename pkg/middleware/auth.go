package middleware

import (
	"log"
	"net/http"
	"pos_backend/pkg/config"
	"pos_backend/pkg/models"
	"pos_backend/pkg/session"
	"pos_backend/pkg/utils"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// TokenCookie holds the JWT for browser clients
	TokenCookie = "token"

	sessionStaffKey = "staff_id"
	sessionIDKey    = "sid"

	staffKey      = "staff"
	sessionKeyKey = "sessionKey"
)

type identity struct {
	staffID string
	key     string
}

// AuthenticateStaff resolves the caller from a JWT (cookie or Bearer header)
// or from the cookie session, and rejects stale, deactivated or idle sessions.
func AuthenticateStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		app := GetApp(c)

		id, found, valid := identify(c)
		if !found {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
			c.Abort()
			return
		}
		if !valid {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token."})
			c.Abort()
			return
		}

		// Re-resolve on every request so deleted or deactivated staff lose access immediately.
		member, ok := app.State.RestoreSession(id.staffID)
		if !ok {
			log.Printf("Dropping stale session for staff %s", id.staffID)
			app.Idle.End(id.key, id.staffID)
			ClearSession(c)
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Session expired. Please sign in again."})
			c.Abort()
			return
		}

		if !app.Idle.Check(id.key, member.ID) {
			ClearSession(c)
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Signed out due to inactivity."})
			c.Abort()
			return
		}
		if isMutating(c.Request.Method) {
			app.Idle.Activity(id.key, session.PointerDown)
		}

		c.Set(staffKey, member)
		c.Set(sessionKeyKey, id.key)
		c.Next()
	}
}

// identify reports whether credentials were presented and whether they are usable.
func identify(c *gin.Context) (identity, bool, bool) {
	token := ""
	if cookieToken, err := c.Cookie(TokenCookie); err == nil && cookieToken != "" {
		token = cookieToken
	}
	if token == "" {
		parts := strings.Split(c.GetHeader("Authorization"), " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			token = parts[1]
		}
	}

	if token != "" {
		claims, err := utils.VerifyToken(token)
		if err != nil || claims.SessionKey() == "" {
			return identity{}, true, false
		}
		return identity{staffID: claims.StaffID, key: claims.SessionKey()}, true, true
	}

	sess := sessions.Default(c)
	staffID, _ := sess.Get(sessionStaffKey).(string)
	key, _ := sess.Get(sessionIDKey).(string)
	if staffID == "" {
		return identity{}, false, false
	}
	return identity{staffID: staffID, key: key}, true, key != ""
}

func isMutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// RequireRoles lets the request through only for the given roles
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		member, ok := c.Get(staffKey)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
			c.Abort()
			return
		}
		role := member.(models.Staff).Role
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. Insufficient permissions."})
		c.Abort()
	}
}

// RequireManagement allows MANAGER and ADMIN
func RequireManagement() gin.HandlerFunc {
	return RequireRoles(models.RoleManager, models.RoleAdmin)
}

// RequireAdmin allows ADMIN only
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}

// CurrentStaff returns the member set by AuthenticateStaff
func CurrentStaff(c *gin.Context) models.Staff {
	return c.MustGet(staffKey).(models.Staff)
}

// CurrentSessionKey returns the session key set by AuthenticateStaff
func CurrentSessionKey(c *gin.Context) string {
	return c.GetString(sessionKeyKey)
}

// StartSession stores the staff id and session key in the cookie session
func StartSession(c *gin.Context, staffID, key string) error {
	sess := sessions.Default(c)
	sess.Set(sessionStaffKey, staffID)
	sess.Set(sessionIDKey, key)
	return sess.Save()
}

// ClearSession forgets the cookie session and the token cookie
func ClearSession(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	if err := sess.Save(); err != nil {
		log.Printf("⚠️  Could not clear session: %v", err)
	}
	c.SetCookie(TokenCookie, "", -1, "/", "", config.AppConfig.CookieSecure == "true", true)
}
