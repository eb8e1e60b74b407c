package middleware

import (
	"errors"
	"net/http"
	"strings"

	"bunshack-api/logging"
	"bunshack-api/models"
	"bunshack-api/session"
	"bunshack-api/store"

	"github.com/gin-gonic/gin"
)

const (
	MsgNotLoggedIn  = "User is not logged in."
	MsgNoPermission = "You have no permission to view this page."

	userKey   = "currentUser"
	claimsKey = "sessionClaims"
)

// Authenticator resolves the caller of a request from its session token.
type Authenticator struct {
	Tokens  *session.Manager
	Revoker session.Revoker
	Users   store.UserRepository
}

// Resolve returns the session user, or an error when the request carries no
// valid, unrevoked session for an existing account.
func (a *Authenticator) Resolve(c *gin.Context) (*models.User, *session.Claims, error) {
	tokenStr := TokenFromRequest(c)
	if tokenStr == "" {
		return nil, nil, session.ErrInvalidToken
	}
	claims, err := a.Tokens.Parse(tokenStr)
	if err != nil {
		return nil, nil, err
	}
	revoked, err := a.Revoker.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, session.ErrInvalidToken
	}
	user, err := a.Users.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, session.ErrInvalidToken
		}
		return nil, nil, err
	}
	return user, claims, nil
}

// RequireSession rejects requests without a valid session and stores the
// caller in the context.
func RequireSession(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, claims, err := a.Resolve(c)
		if err != nil {
			if !errors.Is(err, session.ErrInvalidToken) {
				logging.FromContext(c).WithError(err).Error("session lookup failed")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": MsgNotLoggedIn})
			return
		}
		c.Set(userKey, user)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAdmin must run after RequireSession.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": MsgNoPermission})
			return
		}
		c.Next()
	}
}

// TokenFromRequest reads the session cookie, falling back to a Bearer header.
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// CurrentUser returns the caller stored by RequireSession, or nil.
func CurrentUser(c *gin.Context) *models.User {
	val, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := val.(*models.User)
	return user
}

func CurrentClaims(c *gin.Context) *session.Claims {
	val, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := val.(*session.Claims)
	return claims
}

// CanAccess reports whether user may see an order owned by ownerID.
func CanAccess(user *models.User, ownerID string) bool {
	return user != nil && (user.IsAdmin || user.ID == ownerID)
}
