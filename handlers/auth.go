package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"bunshack-api/logging"
	"bunshack-api/middleware"
	"bunshack-api/models"
	"bunshack-api/session"
	"bunshack-api/store"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	UserName string `json:"userName" binding:"required,max=191,username"`
	Password string `json:"password" binding:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

// Register creates a non-admin account
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Registration failed.", "errors": bindingMessages(err)})
		return
	}
	req.Email = models.NormalizeEmail(req.Email)
	ctx := c.Request.Context()

	taken, err := h.takenMessages(c, req.Email, req.UserName)
	if err != nil {
		respondInternal(c, msgSomethingWrong, err)
		return
	}
	if len(taken) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Registration failed.", "errors": taken})
		return
	}

	hash, err := session.HashPassword(req.Password)
	if err != nil {
		respondInternal(c, msgSomethingWrong, err)
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		UserName:     req.UserName,
		PasswordHash: hash,
	}
	if err := h.Users.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Registration failed.",
				"errors":  []string{fmt.Sprintf("Email '%s' is already taken.", req.Email)},
			})
			return
		}
		respondInternal(c, msgSomethingWrong, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Registered Successfully.",
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"userName": user.UserName,
		},
	})
}

func (h *Handler) takenMessages(c *gin.Context, email, userName string) ([]string, error) {
	ctx := c.Request.Context()
	var msgs []string

	_, err := h.Users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		msgs = append(msgs, fmt.Sprintf("Email '%s' is already taken.", email))
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	if len(msgs) == 0 {
		taken, err := h.Users.EmailOrUserNameTaken(ctx, email, userName)
		if err != nil {
			return nil, err
		}
		if taken {
			msgs = append(msgs, fmt.Sprintf("Username '%s' is already taken.", userName))
		}
	}
	return msgs, nil
}

// Login checks the password and issues the session cookie
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please check your credentials and try again.")
		return
	}
	ctx := c.Request.Context()

	user, err := h.Users.GetUserByEmail(ctx, models.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.Metrics.Login("unknown_user")
			respondError(c, http.StatusBadRequest, "Please check your credentials and try again.")
			return
		}
		logging.FromContext(c).WithError(err).Error("login lookup failed")
		respondError(c, http.StatusBadRequest, msgSomethingWrong)
		return
	}

	if !session.CheckPassword(user.PasswordHash, req.Password) {
		h.Metrics.Login("bad_password")
		respondError(c, http.StatusUnauthorized, "Check your login credentials and try again")
		return
	}

	token, claims, err := h.Auth.Tokens.Issue(user.ID)
	if err != nil {
		logging.FromContext(c).WithError(err).Error("issue session")
		respondError(c, http.StatusBadRequest, msgSomethingWrong)
		return
	}

	user.EmailConfirmed = true
	user.LastLogin = time.Now().UTC()
	if err := h.Users.UpdateUser(ctx, user); err != nil {
		logging.FromContext(c).WithError(err).Error("record login")
		respondError(c, http.StatusBadRequest, msgSomethingWrong)
		return
	}

	session.SetCookie(c.Writer, h.Cookies, token, claims.ExpiresAt.Time, req.Remember)
	h.Metrics.Login("success")
	logging.FromContext(c).WithField("user_id", user.ID).Info("user logged in")

	c.JSON(http.StatusOK, gin.H{
		"message": "Login Successful.",
		"user": gin.H{
			"email": user.Email,
			"name":  user.Name,
		},
		"isAdmin": user.IsAdmin,
	})
}

// Logout revokes the current token and clears the cookie
func (h *Handler) Logout(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		respondError(c, http.StatusBadRequest, msgSomethingWrong)
		return
	}
	if err := h.Auth.Revoker.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		logging.FromContext(c).WithError(err).Error("revoke session")
		respondError(c, http.StatusBadRequest, msgSomethingWrong)
		return
	}
	session.ClearCookie(c.Writer, h.Cookies)
	c.JSON(http.StatusOK, gin.H{"message": "You are free to go!"})
}

// CheckStatus reports whether the request carries a live session
func (h *Handler) CheckStatus(c *gin.Context) {
	user, _, err := h.Auth.Resolve(c)
	if err != nil {
		if errors.Is(err, session.ErrInvalidToken) {
			respondError(c, http.StatusForbidden, middleware.MsgNotLoggedIn)
			return
		}
		respondInternal(c, msgSomethingWrong, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in",
		"user": gin.H{
			"email":    user.Email,
			"userName": user.UserName,
		},
		"isAdmin": user.IsAdmin,
	})
}
