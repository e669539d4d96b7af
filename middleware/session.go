package middleware

import (
	"fmt"
	"time"

	"zenflow/model"
	"zenflow/repository"
	"zenflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionLifetime   = 24 * time.Hour
	inactivityTimeout = 48 * time.Hour
)

// SessionMiddleware resolves the session cookie, expires idle sessions
// and refreshes the activity timestamp. Requests without a valid
// session pass through untouched; token auth decides access.
func SessionMiddleware(sessionRepo *repository.SessionRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie("session_id")
		if err != nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		session, err := sessionRepo.GetSession(ctx, sessionID)
		if err != nil || session == nil || !session.IsActive {
			c.SetCookie("session_id", "", -1, "/", "", true, true)
			c.Next()
			return
		}

		if time.Since(session.LastActivityAt) > inactivityTimeout {
			session.IsActive = false
			sessionRepo.UpdateSession(ctx, session)
			c.SetCookie("session_id", "", -1, "/", "", true, true)
			c.Next()
			return
		}

		session.LastActivityAt = time.Now()
		sessionRepo.UpdateSession(ctx, session)

		c.Set("session", session)
		c.Next()
	}
}

// CreateSession records a fresh login session and sets its cookie.
func CreateSession(c *gin.Context, userID string, sessionRepo *repository.SessionRepo) error {
	userAgent := c.Request.UserAgent()
	browser, os, device := utils.ParseUserAgent(userAgent)

	session := &model.Session{
		SessionID:      uuid.New().String(),
		UserID:         userID,
		DisplayName:    utils.GenerateSessionName(userAgent),
		DeviceInfo:     fmt.Sprintf("%s on %s (%s)", browser, os, device),
		IPAddress:      c.ClientIP(),
		CreatedAt:      time.Now(),
		ExpiresAt:      time.Now().Add(sessionLifetime),
		LastActivityAt: time.Now(),
		IsActive:       true,
	}

	if err := sessionRepo.CreateSession(c.Request.Context(), session); err != nil {
		return err
	}

	c.SetCookie("session_id", session.SessionID, int(sessionLifetime.Seconds()), "/", "", true, true)
	return nil
}
