package dto

import (
	"time"

	"zenflow/model"
)

type UserResponse struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:               user.UserID,
		Username:         user.Username,
		Email:            user.Email,
		TwoFactorEnabled: user.TwoFactorEnabled,
		CreatedAt:        user.CreatedAt,
	}
}

type SessionResponse struct {
	SessionID      string    `json:"session_id"`
	DisplayName    string    `json:"display_name"`
	DeviceInfo     string    `json:"device_info"`
	IPAddress      string    `json:"ip_address"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	Current        bool      `json:"current"`
}

func ToSessionResponse(session *model.Session, currentSessionID string) SessionResponse {
	return SessionResponse{
		SessionID:      session.SessionID,
		DisplayName:    session.DisplayName,
		DeviceInfo:     session.DeviceInfo,
		IPAddress:      session.IPAddress,
		CreatedAt:      session.CreatedAt,
		LastActivityAt: session.LastActivityAt,
		Current:        session.SessionID == currentSessionID,
	}
}

func ToSessionResponses(sessions []*model.Session, currentSessionID string) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = ToSessionResponse(session, currentSessionID)
	}
	return responses
}
