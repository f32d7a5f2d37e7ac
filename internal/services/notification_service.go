package services

import (
	"context"
	"log"

	"firebase.google.com/go/messaging"

	"mariageBack/internal/repositories"
)

// NotificationService pushes FCM notifications to a user's registered
// devices. Everything is best effort: push failures are logged and never
// bubble up into the calling workflow.
type NotificationService struct {
	Client   *messaging.Client
	UserRepo *repositories.UserRepository
}

func (s *NotificationService) SendToUser(ctx context.Context, userID int, title, body string, data map[string]string) {
	if s == nil || s.Client == nil {
		return
	}
	tokens, err := s.UserRepo.GetDeviceTokens(ctx, userID)
	if err != nil {
		log.Printf("notification: failed to load tokens for user %d: %v", userID, err)
		return
	}

	for _, token := range tokens {
		message := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
			Android: &messaging.AndroidConfig{
				Priority: "high",
			},
		}
		if _, err := s.Client.Send(ctx, message); err != nil {
			log.Printf("notification: send to user %d failed: %v", userID, err)
		}
	}
}
