package services

import (
	"context"

	"mariageBack/internal/models"
	"mariageBack/internal/repositories"
)

type ChatService struct {
	ChatRepo *repositories.ChatRepository
}

// CreateChat reuses an existing chat between the two users when one exists.
func (s *ChatService) CreateChat(ctx context.Context, chat models.Chat) (int, error) {
	existing, err := s.ChatRepo.GetChatBetween(ctx, chat.User1ID, chat.User2ID)
	if err != nil {
		return 0, err
	}
	if existing != 0 {
		return existing, nil
	}
	return s.ChatRepo.CreateChat(ctx, chat)
}

func (s *ChatService) GetChatByID(ctx context.Context, id int) (models.Chat, error) {
	return s.ChatRepo.GetChatByID(ctx, id)
}

func (s *ChatService) GetChatsByUser(ctx context.Context, userID int) ([]models.Chat, error) {
	return s.ChatRepo.GetChatsByUser(ctx, userID)
}

func (s *ChatService) DeleteChat(ctx context.Context, id int) error {
	return s.ChatRepo.DeleteChat(ctx, id)
}
