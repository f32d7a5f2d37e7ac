package services

import (
	"context"
	"strconv"

	"mariageBack/internal/models"
	"mariageBack/internal/repositories"
)

type MessageService struct {
	MessageRepo *repositories.MessageRepository
	ChatRepo    *repositories.ChatRepository
	Notifier    *NotificationService
}

// CreateMessage persists the message, creating the chat lazily on first
// contact, and pushes a notification to the recipient.
func (s *MessageService) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	if msg.ChatID == 0 {
		chatID, err := s.ChatRepo.GetChatBetween(ctx, msg.SenderID, msg.ReceiverID)
		if err != nil {
			return models.Message{}, err
		}
		if chatID == 0 {
			chatID, err = s.ChatRepo.CreateChat(ctx, models.Chat{User1ID: msg.SenderID, User2ID: msg.ReceiverID})
			if err != nil {
				return models.Message{}, err
			}
		}
		msg.ChatID = chatID
	}

	created, err := s.MessageRepo.CreateMessage(ctx, msg)
	if err != nil {
		return models.Message{}, err
	}

	s.Notifier.SendToUser(ctx, msg.ReceiverID,
		"Nouveau message",
		msg.Text,
		map[string]string{"chat_id": strconv.Itoa(created.ChatID)})
	return created, nil
}

func (s *MessageService) GetMessagesForChat(ctx context.Context, chatID, readerID int) ([]models.Message, error) {
	messages, err := s.MessageRepo.GetMessagesForChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if err := s.MessageRepo.MarkRead(ctx, chatID, readerID); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *MessageService) DeleteMessage(ctx context.Context, id int) error {
	return s.MessageRepo.DeleteMessage(ctx, id)
}
