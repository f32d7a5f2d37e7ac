package repositories

import (
	"context"
	"database/sql"

	"mariageBack/internal/models"
)

type MessageRepository struct {
	DB *sql.DB
}

func (r *MessageRepository) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	query := `
INSERT INTO messages (chat_id, sender_id, receiver_id, text, is_read, created_at)
VALUES ($1, $2, $3, $4, FALSE, NOW())
RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		msg.ChatID, msg.SenderID, msg.ReceiverID, msg.Text,
	).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

func (r *MessageRepository) GetMessagesForChat(ctx context.Context, chatID int) ([]models.Message, error) {
	query := `
		SELECT id, chat_id, sender_id, receiver_id, text, is_read, created_at
		FROM messages
		WHERE chat_id = $1
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var msg models.Message
		err := rows.Scan(&msg.ID, &msg.ChatID, &msg.SenderID, &msg.ReceiverID, &msg.Text, &msg.IsRead, &msg.CreatedAt)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *MessageRepository) MarkRead(ctx context.Context, chatID, readerID int) error {
	query := `UPDATE messages SET is_read = TRUE WHERE chat_id = $1 AND receiver_id = $2 AND is_read = FALSE`
	_, err := r.DB.ExecContext(ctx, query, chatID, readerID)
	return err
}

func (r *MessageRepository) DeleteMessage(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	return err
}
