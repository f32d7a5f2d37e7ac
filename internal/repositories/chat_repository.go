package repositories

import (
	"context"
	"database/sql"
	"errors"

	"mariageBack/internal/models"
)

type ChatRepository struct {
	DB *sql.DB
}

func (r *ChatRepository) CreateChat(ctx context.Context, chat models.Chat) (int, error) {
	var chatID int
	query := `INSERT INTO chats (user1_id, user2_id, created_at) VALUES ($1, $2, NOW()) RETURNING id`
	err := r.DB.QueryRowContext(ctx, query, chat.User1ID, chat.User2ID).Scan(&chatID)
	if err != nil {
		return 0, err
	}
	return chatID, nil
}

// GetChatBetween finds an existing chat regardless of which side opened it.
func (r *ChatRepository) GetChatBetween(ctx context.Context, user1ID, user2ID int) (int, error) {
	var chatID int
	query := `
		SELECT id FROM chats
		WHERE (user1_id = $1 AND user2_id = $2) OR (user1_id = $2 AND user2_id = $1)
	`
	err := r.DB.QueryRowContext(ctx, query, user1ID, user2ID).Scan(&chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return chatID, err
}

func (r *ChatRepository) GetChatByID(ctx context.Context, id int) (models.Chat, error) {
	var chat models.Chat
	query := `
		SELECT c.id,
		       c.user1_id, u1.name, u1.surname,
		       c.user2_id, u2.name, u2.surname,
		       c.created_at
		FROM chats c
		JOIN users u1 ON c.user1_id = u1.id
		JOIN users u2 ON c.user2_id = u2.id
		WHERE c.id = $1
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&chat.ID,
		&chat.User1ID, &chat.User1.Name, &chat.User1.Surname,
		&chat.User2ID, &chat.User2.Name, &chat.User2.Surname,
		&chat.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, models.ErrChatNotFound
	}
	return chat, err
}

func (r *ChatRepository) GetChatsByUser(ctx context.Context, userID int) ([]models.Chat, error) {
	query := `
		SELECT c.id,
		       c.user1_id, u1.name, u1.surname,
		       c.user2_id, u2.name, u2.surname,
		       c.created_at
		FROM chats c
		JOIN users u1 ON c.user1_id = u1.id
		JOIN users u2 ON c.user2_id = u2.id
		WHERE c.user1_id = $1 OR c.user2_id = $1
		ORDER BY c.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chats := []models.Chat{}
	for rows.Next() {
		var chat models.Chat
		err := rows.Scan(
			&chat.ID,
			&chat.User1ID, &chat.User1.Name, &chat.User1.Surname,
			&chat.User2ID, &chat.User2.Name, &chat.User2.Surname,
			&chat.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

func (r *ChatRepository) DeleteChat(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM chats WHERE id = $1`, id)
	return err
}
