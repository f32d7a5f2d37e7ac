package models

import "time"

type Chat struct {
	ID      int `json:"id"`
	User1ID int `json:"user1_id"`
	User2ID int `json:"user2_id"`
	User1   struct {
		Name    string `json:"name"`
		Surname string `json:"surname"`
	} `json:"user1"`
	User2 struct {
		Name    string `json:"name"`
		Surname string `json:"surname"`
	} `json:"user2"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID         int       `json:"id"`
	ChatID     int       `json:"chat_id"`
	SenderID   int       `json:"sender_id"`
	ReceiverID int       `json:"receiver_id"`
	Text       string    `json:"text"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}
