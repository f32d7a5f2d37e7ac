package handlers

import (
	"encoding/json"
	"net/http"

	"mariageBack/internal/models"
	"mariageBack/internal/services"
)

type ChatHandler struct {
	Service *services.ChatService
}

func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var chat models.Chat
	if err := json.NewDecoder(r.Body).Decode(&chat); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	chat.User1ID = userID
	if chat.User2ID == 0 {
		http.Error(w, "Missing user2_id", http.StatusBadRequest)
		return
	}

	id, err := h.Service.CreateChat(r.Context(), chat)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"chat_id": id})
}

func (h *ChatHandler) GetChatByID(w http.ResponseWriter, r *http.Request) {
	id, ok := getIntParam(r, "id")
	if !ok {
		http.Error(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}

	chat, err := h.Service.GetChatByID(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

func (h *ChatHandler) GetMyChats(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chats, err := h.Service.GetChatsByUser(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	id, ok := getIntParam(r, "id")
	if !ok {
		http.Error(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteChat(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
