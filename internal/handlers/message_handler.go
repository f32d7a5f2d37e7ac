package handlers

import (
	"encoding/json"
	"net/http"

	"mariageBack/internal/models"
	"mariageBack/internal/services"
)

type MessageHandler struct {
	Service *services.MessageService
}

func (h *MessageHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var msg models.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg.ReceiverID == 0 || msg.Text == "" {
		http.Error(w, "receiver_id and text are required", http.StatusBadRequest)
		return
	}
	msg.SenderID = userID

	created, err := h.Service.CreateMessage(r.Context(), msg)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *MessageHandler) GetMessagesForChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chatID, ok := getIntParam(r, "chat_id")
	if !ok {
		http.Error(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}

	messages, err := h.Service.GetMessagesForChat(r.Context(), chatID, userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := getIntParam(r, "id")
	if !ok {
		http.Error(w, "Invalid message ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteMessage(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
