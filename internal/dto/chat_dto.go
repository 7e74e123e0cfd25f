package dto

// StartChatRequest opens an AI book talk about a book
type StartChatRequest struct {
	BookID  uint   `json:"book_id" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ContinueChatRequest sends a follow-up message in an existing session
type ContinueChatRequest struct {
	SessionID string `json:"session_id" binding:"required,uuid"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse is the AI reply with the session handle for follow-ups
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}
