package http

type chatReq struct {
	// SessionID groups messages into one conversation. Omit it to start
	// a fresh conversation.
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

type chatResp struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}
