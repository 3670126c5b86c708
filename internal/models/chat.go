package models

// ChatRequest is the body of POST /chat and POST /company-chat
type ChatRequest struct {
	Question string `json:"question" binding:"required"`
}

// ChatResponse is the reply to POST /chat
type ChatResponse struct {
	Reply          string `json:"reply"`
	ComputedResult any    `json:"computed_result,omitempty"`
}

// CompanyChatResponse is the reply to POST /company-chat
type CompanyChatResponse struct {
	Reply string `json:"reply"`
}
