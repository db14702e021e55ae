package dto

type ChatRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Query  string `json:"query"`
}

type ChatResponse struct {
	Answer             string   `json:"answer"`
	Sources            []string `json:"sources"`
	SuggestedFollowups []string `json:"suggested_followups"`
}
