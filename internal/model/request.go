package model

// CommandRequest is the body of POST /api/v1/commands.
type CommandRequest struct {
	Input string `json:"input" binding:"required,max=2000"`
}
