package types

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Age      int     `json:"age" binding:"required,gt=0"`
	Height   float64 `json:"height" binding:"required,gt=0"`
	Gender   string  `json:"gender" binding:"required,oneof=male female other"`
}

// LoginRequest is the payload for an email/password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries optional profile edits. Nil fields are left
// unchanged. Height edits never recompute the BMI of existing logs.
type UpdateProfileRequest struct {
	Name   *string  `json:"name"`
	Age    *int     `json:"age"`
	Height *float64 `json:"height"`
	Gender *string  `json:"gender"`
}

// AddContactRequest is the payload for adding an emergency contact.
type AddContactRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}

// ContactFormRequest is a message from the public contact form.
type ContactFormRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// ChatMessage is one turn of an advisor chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload for the advisor chat endpoint.
type ChatRequest struct {
	Message string        `json:"message" binding:"required"`
	History []ChatMessage `json:"history"`
}

// NearbyRequest asks for nearby medical facilities either around a
// coordinate pair or a free-text location name.
type NearbyRequest struct {
	Type     string   `json:"type" binding:"required,oneof=pharmacy doctor"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Location string   `json:"location"`
}
