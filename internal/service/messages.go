package service

import (
	"strings"

	"gorm.io/gorm"

	"github.com/mycare/backend/internal/models"
	"github.com/mycare/backend/internal/types"
)

// MessageService stores contact form submissions.
type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// Submit persists one contact form message.
func (s *MessageService) Submit(req *types.ContactFormRequest) (*models.ContactMessage, error) {
	msg := models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Message: strings.TrimSpace(req.Message),
	}
	if msg.Message == "" {
		return nil, invalidField("message", "must not be empty")
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}
