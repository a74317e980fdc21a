package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mycare/backend/internal/models"
	"github.com/mycare/backend/internal/types"
)

// ProfileService reads and edits user profiles.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Get returns one user's profile.
func (s *ProfileService) Get(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update applies the non-nil fields of req. A height change takes effect
// for future health logs only; stored BMI values are never recomputed.
func (s *ProfileService) Update(userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalidField("name", "must not be empty")
		}
		user.Name = name
	}
	if req.Age != nil {
		if *req.Age <= 0 {
			return nil, invalidField("age", "must be positive")
		}
		user.Age = *req.Age
	}
	if req.Height != nil {
		if *req.Height <= 0 {
			return nil, invalidField("height", "must be positive")
		}
		user.HeightCm = *req.Height
	}
	if req.Gender != nil {
		switch *req.Gender {
		case "male", "female", "other":
		default:
			return nil, invalidField("gender", "must be male, female or other")
		}
		user.Gender = *req.Gender
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
