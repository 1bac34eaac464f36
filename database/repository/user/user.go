package userRepo

import (
	"urbania/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateTokenHash(id, tokenHash string) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	ListByRole(role string) ([]models.User, error)
}
