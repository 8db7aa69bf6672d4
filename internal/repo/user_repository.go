package repo

import "github.com/andrelima-dev/meuestoque/internal/models"

type UserRepository interface {
	CreateUser(user models.User) (models.User, error)
	GetByUsername(username string) (models.User, error)
	GetByID(id int) (models.User, error)
	UpdateProfile(id int, username string) (models.User, error)
	UpdatePassword(id int, passwordHash string) error
}
