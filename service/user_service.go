package service

import (
	"database/sql"
	"errors"
	"go-task-api/model"
	"go-task-api/repository"
)

// IUserService defines the contract for user account operations.
type IUserService interface {
	GetByID(id int) (*model.User, error)
	Update(userID int, req model.UpdateUserRequest) (*model.User, error)
	Delete(userID int) error
}

// UserService handles user-related business logic.
type UserService struct {
	users repository.IUserRepository
}

func NewUserService(users repository.IUserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetByID(id int) (*model.User, error) {
	if id <= 0 {
		return nil, ErrUserNotFound
	}
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update applies a partial update. A new password is re-hashed before it is
// persisted.
func (s *UserService) Update(userID int, req model.UpdateUserRequest) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hashedPassword, err := HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}

	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account. Owned tasks go with it through the cascading
// foreign key.
func (s *UserService) Delete(userID int) error {
	user, err := s.GetByID(userID)
	if err != nil {
		return err
	}
	return s.users.Delete(user.ID)
}
