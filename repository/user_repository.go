package repository

import (
	"database/sql"
	"go-task-api/logger"
	"go-task-api/model"
)

// IUserRepository defines the contract for user persistence.
type IUserRepository interface {
	Create(user *model.User) error
	GetByEmail(email string) (*model.User, error)
	GetByID(id int) (*model.User, error)
	ExistsByEmail(email string) (bool, error)
	SetRefreshToken(userID int, refreshToken string) error
	Update(user *model.User) error
	Delete(id int) error
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	query := `INSERT INTO users (name, email, password, refresh_token) VALUES ($1, $2, $3, '') RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query, user.Name, user.Email, user.Password).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		logger.Log.WithError(err).WithField("email", user.Email).Error("Failed to execute create user query")
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT id, name, email, password, refresh_token, created_at, updated_at FROM users WHERE email = $1`
	err := r.DB.QueryRow(query, email).Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.RefreshToken, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(id int) (*model.User, error) {
	user := &model.User{}
	query := `SELECT id, name, email, password, refresh_token, created_at, updated_at FROM users WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.RefreshToken, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	if err := r.DB.QueryRow(query, email).Scan(&exists); err != nil {
		logger.Log.WithError(err).WithField("email", email).Error("Failed to execute exists by email query")
		return false, err
	}
	return exists, nil
}

// SetRefreshToken overwrites the user's refresh token slot. An empty value
// clears the active session.
func (r *UserRepository) SetRefreshToken(userID int, refreshToken string) error {
	query := `UPDATE users SET refresh_token = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.DB.Exec(query, refreshToken, userID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to execute set refresh token query")
		return err
	}
	return nil
}

func (r *UserRepository) Update(user *model.User) error {
	query := `UPDATE users SET name = $1, password = $2, updated_at = NOW() WHERE id = $3 RETURNING updated_at`
	err := r.DB.QueryRow(query, user.Name, user.Password, user.ID).Scan(&user.UpdatedAt)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", user.ID).Error("Failed to execute update user query")
		return err
	}
	return nil
}

// Delete removes the user row. Owned tasks are removed by the ON DELETE
// CASCADE constraint.
func (r *UserRepository) Delete(id int) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := r.DB.Exec(query, id)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", id).Error("Failed to execute delete user query")
		return err
	}
	return nil
}
