package services

import (
	"context"
	"fmt"

	"todolist/internal/db"
	"todolist/internal/db/models"
	"todolist/internal/logging"
)

// UserRepository is the persistence surface UserService needs.
// *db.DB satisfies it.
type UserRepository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string, excludeID int64) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
}

// UserInput carries the writable user fields from a request.
type UserInput struct {
	Name   string
	Email  string
	Active bool
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// List returns all users, deactivated ones included.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByID finds the user or fails with NotFoundError.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, &NotFoundError{Entity: "User", ID: id}
	}
	return user, nil
}

// Create adds a new user, rejecting emails already in use regardless
// of case.
func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	if err := s.verifyUserEmailAlreadyExists(ctx, in.Email, 0); err != nil {
		return nil, err
	}

	user := &models.User{
		Name:   in.Name,
		Email:  in.Email,
		Active: in.Active,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, userEmailInUse(in.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logging.Logger.Infof("Created user %d (%s)", user.ID, user.Email)
	return user, nil
}

// Update overwrites an existing user's fields. The target must exist
// and the email must not belong to a different user.
func (s *UserService) Update(ctx context.Context, id int64, in UserInput) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.verifyUserEmailAlreadyExists(ctx, in.Email, id); err != nil {
		return nil, err
	}

	user.Name = in.Name
	user.Email = in.Email
	user.Active = in.Active
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, userEmailInUse(in.Email)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete deactivates the user instead of removing the row; the record
// stays retrievable with active=false.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	user.Active = false
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	logging.Logger.Infof("Deactivated user %d (%s)", user.ID, user.Email)
	return nil
}

func (s *UserService) verifyUserEmailAlreadyExists(ctx context.Context, email string, excludeID int64) error {
	existing, err := s.repo.GetUserByEmail(ctx, email, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check user email: %w", err)
	}
	if existing != nil {
		return userEmailInUse(email)
	}
	return nil
}

func userEmailInUse(email string) error {
	return &AlreadyExistsError{Message: fmt.Sprintf("This user email '%s' is already in use!", email)}
}
