package services

import (
	"errors"
	"fmt"

	"weatherapi/internal/models"
	"weatherapi/internal/repositories"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, login and CRUD on users.
type UserService struct {
	userRepo repositories.UserRepository
	hasher   PasswordHasher
	tokens   *TokenService
	events   EventPublisher // optional
	validate *validator.Validate
}

// NewUserService creates a new UserService. events may be nil.
func NewUserService(userRepo repositories.UserRepository, hasher PasswordHasher, tokens *TokenService, events EventPublisher) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		events:   events,
		validate: newValidator(),
	}
}

// Register creates a user and mints a token for it.
func (s *UserService) Register(input models.RegisterInput) (*models.User, string, error) {
	user, err := s.createUser(input)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	publishUserEvent(s.events, models.UserRegistered, user)
	return user, token, nil
}

// Create is the administrative creation path: same rules as Register, no token.
func (s *UserService) Create(input models.RegisterInput) (*models.User, error) {
	user, err := s.createUser(input)
	if err != nil {
		return nil, err
	}
	publishUserEvent(s.events, models.UserCreated, user)
	return user, nil
}

func (s *UserService) createUser(input models.RegisterInput) (*models.User, error) {
	if err := validateFirst(s.validate, input); err != nil {
		return nil, err
	}
	if err := s.ensureEmailAvailable(input.Email, ""); err != nil {
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, &ValidationError{Field: "password", Message: "The password may not be greater than 72 bytes."}
		}
		return nil, err
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		City:     input.City,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, emailTakenError()
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login authenticates a user by email and password and returns a JWT token if successful.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(input models.LoginInput) (*models.User, string, error) {
	if err := validateFirst(s.validate, input); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.GetByEmail(input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	if !s.hasher.Verify(input.Password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// List retrieves all users.
func (s *UserService) List() ([]models.User, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Get retrieves a single user by ID.
func (s *UserService) Get(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

// Update changes the name, email and city of the user identified by id.
// Checks run in order: existence, ownership, validation, email uniqueness.
func (s *UserService) Update(actorID, id string, input models.UpdateUserInput) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !CanMutate(actorID, user.ID) {
		return nil, &ForbiddenError{Action: "update"}
	}
	if err := validateFirst(s.validate, input); err != nil {
		return nil, err
	}
	if err := s.ensureEmailAvailable(input.Email, user.ID); err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Email = input.Email
	user.City = input.City
	if err := s.userRepo.Update(user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmailTaken):
			return nil, emailTakenError()
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	publishUserEvent(s.events, models.UserUpdated, user)
	return user, nil
}

// Delete permanently removes the user identified by id.
// Existence is checked before ownership.
func (s *UserService) Delete(actorID, id string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if !CanMutate(actorID, user.ID) {
		return &ForbiddenError{Action: "delete"}
	}

	if err := s.userRepo.Delete(user.ID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	publishUserEvent(s.events, models.UserDeleted, user)
	return nil
}

// ensureEmailAvailable fails when email belongs to a user other than exceptID.
func (s *UserService) ensureEmailAvailable(email, exceptID string) error {
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing.ID != exceptID {
		return emailTakenError()
	}
	return nil
}
