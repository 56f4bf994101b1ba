package service

import (
	"database/sql"
	"errors"
	"fmt"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/repository"

	"golang.org/x/crypto/bcrypt"
)

// Sentinel errors carry the exact messages the API returns, so handlers can
// map them to status codes with err.Error() as the body message.
var (
	ErrUserExists         = errors.New("Email or nickname already exists")
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

// AuthService handles registration, login, and password hashing.
type AuthService struct {
	userRepo repository.IUserRepository
	tokens   *TokenService
}

func NewAuthService(userRepo repository.IUserRepository, tokens *TokenService) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash distinguishes "wrong password" (false, nil) from
// "verification could not be performed" (false, err). Callers must branch
// on the error before trusting the bool.
func (s *AuthService) CheckPasswordHash(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("could not verify password: %w", err)
}

// Register creates an account and returns it with a freshly signed token.
// The email/nickname existence pre-check is best-effort; the database's
// unique constraints remain the actual guarantee under concurrent requests.
func (s *AuthService) Register(req *model.RegisterRequest) (*model.User, string, error) {
	exists, err := s.userRepo.ExistsByEmailOrNick(req.Email, req.NickName, 0)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrUserExists
	}

	hashed, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashed,
		NickName:  req.NickName,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Sign(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	logger.Log.WithField("user_id", user.ID).Info("User registered")
	return user, token, nil
}

// Login authenticates by email or nickname. Unknown identifiers and wrong
// passwords produce the same ErrInvalidCredentials; operational failures
// pass through unchanged.
func (s *AuthService) Login(identifier, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	ok, err := s.CheckPasswordHash(password, user.Password)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
