package services

import (
	"errors"
	"regexp"
	"strings"

	"grokmemehub/app/models"
	"grokmemehub/app/repo"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// sanitize trims whitespace and strips angle brackets from user-supplied
// identity fields before they are stored or matched.
func sanitize(in string) string {
	return strings.NewReplacer("<", "", ">", "").Replace(strings.TrimSpace(in))
}

type UserService struct{ users *repo.UserRepository }

func NewUserService(users *repo.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Register(username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, invalid("All fields are required")
	}
	if len(username) < 3 {
		return nil, invalid("Username must be at least 3 characters")
	}
	if !emailRe.MatchString(email) {
		return nil, invalid("Invalid email format")
	}
	if len(password) < 6 {
		return nil, invalid("Password must be at least 6 characters")
	}

	cleanUsername := sanitize(username)
	cleanEmail := strings.ToLower(sanitize(email))

	count, err := s.users.CountByUsernameOrEmail(cleanUsername, cleanEmail)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{Username: cleanUsername, Email: cleanEmail, PasswordHash: string(hash)}
	if err := s.users.Create(u); err != nil {
		// The unique indexes win any race the pre-check misses.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	cleanEmail := strings.ToLower(sanitize(email))
	u, err := s.users.FindByEmail(cleanEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// UpdateLocation validates coordinate ranges here, at the write boundary;
// the distance calculator assumes its inputs are already in range.
func (s *UserService) UpdateLocation(userID uint, lat, long float64) error {
	if lat < -90 || lat > 90 || long < -180 || long > 180 {
		return invalid("Invalid coordinates")
	}
	return s.users.UpdateLocation(userID, lat, long)
}

func (s *UserService) Get(userID uint) (*models.User, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
