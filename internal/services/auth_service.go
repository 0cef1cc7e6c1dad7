package services

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"mindcare/internal/models"
	"mindcare/internal/repositories"
	"mindcare/pkg/rabbitmq"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for registration, OTP verification,
// authentication and user lookup.
type AuthService struct {
	userRepo   repositories.UserRepository
	mailer     Mailer
	mqClient   *rabbitmq.Client
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, mailer Mailer, mqClient *rabbitmq.Client, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		mailer:     mailer,
		mqClient:   mqClient,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// generateOTP returns a uniformly random 6-digit code in [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Register creates an unverified user with a hashed password and a fresh OTP,
// then dispatches the OTP by email. Registration does not authenticate: no
// token is issued until the account is verified and logged in.
func (s *AuthService) Register(name, email, password string) error {
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return ErrEmailRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		OTP:      &otp,
	}
	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	// The user row exists even if mail delivery fails; the caller sees a
	// 500 and the account stays unverified.
	if err := s.mailer.SendOTP(email, otp); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	s.publishEvent("user.registered", map[string]interface{}{
		"userID": user.ID,
		"email":  user.Email,
	})
	return nil
}

// VerifyOTP marks the account verified when the submitted code exactly
// matches the stored one. Verification clears the stored OTP, so resubmitting
// the same code afterwards fails with ErrInvalidOTP.
func (s *AuthService) VerifyOTP(email, otp string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user.OTP == nil || *user.OTP != otp {
		return ErrInvalidOTP
	}
	if err := s.userRepo.MarkVerified(email); err != nil {
		return fmt.Errorf("failed to verify user: %w", err)
	}
	return nil
}

// Login authenticates a verified user and returns a signed token plus the
// user record. The check order is fixed: existence, ban state, verification,
// then password. An unverified account is rejected before the password is
// ever compared.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.IsBanned {
		return "", nil, ErrAccountBanned
	}
	if !user.IsVerified {
		return "", nil, ErrNotVerified
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.signToken(jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
	})
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// AdminLogin authenticates an admin user. A missing account and a non-admin
// account fail identically, before any other check runs.
func (s *AuthService) AdminLogin(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil || !user.IsAdmin {
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return "", nil, fmt.Errorf("failed to look up user: %w", err)
		}
		return "", nil, ErrNotAdmin
	}
	if user.IsBanned {
		return "", nil, ErrAccountBanned
	}
	if !user.IsVerified {
		return "", nil, ErrNotVerified
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.signToken(jwt.MapClaims{
		"id":       user.ID,
		"email":    user.Email,
		"is_admin": true,
	})
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetUserByID returns a user by ID.
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetAllUsers returns every registered user.
func (s *AuthService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// SetUserBanned sets or clears the ban flag on a user. Outstanding tokens
// stay valid until their natural expiry; the gate verifies signatures only.
func (s *AuthService) SetUserBanned(id uint, banned bool) error {
	if err := s.userRepo.SetBanned(id, banned); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update ban state: %w", err)
	}
	event := "user.unbanned"
	if banned {
		event = "user.banned"
	}
	s.publishEvent(event, map[string]interface{}{"userID": id})
	return nil
}

// signToken issues an HS256 token with the standard expiry window added to
// the given claims.
func (s *AuthService) signToken(claims jwt.MapClaims) (string, error) {
	claims["exp"] = time.Now().Add(s.tokenDurat).Unix()
	claims["iat"] = time.Now().Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// publishEvent emits a domain event to the message broker. Publishing is
// best-effort: failures are logged and never surface to the caller.
func (s *AuthService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	payload["eventID"] = uuid.New().String()
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish("mindcare", routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
	}
}
