// Package auth verifies Google ID tokens and maps them to internal users.
package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ahorify-go-be/models"
)

// ErrInvalidToken is returned for tokens that fail verification or lack
// the required claims.
var ErrInvalidToken = errors.New("auth: invalid google token")

// Identity is the subset of token claims the backend cares about.
type Identity struct {
	GoogleID string
	Email    string
}

// Service resolves external Google identities to internal user records.
type Service struct {
	db       *gorm.DB
	clientID string
	log      zerolog.Logger
}

// NewService creates an auth service. When clientID is empty the service
// runs in development mode and decodes tokens without verifying them.
func NewService(db *gorm.DB, clientID string, log zerolog.Logger) *Service {
	return &Service{db: db, clientID: clientID, log: log}
}

// VerifyToken validates a Google ID token and extracts its identity.
func (s *Service) VerifyToken(ctx context.Context, token string) (Identity, error) {
	if s.clientID == "" {
		s.log.Warn().Msg("GOOGLE_CLIENT_ID not configured, decoding token without verification")
		return decodeUnverified(token)
	}

	payload, err := idtoken.Validate(ctx, token, s.clientID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return Identity{}, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, payload.Issuer)
	}

	email, _ := payload.Claims["email"].(string)
	return identityFrom(payload.Subject, email)
}

// Authenticate verifies the token and returns the matching user, creating
// one on first sight. The second return reports whether the user is new.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, bool, error) {
	identity, err := s.VerifyToken(ctx, token)
	if err != nil {
		return nil, false, err
	}
	return s.GetOrCreateUser(identity)
}

// GetOrCreateUser upserts the user for a verified identity. The insert is
// atomic (ON CONFLICT DO NOTHING on google_id) so concurrent first-time
// sign-ins cannot race into duplicate rows.
func (s *Service) GetOrCreateUser(identity Identity) (*models.User, bool, error) {
	var user models.User
	err := s.db.First(&user, "google_id = ?", identity.GoogleID).Error
	if err == nil {
		// Refresh the email in case it changed on Google's side.
		if user.Email != identity.Email {
			user.Email = identity.Email
			if err := s.db.Save(&user).Error; err != nil {
				return nil, false, fmt.Errorf("update user email: %w", err)
			}
		}
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("load user: %w", err)
	}

	created := models.User{
		GoogleID: identity.GoogleID,
		Email:    identity.Email,
		AuryTone: "sarcastic",
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "google_id"}},
		DoNothing: true,
	}).Create(&created).Error
	if err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}

	// Re-read: the conflict path means another request created the row.
	if err := s.db.First(&user, "google_id = ?", identity.GoogleID).Error; err != nil {
		return nil, false, fmt.Errorf("load user after create: %w", err)
	}
	isNew := user.ID == created.ID
	if isNew {
		s.log.Info().Str("email", user.Email).Str("google_id", user.GoogleID).Msg("new user created")
	}
	return &user, isNew, nil
}

// GetUserByGoogleID fetches a user without creating one. Returns
// gorm.ErrRecordNotFound when absent.
func (s *Service) GetUserByGoogleID(googleID string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "google_id = ?", googleID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// decodeUnverified splits the JWT and reads sub/email from the payload
// without checking the signature. Development mode only.
func decodeUnverified(token string) (Identity, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Identity{}, fmt.Errorf("%w: not a JWT", ErrInvalidToken)
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Identity{}, fmt.Errorf("%w: bad payload encoding", ErrInvalidToken)
	}
	var claims struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &claims); err != nil {
		return Identity{}, fmt.Errorf("%w: bad payload json", ErrInvalidToken)
	}
	return identityFrom(claims.Sub, claims.Email)
}

func identityFrom(sub, email string) (Identity, error) {
	if sub == "" {
		return Identity{}, fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}
	if email == "" {
		return Identity{}, fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}
	return Identity{GoogleID: sub, Email: email}, nil
}
