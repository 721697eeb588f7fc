package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"taskdeck/internal/apperr"
	"taskdeck/internal/models"
	"taskdeck/internal/token"
)

type AuthService struct {
	users  UserStore
	tokens *token.Manager
}

func NewAuthService(users UserStore, tokens *token.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// AuthResult is what every authentication entry point hands back: the user
// and a freshly signed token pair.
type AuthResult struct {
	User   models.User
	Tokens token.Pair
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (AuthResult, error) {
	if _, err := s.users.UserByEmail(ctx, email); err == nil {
		return AuthResult{}, apperr.Newf(apperr.Conflict, "the email %q is already registered", email)
	} else if !apperr.IsNotFound(err) {
		return AuthResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, apperr.Wrap(apperr.Internal, "hashing password", err)
	}

	// The store enforces email uniqueness too, which closes the race
	// between the lookup above and this insert.
	user, err := s.users.CreateUser(ctx, email, name, string(hash))
	if err != nil {
		return AuthResult{}, err
	}

	return s.issueFor(user)
}

// Login resolves the user by email and checks the password against the
// stored bcrypt hash (a constant-time comparison). An unknown email and a
// wrong password surface as different kinds so the boundary can log them
// apart, even when it renders both the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return AuthResult{}, apperr.New(apperr.Unauthenticated, "invalid password")
	}

	return s.issueFor(user)
}

// Refresh rotates a token pair. The refresh token is verified, its user is
// re-resolved (a deleted user cannot rotate), and a whole new pair comes
// back. The old refresh token is not revoked server-side: possession alone
// grants rotation until natural expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	userID, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return AuthResult{}, err
	}

	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return AuthResult{}, apperr.New(apperr.Unauthenticated, "the token's user no longer exists")
		}
		return AuthResult{}, err
	}

	return s.issueFor(user)
}

// Me returns the profile of the acting user.
func (s *AuthService) Me(ctx context.Context, userID int) (models.User, error) {
	return s.users.UserByID(ctx, userID)
}

func (s *AuthService) issueFor(user models.User) (AuthResult, error) {
	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Tokens: pair}, nil
}
