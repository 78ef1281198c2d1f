package user

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"github.com/aidosqali/vidtube/internal/apperr"
	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/aidosqali/vidtube/internal/pagination"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const maxPasswordLength = 72 // bcrypt limit

// accountStore abstracts the persistence layer.
type accountStore interface {
	Create(ctx context.Context, params CreateParams) (User, error)
	ByCredential(ctx context.Context, login string) (User, error)
	CredentialByID(ctx context.Context, id uuid.UUID) (User, error)
	ByID(ctx context.Context, id uuid.UUID) (User, error)
	ByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context, p pagination.Params) ([]User, int64, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, fullName, email string) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, objectName string) (User, string, error)
	UpdateCoverImage(ctx context.Context, id uuid.UUID, objectName string) (User, string, error)
	ChannelCounts(ctx context.Context, channelID uuid.UUID, viewerID *uuid.UUID) (int64, int64, bool, error)
	WatchHistory(ctx context.Context, userID uuid.UUID) ([]WatchEntry, error)
}

// mediaStore uploads avatar/cover binaries.
type mediaStore interface {
	Upload(ctx context.Context, prefix string, fileHeader *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, objectName string) error
}

// tokenIssuer is the slice of the token service the account flows need.
type tokenIssuer interface {
	IssuePair(ctx context.Context, identity auth.Identity) (auth.TokenPair, error)
	Refresh(ctx context.Context, token string) (auth.Identity, auth.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

// Service encapsulates account and session use cases.
type Service struct {
	store      accountStore
	media      mediaStore
	tokens     tokenIssuer
	bcryptCost int
}

// NewService creates a Service with dependencies.
func NewService(store accountStore, media mediaStore, tokens tokenIssuer, bcryptCost int) *Service {
	return &Service{store: store, media: media, tokens: tokens, bcryptCost: bcryptCost}
}

// RegisterInput carries data for user registration.
type RegisterInput struct {
	Username  string
	Email     string
	FullName  string
	Password  string
	Avatar    *multipart.FileHeader
	CoverFile *multipart.FileHeader
}

// LoginInput carries login credentials; Login may be a username or an email.
type LoginInput struct {
	Login    string
	Password string
}

// SessionResult contains the sanitized user and the issued token pair.
type SessionResult struct {
	User   User           `json:"user"`
	Tokens auth.TokenPair `json:"tokens"`
}

// Register creates a new account, uploads profile images, and opens a session.
func (s *Service) Register(ctx context.Context, input RegisterInput) (SessionResult, error) {
	if err := validateRegistration(input); err != nil {
		return SessionResult{}, err
	}

	passwordHash, err := s.hashPassword(input.Password)
	if err != nil {
		return SessionResult{}, err
	}

	var avatarObject, coverObject string
	if input.Avatar != nil {
		if avatarObject, err = s.media.Upload(ctx, "avatars", input.Avatar); err != nil {
			return SessionResult{}, err
		}
	}
	if input.CoverFile != nil {
		if coverObject, err = s.media.Upload(ctx, "covers", input.CoverFile); err != nil {
			return SessionResult{}, err
		}
	}

	created, err := s.store.Create(ctx, CreateParams{
		Username:      strings.ToLower(strings.TrimSpace(input.Username)),
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		FullName:      strings.TrimSpace(input.FullName),
		AvatarURL:     avatarObject,
		CoverImageURL: coverObject,
		PasswordHash:  passwordHash,
	})
	if err != nil {
		return SessionResult{}, err
	}

	return s.openSession(ctx, created)
}

// Login authenticates credentials and issues a fresh token pair.
func (s *Service) Login(ctx context.Context, input LoginInput) (SessionResult, error) {
	if strings.TrimSpace(input.Login) == "" || input.Password == "" {
		return SessionResult{}, ErrInvalidCredentials
	}

	found, err := s.store.ByCredential(ctx, input.Login)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return SessionResult{}, ErrInvalidCredentials
		}
		return SessionResult{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(input.Password)); err != nil {
		return SessionResult{}, ErrInvalidCredentials
	}

	return s.openSession(ctx, found)
}

// Logout invalidates the user's refresh-token rotation chain.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.tokens.Logout(ctx, userID)
}

// Refresh redeems a refresh token for a rotated pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (SessionResult, error) {
	identity, pair, err := s.tokens.Refresh(ctx, refreshToken)
	if err != nil {
		return SessionResult{}, err
	}

	current, err := s.store.ByID(ctx, identity.ID)
	if err != nil {
		return SessionResult{}, err
	}

	return SessionResult{User: current.Sanitized(), Tokens: pair}, nil
}

// Get returns the sanitized user record.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (User, error) {
	found, err := s.store.ByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	return found.Sanitized(), nil
}

// List returns a page of sanitized users.
func (s *Service) List(ctx context.Context, p pagination.Params) ([]User, pagination.Meta, error) {
	users, total, err := s.store.List(ctx, p)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return users, pagination.NewMeta(total, p), nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if len(newPassword) < 8 || len(newPassword) > maxPasswordLength {
		return apperr.New(apperr.Validation, "password must be between 8 and 72 characters")
	}

	found, err := s.store.CredentialByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}

	newHash, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.store.UpdatePassword(ctx, userID, newHash)
}

// UpdateAccount changes full name and email.
func (s *Service) UpdateAccount(ctx context.Context, userID uuid.UUID, fullName, email string) (User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" || email == "" {
		return User{}, apperr.New(apperr.Validation, "full name and email are required")
	}

	updated, err := s.store.UpdateAccount(ctx, userID, fullName, email)
	if err != nil {
		return User{}, err
	}
	return updated.Sanitized(), nil
}

// UpdateAvatar uploads a replacement avatar and removes the old object.
func (s *Service) UpdateAvatar(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (User, error) {
	return s.updateImage(ctx, userID, "avatars", file, s.store.UpdateAvatar)
}

// UpdateCoverImage uploads a replacement cover and removes the old object.
func (s *Service) UpdateCoverImage(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (User, error) {
	return s.updateImage(ctx, userID, "covers", file, s.store.UpdateCoverImage)
}

func (s *Service) updateImage(ctx context.Context, userID uuid.UUID, prefix string, file *multipart.FileHeader,
	update func(context.Context, uuid.UUID, string) (User, string, error)) (User, error) {

	if file == nil {
		return User{}, apperr.New(apperr.Validation, "image file is required")
	}

	objectName, err := s.media.Upload(ctx, prefix, file)
	if err != nil {
		return User{}, err
	}

	updated, previous, err := update(ctx, userID, objectName)
	if err != nil {
		return User{}, err
	}

	// Removing the replaced object is best-effort cleanup.
	if previous != "" {
		if err := s.media.Remove(ctx, previous); err != nil {
			log.Printf("remove replaced %s object %q: %v", prefix, previous, err)
		}
	}

	return updated.Sanitized(), nil
}

// ChannelProfile resolves a public channel page by username, personalized
// with the viewer's subscription state when one is identified.
func (s *Service) ChannelProfile(ctx context.Context, username string, viewerID *uuid.UUID) (ChannelProfile, error) {
	channel, err := s.store.ByUsername(ctx, username)
	if err != nil {
		return ChannelProfile{}, err
	}

	subscribers, subscribedTo, isSubscribed, err := s.store.ChannelCounts(ctx, channel.ID, viewerID)
	if err != nil {
		return ChannelProfile{}, err
	}

	return ChannelProfile{
		User:              channel.Sanitized(),
		SubscriberCount:   subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
	}, nil
}

// WatchHistory returns the user's watched videos, newest first.
func (s *Service) WatchHistory(ctx context.Context, userID uuid.UUID) ([]WatchEntry, error) {
	return s.store.WatchHistory(ctx, userID)
}

func (s *Service) openSession(ctx context.Context, record User) (SessionResult, error) {
	pair, err := s.tokens.IssuePair(ctx, record.Identity())
	if err != nil {
		return SessionResult{}, fmt.Errorf("issue tokens: %w", err)
	}
	return SessionResult{User: record.Sanitized(), Tokens: pair}, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	if len(password) > maxPasswordLength {
		return "", apperr.New(apperr.Validation, "password exceeds maximum length of 72 characters")
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}

func validateRegistration(input RegisterInput) error {
	switch {
	case strings.TrimSpace(input.Username) == "":
		return apperr.New(apperr.Validation, "username is required")
	case strings.TrimSpace(input.Email) == "":
		return apperr.New(apperr.Validation, "email is required")
	case strings.TrimSpace(input.FullName) == "":
		return apperr.New(apperr.Validation, "full name is required")
	case len(input.Password) < 8 || len(input.Password) > maxPasswordLength:
		return apperr.New(apperr.Validation, "password must be between 8 and 72 characters")
	}
	return nil
}
