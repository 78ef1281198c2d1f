package user

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aidosqali/vidtube/internal/apperr"
	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/aidosqali/vidtube/internal/pagination"
	"github.com/google/uuid"
)

func newTestService(store *fakeAccountStore) (*Service, *fakeMediaStore, *fakeTokenIssuer) {
	media := &fakeMediaStore{}
	tokens := &fakeTokenIssuer{}
	return NewService(store, media, tokens, 4), media, tokens
}

func TestRegisterSuccess(t *testing.T) {
	store := newFakeAccountStore()
	service, media, _ := newTestService(store)

	avatar := buildFileHeader(t, "avatar", "me.png", []byte("png-bytes"))
	result, err := service.Register(context.Background(), RegisterInput{
		Username: "  Chai  ",
		Email:    "Chai@Example.com",
		FullName: "Chai Aur Code",
		Password: "StrongPass1!",
		Avatar:   avatar,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if result.User.PasswordHash != "" || result.User.RefreshTokenHash != "" {
		t.Fatalf("expected sanitized user in session result")
	}
	if result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Fatalf("expected tokens to be issued")
	}
	if len(media.uploads) != 1 {
		t.Fatalf("expected one media upload, got %d", len(media.uploads))
	}

	stored := store.users[result.User.ID]
	if stored.Username != "chai" || stored.Email != "chai@example.com" {
		t.Fatalf("expected lowercased identifiers, got %q / %q", stored.Username, stored.Email)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "StrongPass1!" {
		t.Fatalf("expected password stored as a hash")
	}
}

func TestRegisterValidation(t *testing.T) {
	store := newFakeAccountStore()
	service, _, _ := newTestService(store)

	cases := []RegisterInput{
		{Email: "a@b.com", FullName: "A", Password: "StrongPass1!"},
		{Username: "a", FullName: "A", Password: "StrongPass1!"},
		{Username: "a", Email: "a@b.com", Password: "StrongPass1!"},
		{Username: "a", Email: "a@b.com", FullName: "A", Password: "short"},
	}
	for i, input := range cases {
		_, err := service.Register(context.Background(), input)
		if !apperr.IsKind(err, apperr.Validation) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
	if len(store.users) != 0 {
		t.Fatalf("expected no users stored after rejected inputs")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeAccountStore()
	service, _, _ := newTestService(store)

	if _, err := service.Register(context.Background(), RegisterInput{
		Username: "chai", Email: "chai@example.com", FullName: "Chai", Password: "StrongPass1!",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if _, err := service.Login(context.Background(), LoginInput{Login: "chai", Password: "WrongPass!"}); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Login(context.Background(), LoginInput{Login: "nobody", Password: "whatever1"}); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown login, got %v", err)
	}

	if _, err := service.Login(context.Background(), LoginInput{Login: "chai", Password: "StrongPass1!"}); err != nil {
		t.Fatalf("expected login with correct password, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	store := newFakeAccountStore()
	service, _, _ := newTestService(store)

	result, err := service.Register(context.Background(), RegisterInput{
		Username: "chai", Email: "chai@example.com", FullName: "Chai", Password: "StrongPass1!",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	userID := result.User.ID

	if err := service.ChangePassword(context.Background(), userID, "guessed-wrong", "NewStrong2!"); err != ErrWrongPassword {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if err := service.ChangePassword(context.Background(), userID, "StrongPass1!", "short"); !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}

	if err := service.ChangePassword(context.Background(), userID, "StrongPass1!", "NewStrong2!"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if _, err := service.Login(context.Background(), LoginInput{Login: "chai", Password: "NewStrong2!"}); err != nil {
		t.Fatalf("expected login with the new password, got %v", err)
	}
}

func TestUpdateAvatarRemovesPreviousObject(t *testing.T) {
	store := newFakeAccountStore()
	service, media, _ := newTestService(store)

	result, err := service.Register(context.Background(), RegisterInput{
		Username: "chai", Email: "chai@example.com", FullName: "Chai", Password: "StrongPass1!",
		Avatar: buildFileHeader(t, "avatar", "old.png", []byte("old")),
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	updated, err := service.UpdateAvatar(context.Background(), result.User.ID,
		buildFileHeader(t, "avatar", "new.png", []byte("new")))
	if err != nil {
		t.Fatalf("UpdateAvatar returned error: %v", err)
	}

	if updated.AvatarURL == result.User.AvatarURL {
		t.Fatalf("expected avatar object to change")
	}
	if len(media.removed) != 1 || media.removed[0] != result.User.AvatarURL {
		t.Fatalf("expected previous avatar object removed, got %v", media.removed)
	}
}

func TestListSanitizesUsers(t *testing.T) {
	store := newFakeAccountStore()
	service, _, _ := newTestService(store)

	for _, name := range []string{"a", "b", "c"} {
		if _, err := service.Register(context.Background(), RegisterInput{
			Username: name, Email: name + "@example.com", FullName: name, Password: "StrongPass1!",
		}); err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
	}

	users, meta, err := service.List(context.Background(), pagination.Params{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users on the first page, got %d", len(users))
	}
	if meta.Total != 3 || meta.TotalPages != 2 {
		t.Fatalf("unexpected pagination meta: %+v", meta)
	}
	for _, u := range users {
		if u.PasswordHash != "" || u.RefreshTokenHash != "" {
			t.Fatalf("expected sanitized listing")
		}
	}
}

// --- helpers & fakes ---

func buildFileHeader(t *testing.T, fieldName, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		t.Fatalf("CreateFormFile error: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(int64(len(content)) + 1024); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}

	return req.MultipartForm.File[fieldName][0]
}

type fakeAccountStore struct {
	users map[uuid.UUID]User
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{users: make(map[uuid.UUID]User)}
}

func (f *fakeAccountStore) Create(ctx context.Context, params CreateParams) (User, error) {
	for _, existing := range f.users {
		if existing.Username == params.Username {
			return User{}, ErrUsernameTaken
		}
		if existing.Email == params.Email {
			return User{}, ErrEmailTaken
		}
	}
	user := User{
		ID:            uuid.New(),
		Username:      params.Username,
		Email:         params.Email,
		FullName:      params.FullName,
		AvatarURL:     params.AvatarURL,
		CoverImageURL: params.CoverImageURL,
		Role:          auth.RoleUser,
		PasswordHash:  params.PasswordHash,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeAccountStore) ByCredential(ctx context.Context, login string) (User, error) {
	for _, u := range f.users {
		if u.Username == login || u.Email == login {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (f *fakeAccountStore) CredentialByID(ctx context.Context, id uuid.UUID) (User, error) {
	return f.ByID(ctx, id)
}

func (f *fakeAccountStore) ByID(ctx context.Context, id uuid.UUID) (User, error) {
	u, ok := f.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeAccountStore) ByUsername(ctx context.Context, username string) (User, error) {
	return f.ByCredential(ctx, username)
}

func (f *fakeAccountStore) List(ctx context.Context, p pagination.Params) ([]User, int64, error) {
	all := make([]User, 0, len(f.users))
	for _, u := range f.users {
		all = append(all, u)
	}
	total := int64(len(all))
	start := p.Offset()
	if start > len(all) {
		return nil, total, nil
	}
	end := start + p.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeAccountStore) UpdateAccount(ctx context.Context, id uuid.UUID, fullName, email string) (User, error) {
	u, ok := f.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	u.FullName = fullName
	u.Email = email
	f.users[id] = u
	return u, nil
}

func (f *fakeAccountStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	f.users[id] = u
	return nil
}

func (f *fakeAccountStore) UpdateAvatar(ctx context.Context, id uuid.UUID, objectName string) (User, string, error) {
	u, ok := f.users[id]
	if !ok {
		return User{}, "", ErrUserNotFound
	}
	previous := u.AvatarURL
	u.AvatarURL = objectName
	f.users[id] = u
	return u, previous, nil
}

func (f *fakeAccountStore) UpdateCoverImage(ctx context.Context, id uuid.UUID, objectName string) (User, string, error) {
	u, ok := f.users[id]
	if !ok {
		return User{}, "", ErrUserNotFound
	}
	previous := u.CoverImageURL
	u.CoverImageURL = objectName
	f.users[id] = u
	return u, previous, nil
}

func (f *fakeAccountStore) ChannelCounts(ctx context.Context, channelID uuid.UUID, viewerID *uuid.UUID) (int64, int64, bool, error) {
	return 0, 0, false, nil
}

func (f *fakeAccountStore) WatchHistory(ctx context.Context, userID uuid.UUID) ([]WatchEntry, error) {
	return nil, nil
}

type fakeMediaStore struct {
	uploads []string
	removed []string
}

func (f *fakeMediaStore) Upload(ctx context.Context, prefix string, fileHeader *multipart.FileHeader) (string, error) {
	objectName := prefix + "/" + uuid.NewString()
	f.uploads = append(f.uploads, objectName)
	return objectName, nil
}

func (f *fakeMediaStore) Remove(ctx context.Context, objectName string) error {
	f.removed = append(f.removed, objectName)
	return nil
}

type fakeTokenIssuer struct {
	loggedOut []uuid.UUID
}

func (f *fakeTokenIssuer) IssuePair(ctx context.Context, identity auth.Identity) (auth.TokenPair, error) {
	return auth.TokenPair{
		AccessToken:        "access-" + identity.ID.String(),
		AccessTokenExpiry:  time.Now().Add(time.Minute),
		RefreshToken:       "refresh-" + identity.ID.String(),
		RefreshTokenExpiry: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeTokenIssuer) Refresh(ctx context.Context, token string) (auth.Identity, auth.TokenPair, error) {
	return auth.Identity{}, auth.TokenPair{}, auth.ErrInvalidToken
}

func (f *fakeTokenIssuer) Logout(ctx context.Context, userID uuid.UUID) error {
	f.loggedOut = append(f.loggedOut, userID)
	return nil
}
