package video

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

func newTestService() (*Service, *fakeVideoStore, *fakeMediaStore, *fakeCleaner, *fakeHistory) {
	store := newFakeVideoStore()
	media := &fakeMediaStore{}
	likes := &fakeCleaner{}
	comments := &fakeCleaner{}
	history := &fakeHistory{}
	return NewService(store, media, likes, comments, history), store, media, likes, history
}

func TestPublishValidation(t *testing.T) {
	service, store, _, _, _ := newTestService()
	owner := auth.Identity{ID: uuid.New(), Username: "chai"}
	file := buildFileHeader(t, "videoFile", "clip.mp4", []byte("mp4"))

	cases := []PublishInput{
		{Description: "d", VideoFile: file, Thumbnail: file},
		{Title: "t", VideoFile: file, Thumbnail: file},
		{Title: "t", Description: "d", Thumbnail: file},
		{Title: "t", Description: "d", VideoFile: file},
	}
	for i, input := range cases {
		if _, err := service.Publish(context.Background(), owner, input); !apperr.IsKind(err, apperr.Validation) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
	if len(store.videos) != 0 {
		t.Fatalf("expected no videos created from rejected inputs")
	}
}

func TestPublishStoresObjectsAndRecord(t *testing.T) {
	service, store, media, _, _ := newTestService()
	owner := auth.Identity{ID: uuid.New(), Username: "chai"}

	created, err := service.Publish(context.Background(), owner, PublishInput{
		Title:       "Go worker pools",
		Description: "patterns that hold up",
		Duration:    "312.5",
		VideoFile:   buildFileHeader(t, "videoFile", "clip.mp4", []byte("mp4")),
		Thumbnail:   buildFileHeader(t, "thumbnail", "thumb.png", []byte("png")),
	})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	if created.DurationSeconds != 312.5 {
		t.Fatalf("expected parsed duration 312.5, got %v", created.DurationSeconds)
	}
	if created.Owner.ID != owner.ID {
		t.Fatalf("expected owner set on the record")
	}
	if len(media.uploads) != 2 {
		t.Fatalf("expected video and thumbnail uploaded, got %d uploads", len(media.uploads))
	}
	if len(store.videos) != 1 {
		t.Fatalf("expected one stored video, got %d", len(store.videos))
	}
}

func TestPublishCleansUpOnCreateFailure(t *testing.T) {
	service, store, media, _, _ := newTestService()
	store.createErr = apperr.New(apperr.Internal, "insert failed")
	owner := auth.Identity{ID: uuid.New()}

	_, err := service.Publish(context.Background(), owner, PublishInput{
		Title:       "t",
		Description: "d",
		VideoFile:   buildFileHeader(t, "videoFile", "clip.mp4", []byte("mp4")),
		Thumbnail:   buildFileHeader(t, "thumbnail", "thumb.png", []byte("png")),
	})
	if err == nil {
		t.Fatalf("expected create error to propagate")
	}
	if len(media.removed) != 2 {
		t.Fatalf("expected both uploaded objects removed, got %v", media.removed)
	}
}

func TestGetBumpsViewsAndRecordsHistory(t *testing.T) {
	service, store, _, _, history := newTestService()
	ownerID := uuid.New()
	stored := store.add(ownerID, "clip", true)

	viewer := &auth.Identity{ID: uuid.New()}
	detail, err := service.Get(context.Background(), stored.ID, viewer)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	if detail.Views != stored.Views+1 {
		t.Fatalf("expected view counter bumped, got %d", detail.Views)
	}
	if len(history.entries) != 1 || history.entries[0] != viewer.ID {
		t.Fatalf("expected one watch history entry for the viewer")
	}

	// Anonymous playback bumps views but records nothing.
	if _, err := service.Get(context.Background(), stored.ID, nil); err != nil {
		t.Fatalf("Get returned error for anonymous viewer: %v", err)
	}
	if len(history.entries) != 1 {
		t.Fatalf("expected no history entry for anonymous playback")
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	service, store, media, likes, _ := newTestService()
	ownerID := uuid.New()
	stored := store.add(ownerID, "clip", true)

	stranger := auth.Identity{ID: uuid.New()}
	if err := service.Delete(context.Background(), stranger, stored.ID); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner for stranger, got %v", err)
	}
	if len(store.videos) != 1 {
		t.Fatalf("expected video untouched after rejected delete")
	}

	owner := auth.Identity{ID: ownerID}
	if err := service.Delete(context.Background(), owner, stored.ID); err != nil {
		t.Fatalf("Delete returned error for owner: %v", err)
	}
	if len(store.videos) != 0 {
		t.Fatalf("expected video removed")
	}
	if likes.deleted != 1 {
		t.Fatalf("expected like cleanup to run")
	}
	if len(media.removed) != 2 {
		t.Fatalf("expected media objects removed, got %v", media.removed)
	}
}

func TestTogglePublish(t *testing.T) {
	service, store, _, _, _ := newTestService()
	ownerID := uuid.New()
	stored := store.add(ownerID, "clip", true)
	owner := auth.Identity{ID: ownerID}

	state, err := service.TogglePublish(context.Background(), owner, stored.ID)
	if err != nil {
		t.Fatalf("TogglePublish returned error: %v", err)
	}
	if state {
		t.Fatalf("expected publish state flipped to false")
	}

	state, err = service.TogglePublish(context.Background(), owner, stored.ID)
	if err != nil {
		t.Fatalf("TogglePublish returned error: %v", err)
	}
	if !state {
		t.Fatalf("expected publish state flipped back to true")
	}

	if _, err := service.TogglePublish(context.Background(), auth.Identity{ID: uuid.New()}, stored.ID); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner for stranger, got %v", err)
	}
}

func TestUpdateKeepsFieldsWhenBlank(t *testing.T) {
	service, store, _, _, _ := newTestService()
	ownerID := uuid.New()
	stored := store.add(ownerID, "original title", true)

	updated, err := service.Update(context.Background(), auth.Identity{ID: ownerID}, stored.ID, UpdateInput{
		Description: "fresh description",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "original title" {
		t.Fatalf("expected blank title to keep the stored value, got %q", updated.Title)
	}
	if updated.Description != "fresh description" {
		t.Fatalf("expected description updated, got %q", updated.Description)
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

type fakeVideoStore struct {
	videos    map[uuid.UUID]Video
	createErr error
}

func newFakeVideoStore() *fakeVideoStore {
	return &fakeVideoStore{videos: make(map[uuid.UUID]Video)}
}

func (f *fakeVideoStore) add(ownerID uuid.UUID, title string, published bool) Video {
	v := Video{
		ID:              uuid.New(),
		Owner:           OwnerSummary{ID: ownerID, Username: "owner"},
		Title:           title,
		Description:     "description",
		ObjectName:      "videos/" + uuid.NewString(),
		ThumbnailObject: "thumbnails/" + uuid.NewString(),
		Views:           4,
		IsPublished:     published,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	f.videos[v.ID] = v
	return v
}

func (f *fakeVideoStore) Create(ctx context.Context, params CreateParams) (Video, error) {
	if f.createErr != nil {
		return Video{}, f.createErr
	}
	v := Video{
		ID:              uuid.New(),
		Owner:           OwnerSummary{ID: params.OwnerID},
		Title:           params.Title,
		Description:     params.Description,
		ObjectName:      params.ObjectName,
		ThumbnailObject: params.ThumbnailObject,
		DurationSeconds: params.DurationSeconds,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	f.videos[v.ID] = v
	return v, nil
}

func (f *fakeVideoStore) ByID(ctx context.Context, id uuid.UUID) (Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return Video{}, ErrVideoNotFound
	}
	return v, nil
}

func (f *fakeVideoStore) IncrementViews(ctx context.Context, id uuid.UUID) (Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return Video{}, ErrVideoNotFound
	}
	v.Views++
	f.videos[id] = v
	return v, nil
}

func (f *fakeVideoStore) List(ctx context.Context, filter ListFilter, p pagination.Params) ([]Video, int64, error) {
	var list []Video
	for _, v := range f.videos {
		if !v.IsPublished && !filter.IncludeUnpublished {
			continue
		}
		list = append(list, v)
	}
	return list, int64(len(list)), nil
}

func (f *fakeVideoStore) Update(ctx context.Context, id uuid.UUID, title, description string, thumbnailObject *string) (Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return Video{}, ErrVideoNotFound
	}
	v.Title = title
	v.Description = description
	if thumbnailObject != nil {
		v.ThumbnailObject = *thumbnailObject
	}
	f.videos[id] = v
	return v, nil
}

func (f *fakeVideoStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.videos[id]; !ok {
		return ErrVideoNotFound
	}
	delete(f.videos, id)
	return nil
}

func (f *fakeVideoStore) TogglePublish(ctx context.Context, id uuid.UUID) (bool, error) {
	v, ok := f.videos[id]
	if !ok {
		return false, ErrVideoNotFound
	}
	v.IsPublished = !v.IsPublished
	f.videos[id] = v
	return v.IsPublished, nil
}

func (f *fakeVideoStore) Engagement(ctx context.Context, videoID, ownerID uuid.UUID, viewerID *uuid.UUID) (int64, bool, bool, error) {
	return 0, false, false, nil
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

type fakeCleaner struct {
	deleted int
}

func (f *fakeCleaner) DeleteByVideo(ctx context.Context, videoID uuid.UUID) error {
	f.deleted++
	return nil
}

type fakeHistory struct {
	entries []uuid.UUID
}

func (f *fakeHistory) AddWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	f.entries = append(f.entries, userID)
	return nil
}
