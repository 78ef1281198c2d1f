package comment

import (
	"context"
	"testing"
	"time"

	"github.com/aidosqali/vidtube/internal/apperr"
	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/aidosqali/vidtube/internal/pagination"
	"github.com/google/uuid"
)

func TestAddRequiresContent(t *testing.T) {
	store := newFakeCommentStore()
	service := NewService(store)
	requester := auth.Identity{ID: uuid.New()}

	if _, err := service.Add(context.Background(), requester, uuid.New(), "   "); !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("expected validation error for blank content, got %v", err)
	}

	created, err := service.Add(context.Background(), requester, uuid.New(), "  nice video  ")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if created.Content != "nice video" {
		t.Fatalf("expected trimmed content, got %q", created.Content)
	}
}

func TestUpdateRequiresOwnership(t *testing.T) {
	store := newFakeCommentStore()
	service := NewService(store)
	author := auth.Identity{ID: uuid.New()}

	created, err := service.Add(context.Background(), author, uuid.New(), "first")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if _, err := service.Update(context.Background(), auth.Identity{ID: uuid.New()}, created.ID, "hijacked"); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner for stranger, got %v", err)
	}

	updated, err := service.Update(context.Background(), author, created.ID, "edited")
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Content != "edited" {
		t.Fatalf("expected edited content, got %q", updated.Content)
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	store := newFakeCommentStore()
	service := NewService(store)
	author := auth.Identity{ID: uuid.New()}

	created, err := service.Add(context.Background(), author, uuid.New(), "first")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if err := service.Delete(context.Background(), auth.Identity{ID: uuid.New()}, created.ID); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner for stranger, got %v", err)
	}
	if err := service.Delete(context.Background(), author, created.ID); err != nil {
		t.Fatalf("Delete returned error for author: %v", err)
	}
	if len(store.comments) != 0 {
		t.Fatalf("expected comment removed")
	}
}

func TestListPaginates(t *testing.T) {
	store := newFakeCommentStore()
	service := NewService(store)
	author := auth.Identity{ID: uuid.New()}
	videoID := uuid.New()

	for i := 0; i < 15; i++ {
		if _, err := service.Add(context.Background(), author, videoID, "comment"); err != nil {
			t.Fatalf("Add returned error: %v", err)
		}
	}

	page, err := service.List(context.Background(), videoID, pagination.Params{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(page.Comments) != 5 {
		t.Fatalf("expected 5 comments on the second page, got %d", len(page.Comments))
	}
	if page.Pagination.Total != 15 || page.Pagination.TotalPages != 2 {
		t.Fatalf("unexpected pagination meta: %+v", page.Pagination)
	}
}

type fakeCommentStore struct {
	comments map[uuid.UUID]Comment
	order    []uuid.UUID
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[uuid.UUID]Comment)}
}

func (f *fakeCommentStore) Create(ctx context.Context, videoID, ownerID uuid.UUID, content string) (Comment, error) {
	c := Comment{
		ID:        uuid.New(),
		VideoID:   videoID,
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.comments[c.ID] = c
	f.order = append(f.order, c.ID)
	return c, nil
}

func (f *fakeCommentStore) ByID(ctx context.Context, id uuid.UUID) (Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return Comment{}, ErrCommentNotFound
	}
	return c, nil
}

func (f *fakeCommentStore) ListByVideo(ctx context.Context, videoID uuid.UUID, p pagination.Params) ([]Comment, int64, error) {
	var matching []Comment
	for _, id := range f.order {
		if c, ok := f.comments[id]; ok && c.VideoID == videoID {
			matching = append(matching, c)
		}
	}
	total := int64(len(matching))
	start := p.Offset()
	if start > len(matching) {
		return nil, total, nil
	}
	end := start + p.Limit
	if end > len(matching) {
		end = len(matching)
	}
	return matching[start:end], total, nil
}

func (f *fakeCommentStore) Update(ctx context.Context, id uuid.UUID, content string) (Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return Comment{}, ErrCommentNotFound
	}
	c.Content = content
	f.comments[id] = c
	return c, nil
}

func (f *fakeCommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.comments[id]; !ok {
		return ErrCommentNotFound
	}
	delete(f.comments, id)
	return nil
}
