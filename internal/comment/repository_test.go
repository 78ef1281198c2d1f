package comment

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aidosqali/vidtube/internal/apperr"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestCreateErrorClassifiesDanglingVideo(t *testing.T) {
	cause := &pgconn.PgError{Code: "23503", ConstraintName: "comments_video_id_fkey"}
	err := createError(fmt.Errorf("insert comment: %w", cause))
	if !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound for a foreign-key violation, got %v", err)
	}
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("expected NotFound kind, got %v", apperr.KindOf(err))
	}
}

func TestCreateErrorKeepsOtherFailuresInternal(t *testing.T) {
	err := createError(errors.New("connection reset"))
	if errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected unrelated failures to stay unclassified")
	}
	if apperr.KindOf(err) != apperr.Internal {
		t.Fatalf("expected Internal kind, got %v", apperr.KindOf(err))
	}
}
