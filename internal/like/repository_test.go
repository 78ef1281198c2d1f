package like

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aidosqali/vidtube/internal/apperr"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestInsertErrorClassifiesDanglingTarget(t *testing.T) {
	for _, constraint := range []string{
		"likes_video_id_fkey",
		"likes_comment_id_fkey",
		"likes_tweet_id_fkey",
	} {
		cause := &pgconn.PgError{Code: "23503", ConstraintName: constraint}
		err := insertError(fmt.Errorf("exec: %w", cause))
		if !errors.Is(err, ErrTargetNotFound) {
			t.Fatalf("expected ErrTargetNotFound for %s, got %v", constraint, err)
		}
		if apperr.KindOf(err) != apperr.NotFound {
			t.Fatalf("expected NotFound kind for %s, got %v", constraint, apperr.KindOf(err))
		}
	}
}

func TestInsertErrorKeepsOtherFailuresInternal(t *testing.T) {
	err := insertError(errors.New("connection reset"))
	if errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("expected unrelated failures to stay unclassified")
	}
	if apperr.KindOf(err) != apperr.Internal {
		t.Fatalf("expected Internal kind, got %v", apperr.KindOf(err))
	}
}
