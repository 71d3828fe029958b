package storage

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sandeepkv93/choirsched/internal/model"
)

// mapFirestoreError folds gRPC failures into the model sentinels so callers
// can branch with errors.Is. The server message is kept as the reason.
func mapFirestoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("storage: %s: %w: %v", op, model.ErrUnavailable, err)
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("storage: %s: %w", op, err)
	}
	var sentinel error
	switch st.Code() {
	case codes.NotFound:
		sentinel = model.ErrNotFound
	case codes.PermissionDenied, codes.Unauthenticated:
		sentinel = model.ErrPermissionDenied
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		sentinel = model.ErrUnavailable
	default:
		return fmt.Errorf("storage: %s: %w", op, err)
	}
	return fmt.Errorf("storage: %s: %w: %s", op, sentinel, st.Message())
}
