package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sandeepkv93/choirsched/internal/model"
)

func TestMapFirestoreError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"not found", status.Error(codes.NotFound, "no document"), model.ErrNotFound},
		{"permission", status.Error(codes.PermissionDenied, "missing or insufficient permissions"), model.ErrPermissionDenied},
		{"unauthenticated", status.Error(codes.Unauthenticated, "token expired"), model.ErrPermissionDenied},
		{"unavailable", status.Error(codes.Unavailable, "offline"), model.ErrUnavailable},
		{"deadline code", status.Error(codes.DeadlineExceeded, "slow"), model.ErrUnavailable},
		{"deadline ctx", fmt.Errorf("rpc: %w", context.DeadlineExceeded), model.ErrUnavailable},
	}
	for _, tc := range cases {
		got := mapFirestoreError("save", tc.in)
		if !errors.Is(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
		if !strings.HasPrefix(got.Error(), "storage: save: ") {
			t.Fatalf("%s: unexpected message %q", tc.name, got.Error())
		}
	}
}

func TestMapFirestoreErrorKeepsReason(t *testing.T) {
	got := mapFirestoreError("delete", status.Error(codes.PermissionDenied, "missing or insufficient permissions"))
	if !strings.Contains(got.Error(), "missing or insufficient permissions") {
		t.Fatalf("reason dropped: %q", got.Error())
	}
}

func TestMapFirestoreErrorPassesThroughUnknown(t *testing.T) {
	plain := errors.New("boom")
	got := mapFirestoreError("list", plain)
	if !errors.Is(got, plain) {
		t.Fatalf("expected wrapped original, got %v", got)
	}
	for _, sentinel := range []error{model.ErrNotFound, model.ErrPermissionDenied, model.ErrUnavailable} {
		if errors.Is(got, sentinel) {
			t.Fatalf("unexpected sentinel %v", sentinel)
		}
	}
	if mapFirestoreError("list", nil) != nil {
		t.Fatalf("nil must map to nil")
	}
}
