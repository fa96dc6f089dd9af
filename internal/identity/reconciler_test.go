package identity

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type fakeDirectory struct {
	users   []DirectoryUser
	listErr error

	lookups     map[string]string
	lookupErr   error
	lookupCalls int
}

func (f *fakeDirectory) ListUserDirectory(ctx context.Context) ([]DirectoryUser, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.users, nil
}

func (f *fakeDirectory) LookupUserByEmail(ctx context.Context, email string) (string, error) {
	f.lookupCalls++
	if f.lookupErr != nil {
		return "", f.lookupErr
	}
	return f.lookups[email], nil
}

func reconcileRegistry() *Registry {
	reg := NewRegistry()
	reg.Add(NewUser("U1", "Alice Adams", "alice@example.test"))
	reg.Add(NewUser("U2", "Bob Brown", "bob@example.test"))
	reg.Add(NewUser("U3", "Carol Clark", ""))
	reg.Add(NewBotUser("U4", "Deploy Bot"))
	return reg
}

func TestReconciler_BulkDirectory(t *testing.T) {
	dir := &fakeDirectory{
		users: []DirectoryUser{
			{ID: "aad-1", Email: "alice@example.test"},
			{ID: "aad-9", Email: "nobody@example.test"},
			{ID: "aad-x", Email: ""},
		},
	}
	reg := reconcileRegistry()

	if err := NewReconciler(dir, zap.NewNop()).Reconcile(context.Background(), reg); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	alice, _ := reg.ByID("U1")
	if alice.TeamsID != "aad-1" {
		t.Errorf("alice TeamsID = %q, want aad-1", alice.TeamsID)
	}
	bob, _ := reg.ByID("U2")
	if bob.Mapped() {
		t.Errorf("bob TeamsID = %q, want unmapped", bob.TeamsID)
	}
	carol, _ := reg.ByID("U3")
	if carol.Mapped() {
		t.Error("user without email must stay unmapped")
	}
	if dir.lookupCalls != 0 {
		t.Errorf("per-email lookups = %d, want 0 when the bulk listing works", dir.lookupCalls)
	}
}

func TestReconciler_EmailMatchIsCaseSensitive(t *testing.T) {
	dir := &fakeDirectory{
		users: []DirectoryUser{{ID: "aad-1", Email: "Alice@Example.Test"}},
	}
	reg := reconcileRegistry()

	if err := NewReconciler(dir, zap.NewNop()).Reconcile(context.Background(), reg); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	alice, _ := reg.ByID("U1")
	if alice.Mapped() {
		t.Errorf("alice TeamsID = %q, want unmapped for differently cased email", alice.TeamsID)
	}
}

func TestReconciler_FallsBackToLookup(t *testing.T) {
	dir := &fakeDirectory{
		listErr: errors.New("forbidden"),
		lookups: map[string]string{"bob@example.test": "aad-2"},
	}
	reg := reconcileRegistry()

	if err := NewReconciler(dir, zap.NewNop()).Reconcile(context.Background(), reg); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	bob, _ := reg.ByID("U2")
	if bob.TeamsID != "aad-2" {
		t.Errorf("bob TeamsID = %q, want aad-2", bob.TeamsID)
	}
	alice, _ := reg.ByID("U1")
	if alice.Mapped() {
		t.Errorf("alice TeamsID = %q, want unmapped", alice.TeamsID)
	}
	// Only users with an email are looked up.
	if dir.lookupCalls != 2 {
		t.Errorf("per-email lookups = %d, want 2", dir.lookupCalls)
	}
}

func TestReconciler_LookupCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := &fakeDirectory{
		listErr:   errors.New("forbidden"),
		lookupErr: ctx.Err(),
	}
	err := NewReconciler(dir, zap.NewNop()).Reconcile(ctx, reconcileRegistry())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
