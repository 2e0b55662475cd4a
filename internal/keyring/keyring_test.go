package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGet(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://rider@localhost:5432/training?sslmode=disable"
	if err := Set("", connStr); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, err := Get("default")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("Get() = %q, want %q", got, connStr)
	}
}

func TestProfilesAreSeparate(t *testing.T) {
	gokeyring.MockInit()

	if err := Set("club", "postgres://club@db/club"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if _, err := Get("default"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected the default profile to be empty, got %v", err)
	}
	if got, _ := Get("club"); got != "postgres://club@db/club" {
		t.Errorf("Get(club) = %q", got)
	}
}

func TestSetEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := Set("", "  "); !errors.Is(err, ErrEmptyConnection) {
		t.Errorf("Set() error = %v, want %v", err, ErrEmptyConnection)
	}
}

func TestDelete(t *testing.T) {
	gokeyring.MockInit()

	if err := Set("", "postgres://rider@localhost/db"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := Delete(""); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := Get(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("after Delete(), Get() error = %v, want %v", err, ErrNotFound)
	}
	if err := Delete(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want %v", err, ErrNotFound)
	}
}

func TestInspect(t *testing.T) {
	gokeyring.MockInit()

	st := Inspect("")
	if !st.Available || st.Stored || st.Profile != "default" {
		t.Errorf("unexpected empty status %+v", st)
	}

	_ = Set("", "postgres://rider@localhost/db")
	if st := Inspect(""); !st.Stored {
		t.Errorf("expected stored status, got %+v", st)
	}

	gokeyring.MockInitWithError(errors.New("no dbus"))
	if st := Inspect(""); st.Available || st.Stored {
		t.Errorf("expected unavailable status, got %+v", st)
	}
}
