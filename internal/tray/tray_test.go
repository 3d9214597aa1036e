package tray

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestForward(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	exit := make(chan struct{})
	show := make(chan struct{})
	out := make(chan Action)

	done := make(chan struct{})
	go func() {
		Forward(ctx, exit, show, out)
		close(done)
	}()

	steps := []struct {
		click chan struct{}
		want  Action
	}{
		{show, ActionShow},
		{exit, ActionExit},
		{show, ActionShow},
	}
	for _, s := range steps {
		s.click <- struct{}{}
		select {
		case got := <-out:
			if got != s.want {
				t.Errorf("got %v; want %v", got, s.want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("no action for %v", s.want)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Forward did not stop")
	}
}

func TestNewMissingIcon(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "none.png"), nil); err == nil {
		t.Error("missing icon accepted")
	}
}

func TestNewReadsIcon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	if err := os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0644); err != nil {
		t.Fatal(err)
	}
	tr, err := New(path, make(chan Action, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(tr.icon) != 4 {
		t.Errorf("icon len = %d; want 4", len(tr.icon))
	}
}

func TestActionString(t *testing.T) {
	if ActionExit.String() != "exit" || ActionShow.String() != "show" || Action(9).String() != "action(9)" {
		t.Error("unexpected Action strings")
	}
}
