package menu_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"todosync/internal/menu"
	"todosync/internal/prompt"
	"todosync/internal/service"
	"todosync/internal/store"
	"todosync/internal/testutil"
	"todosync/internal/todo"
)

// runMenu runs the menu over input with a fresh store and the given mirror.
func runMenu(t *testing.T, mirror *testutil.FakeMirror, input string) (string, *store.Store, error) {
	t.Helper()

	s := store.New(filepath.Join(t.TempDir(), "todos.json"))
	var out bytes.Buffer
	todos := todo.NewManager(s, mirror, &out)
	in := prompt.NewReader(strings.NewReader(input), &out)

	err := menu.New(todos, in, &out).Run(context.Background())
	return out.String(), s, err
}

func TestMenu_Session(t *testing.T) {
	mirror := testutil.NewFakeMirror()
	got, s, err := runMenu(t, mirror, "1\nbuy milk\n2\n3\n1\n2\n9\n5\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.GoldenString(t, "session", got)

	tasks, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tasks) != 1 || tasks[0] != (service.Task{Task: "buy milk", Done: true}) {
		t.Errorf("unexpected stored tasks: %+v", tasks)
	}
	if body, _ := mirror.Body(); body != "[✓] buy milk" {
		t.Errorf("unexpected remote body: %q", body)
	}
}

func TestMenu_InvalidInput(t *testing.T) {
	mirror := testutil.NewFakeMirror()
	mirror.DownloadErr = testutil.ErrNetwork

	got, s, err := runMenu(t, mirror, "3\nabc\n3\n7\n4\n2\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.GoldenString(t, "invalid_input", got)

	tasks, _ := s.Load()
	if len(tasks) != 0 {
		t.Errorf("expected no tasks, got %+v", tasks)
	}
	if mirror.Uploads != 0 {
		t.Errorf("expected no uploads, got %d", mirror.Uploads)
	}
}

func TestMenu_QuitImmediately(t *testing.T) {
	got, _, err := runMenu(t, testutil.NewFakeMirror(), "5\n1\nnever\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(got, "Choose (1-5): Goodbye!\n") {
		t.Errorf("expected goodbye, got %q", got)
	}
	if strings.Contains(got, "Enter your todo") {
		t.Error("menu kept reading after quit")
	}
}

func TestMenu_ChoiceIsTrimmed(t *testing.T) {
	got, _, err := runMenu(t, testutil.NewFakeMirror(), "  2  \n5\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "No todos yet!\n") {
		t.Errorf("expected list output, got %q", got)
	}
}

func TestMenu_EOFDuringAdd(t *testing.T) {
	got, s, err := runMenu(t, testutil.NewFakeMirror(), "1\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(got, "Enter your todo: ") {
		t.Errorf("unexpected output %q", got)
	}
	tasks, _ := s.Load()
	if len(tasks) != 0 {
		t.Errorf("expected no tasks, got %+v", tasks)
	}
}

func TestMenu_CancelledContext(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "todos.json"))
	var out bytes.Buffer
	todos := todo.NewManager(s, testutil.NewFakeMirror(), &out)
	in := prompt.NewReader(strings.NewReader("2\n"), &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := menu.New(todos, in, &out).Run(ctx); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMenu_Entries(t *testing.T) {
	m := menu.New(nil, nil, nil)
	want := []string{"1", "2", "3", "4", "5"}
	for i, e := range m.Entries() {
		if e.Key != want[i] {
			t.Errorf("entry %d: expected key %q, got %q", i, want[i], e.Key)
		}
	}
}

func TestMenu_QuietSuppressesConfirmations(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "todos.json"))
	var out bytes.Buffer
	todos := todo.NewManager(s, testutil.NewFakeMirror(), &out)
	todos.SetQuiet(true)
	in := prompt.NewReader(strings.NewReader("1\nbuy milk\n3\n1\n3\n4\n5\n"), &out)

	m := menu.New(todos, in, &out)
	m.SetQuiet(true)
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	for _, msg := range []string{"Todo added!", "Marked as done!"} {
		if strings.Contains(got, msg) {
			t.Errorf("quiet menu printed %q", msg)
		}
	}
	if !strings.Contains(got, "Invalid number!\n") {
		t.Errorf("quiet menu should still report errors, got %q", got)
	}
	if !strings.HasSuffix(got, "Goodbye!\n") {
		t.Errorf("expected goodbye, got %q", got)
	}

	tasks, _ := s.Load()
	if len(tasks) != 1 || !tasks[0].Done {
		t.Errorf("unexpected stored tasks: %+v", tasks)
	}
}
