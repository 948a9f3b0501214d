package gitcli

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/llmctx/gitctx/internal/record"
)

// testRepo wraps a temporary git repository.
type testRepo struct {
	t   *testing.T
	dir string
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	r := &testRepo{t: t, dir: t.TempDir()}
	r.git("init")
	r.git("config", "user.email", "test@test.com")
	r.git("config", "user.name", "Test Author")
	return r
}

func (r *testRepo) git(args ...string) string {
	r.t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = r.dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

func (r *testRepo) commitFile(name, content, msg string) string {
	r.t.Helper()
	path := filepath.Join(r.dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		r.t.Fatal(err)
	}
	r.git("add", name)
	r.git("commit", "-m", msg)
	return r.git("rev-parse", "HEAD")
}

func TestQueryCommits(t *testing.T) {
	repo := newTestRepo(t)
	sha1 := repo.commitFile("a.txt", "one", "Add a.txt")
	repo.commitFile("a.txt", "two", "Tweak a.txt")
	sha2 := repo.commitFile("b.txt", "data", "Add b.txt\n\nWith a body line.")

	pr := &record.PullRequestRef{Owner: "org", Repo: "repo", Number: 5}
	runner := NewRunner(nil, repo.dir)

	commits, err := runner.QueryCommits(context.Background(), "HEAD", "review", pr)
	if err != nil {
		t.Fatalf("QueryCommits: %v", err)
	}
	if len(commits) != 3 {
		t.Fatalf("got %d commits, want 3", len(commits))
	}

	// git log order is newest first.
	newest := commits[0]
	if newest.SHA != sha2 {
		t.Errorf("SHA = %q, want %q", newest.SHA, sha2)
	}
	if newest.Author != "Test Author" {
		t.Errorf("Author = %q", newest.Author)
	}
	if want := "Add b.txt\n\nWith a body line."; newest.Description != want {
		t.Errorf("Description = %q, want %q", newest.Description, want)
	}
	if newest.Phase != "review" {
		t.Errorf("Phase = %q, want %q", newest.Phase, "review")
	}
	if diff := cmp.Diff(pr, newest.PR); diff != "" {
		t.Errorf("PR mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b.txt"}, newest.Added); diff != "" {
		t.Errorf("Added mismatch (-want +got):\n%s", diff)
	}

	oldest := commits[2]
	if oldest.SHA != sha1 {
		t.Errorf("oldest SHA = %q, want %q", oldest.SHA, sha1)
	}
	if diff := cmp.Diff([]string{"a.txt"}, oldest.Added); diff != "" {
		t.Errorf("root commit Added mismatch (-want +got):\n%s", diff)
	}

	middle := commits[1]
	if diff := cmp.Diff([]string{"a.txt"}, middle.Modified); diff != "" {
		t.Errorf("Modified mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryCommitsRemovedFile(t *testing.T) {
	repo := newTestRepo(t)
	repo.commitFile("gone.txt", "x", "Add gone.txt")
	repo.git("rm", "gone.txt")
	repo.git("commit", "-m", "Remove gone.txt")

	runner := NewRunner(nil, repo.dir)
	commits, err := runner.QueryCommits(context.Background(), "HEAD", "", nil)
	if err != nil {
		t.Fatalf("QueryCommits: %v", err)
	}
	if diff := cmp.Diff([]string{"gone.txt"}, commits[0].Removed); diff != "" {
		t.Errorf("Removed mismatch (-want +got):\n%s", diff)
	}
	if commits[0].PR != nil {
		t.Errorf("PR = %+v, want nil", commits[0].PR)
	}
}

func TestQueryCommitsRange(t *testing.T) {
	repo := newTestRepo(t)
	base := repo.commitFile("a.txt", "one", "Base")
	repo.commitFile("a.txt", "two", "Second")
	tip := repo.commitFile("a.txt", "three", "Third")

	runner := NewRunner(nil, repo.dir)
	commits, err := runner.QueryCommits(context.Background(), base+".."+tip, "", nil)
	if err != nil {
		t.Fatalf("QueryCommits: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("got %d commits, want 2", len(commits))
	}
	if commits[0].SHA != tip {
		t.Errorf("first SHA = %q, want %q", commits[0].SHA, tip)
	}
}

func TestQueryCommitsBadRange(t *testing.T) {
	repo := newTestRepo(t)
	repo.commitFile("a.txt", "one", "Base")

	runner := NewRunner(nil, repo.dir)
	if _, err := runner.QueryCommits(context.Background(), "no-such-ref", "", nil); err == nil {
		t.Error("QueryCommits with bad range: want error")
	}
}
