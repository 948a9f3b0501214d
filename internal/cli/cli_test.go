package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/llmctx/gitctx/internal/logging"
	"github.com/llmctx/gitctx/internal/record"
)

// runCommand executes the root command with args, feeding stdin and
// capturing stdout.
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GITHUB_OUTPUT", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	opts := &Options{ConfigPath: defaultConfigPath, LogLevel: logging.LevelInfo}
	cmd := newRootCommand(opts, logging.NewLogger(io.Discard, logging.LevelError))
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	return out.String(), err
}

func TestParsePRRef(t *testing.T) {
	tests := []struct {
		name    string
		repo    string
		value   string
		want    *record.PullRequestRef
		wantErr bool
	}{
		{name: "empty means none", value: ""},
		{
			name:  "full reference",
			value: "org/repo#12",
			want:  &record.PullRequestRef{Owner: "org", Repo: "repo", Number: 12},
		},
		{
			name:  "bare number uses configured repo",
			repo:  "org/repo",
			value: "7",
			want:  &record.PullRequestRef{Owner: "org", Repo: "repo", Number: 7},
		},
		{name: "bare number without repo", value: "7", wantErr: true},
		{name: "bad number", value: "org/repo#x", wantErr: true},
		{name: "missing slash", repo: "orgrepo", value: "3", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePRRef(tt.repo, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parsePRRef(%q, %q) = nil error, want failure", tt.repo, tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePRRef: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parsePRRef mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeCommits(t *testing.T) {
	payload := "sha:abc123|title:Fix bug|pr:org1/repo1#123\nsha:def456|title:Add feature|pr:none\n"

	out, err := runCommand(t, payload, "decode", "commits")
	if err != nil {
		t.Fatalf("decode commits: %v", err)
	}

	var commits []record.Commit
	if err := json.Unmarshal([]byte(out), &commits); err != nil {
		t.Fatalf("unmarshal output: %v\n%s", err, out)
	}
	want := []record.Commit{
		{SHA: "abc123", Description: "Fix bug", PR: &record.PullRequestRef{Owner: "org1", Repo: "repo1", Number: 123}},
		{SHA: "def456", Description: "Add feature"},
	}
	if diff := cmp.Diff(want, commits); diff != "" {
		t.Errorf("decoded commits mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCommentsFromFile(t *testing.T) {
	payload := `pr:your-org/your-repo#123|author:username|date:2025-04-20T14:30:00Z|id:comment123|body:This looks good.\nJust one suggestion: let's add more tests.`
	path := filepath.Join(t.TempDir(), "payload.txt")
	if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "", "decode", "comments", "--input", path)
	if err != nil {
		t.Fatalf("decode comments: %v", err)
	}

	var comments []record.PullRequestComment
	if err := json.Unmarshal([]byte(out), &comments); err != nil {
		t.Fatalf("unmarshal output: %v\n%s", err, out)
	}
	if len(comments) != 1 {
		t.Fatalf("decoded %d comments, want 1", len(comments))
	}
	if !strings.Contains(comments[0].Body, "\nJust one suggestion:") {
		t.Errorf("Body = %q, want embedded newline", comments[0].Body)
	}
	if !strings.HasSuffix(comments[0].URL, "/comment123") {
		t.Errorf("URL = %q, want comment id as last segment", comments[0].URL)
	}
}

func TestDecodeCommentsBadPayload(t *testing.T) {
	_, err := runCommand(t, "pr:broken|body:x\n", "decode", "comments")
	if err == nil {
		t.Error("decode comments with bad payload: want error")
	}
}

func TestCommitsCommand(t *testing.T) {
	dir := t.TempDir()
	git := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	git("init")
	git("config", "user.email", "test@test.com")
	git("config", "user.name", "Test")
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	git("add", "a.txt")
	git("commit", "-m", "Fix bug\n\nLonger explanation.")

	out, err := runCommand(t, "",
		"commits", "HEAD",
		"--repo-path", dir,
		"--pr", "org1/repo1#123",
		"--phase", "review",
	)
	if err != nil {
		t.Fatalf("commits: %v", err)
	}

	line := strings.TrimSpace(out)
	if !strings.HasPrefix(line, "sha:") {
		t.Fatalf("output = %q, want compact commit line", line)
	}
	if !strings.Contains(line, "|title:Fix bug|") {
		t.Errorf("output = %q, want first description line as title", line)
	}
	if !strings.HasSuffix(line, "|pr:org1/repo1#123") {
		t.Errorf("output = %q, want pr reference", line)
	}
}
