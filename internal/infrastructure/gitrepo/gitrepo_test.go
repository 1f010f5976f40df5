package gitrepo_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/dailyread/internal/infrastructure/gitrepo"
)

const recordJSON = `{"orderer": "dummy@dummy.se", "project_dates": {"2023-06-15": ["Samples Received"]}, "internal_id": "P1", "internal_name": "N1"}`

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	git(t, dir, "init")
	git(t, dir, "config", "user.email", "test@example.com")
	git(t, dir, "config", "user.name", "Tester")
	git(t, dir, "config", "commit.gpgsign", "false")
	return dir
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestChanges_Categories(t *testing.T) {
	dir := initRepo(t)

	// One committed file later modified but not staged.
	writeFile(t, dir, "SNPSEQ/2023/modified.json", recordJSON)
	git(t, dir, "add", "SNPSEQ/2023/modified.json")
	git(t, dir, "commit", "-m", "add record")
	writeFile(t, dir, "SNPSEQ/2023/modified.json", recordJSON+"\n")

	// One new untracked file.
	writeFile(t, dir, "NGIS/2023/untracked.json", recordJSON)

	// One new staged file.
	writeFile(t, dir, "UGC/2023/staged.json", recordJSON)
	git(t, dir, "add", "UGC/2023/staged.json")

	changes, err := gitrepo.Open(dir).Changes(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(changes.Untracked) != 1 || changes.Untracked[0] != "NGIS/2023/untracked.json" {
		t.Errorf("unexpected untracked: %v", changes.Untracked)
	}
	if len(changes.StagedNew) != 1 || changes.StagedNew[0] != "UGC/2023/staged.json" {
		t.Errorf("unexpected staged new: %v", changes.StagedNew)
	}
	if len(changes.CommittedModified) != 1 || changes.CommittedModified[0] != "SNPSEQ/2023/modified.json" {
		t.Errorf("unexpected committed modified: %v", changes.CommittedModified)
	}
	if len(changes.StagedModified) != 0 {
		t.Errorf("expected no staged modified, got %v", changes.StagedModified)
	}
}

func TestChanges_StagedModified(t *testing.T) {
	dir := initRepo(t)

	writeFile(t, dir, "NGIS/2022/rec.json", recordJSON)
	git(t, dir, "add", "NGIS/2022/rec.json")
	git(t, dir, "commit", "-m", "add record")
	writeFile(t, dir, "NGIS/2022/rec.json", recordJSON+"\n")
	git(t, dir, "add", "NGIS/2022/rec.json")

	changes, err := gitrepo.Open(dir).Changes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(changes.StagedModified) != 1 || changes.StagedModified[0] != "NGIS/2022/rec.json" {
		t.Errorf("unexpected staged modified: %v", changes.StagedModified)
	}
	if len(changes.CommittedModified) != 0 {
		t.Errorf("expected no committed modified, got %v", changes.CommittedModified)
	}
}

func TestChanges_StagedTakesPrecedenceOverFurtherEdits(t *testing.T) {
	dir := initRepo(t)

	writeFile(t, dir, "NGIS/2022/rec.json", recordJSON)
	git(t, dir, "add", "NGIS/2022/rec.json")
	git(t, dir, "commit", "-m", "add record")

	// Stage one modification, then modify the working tree again: the file
	// must show up once, in the staged category.
	writeFile(t, dir, "NGIS/2022/rec.json", recordJSON+"\n")
	git(t, dir, "add", "NGIS/2022/rec.json")
	writeFile(t, dir, "NGIS/2022/rec.json", recordJSON+"\n\n")

	changes, err := gitrepo.Open(dir).Changes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(changes.StagedModified) != 1 {
		t.Errorf("expected file in staged modified, got %v", changes.StagedModified)
	}
	if len(changes.CommittedModified) != 0 {
		t.Errorf("expected file not duplicated in committed modified, got %v", changes.CommittedModified)
	}
}

func TestChanges_NoCommits(t *testing.T) {
	dir := initRepo(t)

	writeFile(t, dir, "NGIS/2023/untracked.json", recordJSON)

	repo := gitrepo.Open(dir)
	if repo.HasCommits(context.Background()) {
		t.Fatal("fresh repository should have no commits")
	}

	changes, err := repo.Changes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(changes.Untracked) != 1 {
		t.Errorf("untracked files must still be detected, got %v", changes.Untracked)
	}
	if len(changes.StagedNew)+len(changes.StagedModified)+len(changes.CommittedModified) != 0 {
		t.Errorf("tracked categories must be empty without a commit reference")
	}
}

func TestChanges_IgnoresNonRecordFiles(t *testing.T) {
	dir := initRepo(t)

	writeFile(t, dir, "README.md", "# data repo")
	writeFile(t, dir, ".dailyread/projects.json", "{}")
	writeFile(t, dir, "NGIS/2023/rec.json", recordJSON)

	changes, err := gitrepo.Open(dir).Changes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(changes.Untracked) != 1 || changes.Untracked[0] != "NGIS/2023/rec.json" {
		t.Errorf("expected only the status file, got %v", changes.Untracked)
	}
}

func TestTrackedFiles(t *testing.T) {
	dir := initRepo(t)

	writeFile(t, dir, "NGIS/2023/committed.json", recordJSON)
	writeFile(t, dir, "README.md", "# data repo")
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-m", "add record")
	writeFile(t, dir, "UGC/2023/staged.json", recordJSON)
	git(t, dir, "add", "UGC/2023/staged.json")
	writeFile(t, dir, "SNPSEQ/2023/untracked.json", recordJSON)

	tracked, err := gitrepo.Open(dir).TrackedFiles(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{"NGIS/2023/committed.json": true, "UGC/2023/staged.json": true}
	if len(tracked) != len(want) {
		t.Fatalf("unexpected tracked files: %v", tracked)
	}
	for _, p := range tracked {
		if !want[p] {
			t.Errorf("unexpected tracked file %q", p)
		}
	}
}

func TestRecentCommits(t *testing.T) {
	dir := initRepo(t)

	writeFile(t, dir, "NGIS/2023/rec.json", recordJSON)
	git(t, dir, "add", "NGIS/2023/rec.json")
	git(t, dir, "commit", "-m", "first commit")
	writeFile(t, dir, "NGIS/2023/rec.json", recordJSON+"\n")
	git(t, dir, "add", "NGIS/2023/rec.json")
	git(t, dir, "commit", "-m", "second commit")

	commits, err := gitrepo.Open(dir).RecentCommits(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	if commits[0].Subject != "second commit" {
		t.Errorf("expected newest first, got %q", commits[0].Subject)
	}
	if len(commits[0].Hash) != 40 {
		t.Errorf("unexpected hash %q", commits[0].Hash)
	}
}

func TestRecentCommits_NoHistory(t *testing.T) {
	dir := initRepo(t)
	commits, err := gitrepo.Open(dir).RecentCommits(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 0 {
		t.Errorf("expected no commits, got %v", commits)
	}
}
