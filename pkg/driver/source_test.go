package driver

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func initGitRepo(t *testing.T, dir string) string {
	t.Helper()
	repo, err := git.PlainOpen(dir)
	if err != nil {
		repo, err = git.PlainInit(dir, false)
		if err != nil {
			t.Fatalf("PlainInit: %v", err)
		}
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == filepath.Join(dir, ".git") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if _, err := worktree.Add(filepath.ToSlash(rel)); err != nil {
			return err
		}
		return nil
	}); err != nil {
		t.Fatalf("stage files: %v", err)
	}
	hash, err := worktree.Commit("update", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Raptor CLI",
			Email: "raptor@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.rap")
	writeFile(t, path, "return 1\n")
	src, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if src.Text != "return 1\n" || src.Dir != dir {
		t.Fatalf("unexpected source %+v", src)
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.rap")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}

func TestFetchGitSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "programs", "main.rap"), "return 1\n")
	first := initGitRepo(t, dir)
	writeFile(t, filepath.Join(dir, "programs", "main.rap"), "return 2\n")
	second := initGitRepo(t, dir)

	src, err := FetchGitSource(dir, "", "programs/main.rap")
	if err != nil {
		t.Fatalf("FetchGitSource: %v", err)
	}
	if src.Text != "return 2\n" || src.Commit != second {
		t.Fatalf("expected HEAD contents, got %+v", src)
	}
	if src.Dir != "" || !strings.HasSuffix(src.Name, ":programs/main.rap") {
		t.Fatalf("unexpected source metadata %+v", src)
	}

	src, err = FetchGitSource(dir, first, "programs/main.rap")
	if err != nil {
		t.Fatalf("FetchGitSource at %s: %v", first, err)
	}
	if src.Text != "return 1\n" || src.Commit != first {
		t.Fatalf("expected first revision contents, got %+v", src)
	}
}

func TestFetchGitSourceRejectsEscapingPaths(t *testing.T) {
	if _, err := FetchGitSource("https://example.invalid/repo.git", "", "../etc/passwd"); err == nil {
		t.Fatalf("expected an error for a path outside the repository")
	}
	if _, err := FetchGitSource("", "", "main.rap"); err == nil {
		t.Fatalf("expected an error for an empty url")
	}
}
