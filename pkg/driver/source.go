package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Source is a program text and where it came from.
type Source struct {
	Name string
	Text string
	// Dir is the directory config lookup starts from. Empty for sources
	// fetched from a repository.
	Dir string
	// Commit is set for sources fetched from a repository.
	Commit string
}

func LoadFile(path string) (*Source, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("source: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	return &Source{Name: path, Text: string(data), Dir: filepath.Dir(absPath)}, nil
}

// FetchGitSource clones url, checks out rev (HEAD when empty) and reads the
// file at path inside the checkout. The clone is removed before returning.
func FetchGitSource(url, rev, path string) (*Source, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("source: empty repository url")
	}
	rel := filepath.Clean(filepath.FromSlash(path))
	if !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("source: %q is not a path inside the repository", path)
	}
	revision := plumbing.Revision("HEAD")
	if rev = strings.TrimSpace(rev); rev != "" {
		revision = plumbing.Revision(rev)
	}

	tmpDir, err := os.MkdirTemp("", "raptor-git-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		return nil, fmt.Errorf("git clone %s: %w", url, err)
	}
	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		return nil, fmt.Errorf("resolve revision %s: %w", revision, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{
		Hash:  *hash,
		Force: true,
	}); err != nil {
		return nil, fmt.Errorf("git checkout %s: %w", revision, err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, rel))
	if err != nil {
		return nil, fmt.Errorf("source: read %s at %s: %w", path, revision, err)
	}
	return &Source{
		Name:   fmt.Sprintf("%s@%s:%s", url, hash.String()[:12], filepath.ToSlash(rel)),
		Text:   string(data),
		Commit: hash.String(),
	}, nil
}
