// Package gitmeta resolves version-control metadata for the scanned
// report tree. The footer stamp is decoration, so every lookup here is
// best-effort and failure collapses to the empty string.
package gitmeta

import (
	git "github.com/go-git/go-git/v5"
)

// revisionLen is the number of hash characters shown in the footer.
const revisionLen = 8

// Revision returns the short HEAD commit hash of the repository
// containing dir, or "" when dir is not inside a repository or HEAD
// cannot be resolved.
func Revision(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	ref, err := repo.Head()
	if err != nil {
		return ""
	}
	hash := ref.Hash().String()
	if len(hash) < revisionLen {
		return hash
	}
	return hash[:revisionLen]
}
