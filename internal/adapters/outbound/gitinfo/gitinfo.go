package gitinfo

import (
	"github.com/go-git/go-git/v5"

	"github.com/schemaguard/schemaguard/internal/domain"
)

// Adapter implements domain.GitInfo using go-git. Reports stamp the commit
// of the repository under CI so a compliance run can be traced back to the
// change that triggered it.
type Adapter struct{}

var _ domain.GitInfo = (*Adapter)(nil)

func New() *Adapter { return &Adapter{} }

// CommitHash returns the HEAD commit of the repository at projectPath, or ""
// when the path is not a repository or HEAD cannot be resolved.
func (a *Adapter) CommitHash(projectPath string) string {
	repo, err := git.PlainOpen(projectPath)
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()
}
