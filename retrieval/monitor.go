package retrieval

import (
	"github.com/poiesic/caregap/core"
	"github.com/poiesic/caregap/index"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results
// during retrieval.
type SearchMonitor interface {
	Start(query string)
	AfterKNN(hits []index.Hit)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)               {}
func (n *noopMonitor) AfterKNN(_ []index.Hit)       {}
func (n *noopMonitor) Finish(_ []core.SearchResult) {}
