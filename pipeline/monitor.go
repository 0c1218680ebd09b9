package pipeline

import "github.com/poiesic/pagesim/core"

// RunMonitor provides hooks to observe a pipeline run.
// Implement this interface to track intermediate values at each stage.
type RunMonitor interface {
	Start(query, backendName string)
	AfterNormalize(sections []string, query string)
	AfterEmbedding(dimensions int)
	AfterScoring(scores []float64)
	AfterAnalysis(sentiments []*core.Sentiment, entities [][]core.Entity)
	Finish(result *core.Result)
}

// noopMonitor is a no-op implementation of RunMonitor
type noopMonitor struct{}

var _ RunMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_, _ string)                                   {}
func (n *noopMonitor) AfterNormalize(_ []string, _ string)                 {}
func (n *noopMonitor) AfterEmbedding(_ int)                                {}
func (n *noopMonitor) AfterScoring(_ []float64)                            {}
func (n *noopMonitor) AfterAnalysis(_ []*core.Sentiment, _ [][]core.Entity) {}
func (n *noopMonitor) Finish(_ *core.Result)                               {}
