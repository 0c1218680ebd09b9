// Package mock provides test doubles for the ai interfaces.
//
// The mocks return CONCRETE types so tests can inject behavior through the
// public function fields and assert call counts:
//
//	embedder := mock.NewEmbedder()
//	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
//	    return nil, errors.New("backend unavailable")
//	}
//	count := embedder.CallCount()
//
// Default behavior is deterministic: the embedder derives vectors from a
// hash of the input text, the analyzer returns neutral sentiment and no
// entities. All mocks are safe for concurrent use.
package mock
