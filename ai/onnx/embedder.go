// Package onnx provides the local embedding backend. It runs a
// sentence-transformer ONNX model (MiniLM-class) through onnxruntime with a
// HuggingFace tokenizer, entirely offline. Inference is deterministic and
// the whole batch is vectorized in one session run, so no rate limiting or
// retry policy applies.
package onnx

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/poiesic/pagesim/ai"
	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// ortInit guards process-wide onnxruntime environment initialization.
// The environment is created on first backend load and kept for the
// remainder of the process.
var (
	ortInit    sync.Once
	ortInitErr error
)

func initRuntime(libraryPath string) error {
	ortInit.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

// Embedder implements ai.Embedder with a local ONNX model.
type Embedder struct {
	session   *ort.DynamicAdvancedSession
	tokenizer *tokenizer.Tokenizer
	maxSeqLen int
	mu        sync.Mutex
	logger    *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	config.Normalize()
	if config.LocalModelPath == "" {
		return nil, fmt.Errorf("onnx backend: LocalModelPath is required")
	}
	if config.LocalTokenizerPath == "" {
		return nil, fmt.Errorf("onnx backend: LocalTokenizerPath is required")
	}

	if err := initRuntime(config.OrtLibraryPath); err != nil {
		return nil, fmt.Errorf("onnx backend: initializing runtime: %w", err)
	}

	tk, err := pretrained.FromFile(config.LocalTokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("onnx backend: loading tokenizer: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(config.LocalModelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"last_hidden_state"},
		nil)
	if err != nil {
		return nil, fmt.Errorf("onnx backend: creating session: %w", err)
	}

	return &Embedder{
		session:   session,
		tokenizer: tk,
		maxSeqLen: config.MaxSeqLen,
		logger:    slog.Default().With("component", "onnx-embedder"),
	}, nil
}

// NewEmbedder creates a local embedding backend from the configured model
// and tokenizer paths.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts tokenizes the whole batch, runs one inference pass, and
// mean-pools each sequence into an L2-normalized sentence vector.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Debug("embedding batch locally", "count", len(texts))

	encodings := make([]*tokenizer.Encoding, len(texts))
	maxLen := 1
	for i, text := range texts {
		encoding, err := e.tokenizer.EncodeSingle(text, true)
		if err != nil {
			return nil, fmt.Errorf("tokenizing text %d: %w", i+1, err)
		}
		if len(encoding.Ids) > e.maxSeqLen {
			encoding.Ids = encoding.Ids[:e.maxSeqLen]
		}
		if len(encoding.Ids) > maxLen {
			maxLen = len(encoding.Ids)
		}
		encodings[i] = encoding
	}

	batch := int64(len(texts))
	inputIds := make([]int64, int(batch)*maxLen)
	attentionMask := make([]int64, int(batch)*maxLen)
	typeIds := make([]int64, int(batch)*maxLen)
	for i, encoding := range encodings {
		offset := i * maxLen
		for j, id := range encoding.Ids {
			inputIds[offset+j] = int64(id)
			attentionMask[offset+j] = 1
		}
	}

	// Session access is serialized; onnxruntime sessions are not safe for
	// concurrent Run calls with shared output tensors.
	e.mu.Lock()
	defer e.mu.Unlock()

	shape := ort.NewShape(batch, int64(maxLen))
	idsTensor, err := ort.NewTensor(shape, inputIds)
	if err != nil {
		return nil, fmt.Errorf("creating input tensor: %w", err)
	}
	defer idsTensor.Destroy()

	maskTensor, err := ort.NewTensor(shape, attentionMask)
	if err != nil {
		return nil, fmt.Errorf("creating mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	typeTensor, err := ort.NewTensor(shape, typeIds)
	if err != nil {
		return nil, fmt.Errorf("creating type tensor: %w", err)
	}
	defer typeTensor.Destroy()

	outputs := []ort.Value{nil}
	err = e.session.Run([]ort.Value{idsTensor, maskTensor, typeTensor}, outputs)
	if err != nil {
		return nil, fmt.Errorf("running inference: %w", err)
	}

	hidden, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type")
	}
	defer hidden.Destroy()

	outShape := hidden.GetShape()
	if len(outShape) != 3 || outShape[0] != batch {
		return nil, fmt.Errorf("unexpected output shape %v", outShape)
	}
	seqLen := int(outShape[1])
	hiddenSize := int(outShape[2])
	data := hidden.GetData()

	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = meanPool(data[i*seqLen*hiddenSize:(i+1)*seqLen*hiddenSize],
			attentionMask[i*maxLen:(i+1)*maxLen], seqLen, hiddenSize)
		if len(vectors[i]) == 0 {
			return nil, ai.ErrEmptyEmbedding
		}
	}
	return vectors, nil
}

// meanPool averages the token vectors weighted by the attention mask and
// normalizes the result to unit length.
func meanPool(hidden []float32, mask []int64, seqLen, hiddenSize int) []float32 {
	pooled := make([]float32, hiddenSize)
	var count float32
	for t := 0; t < seqLen && t < len(mask); t++ {
		if mask[t] == 0 {
			continue
		}
		count++
		row := hidden[t*hiddenSize : (t+1)*hiddenSize]
		for d, v := range row {
			pooled[d] += v
		}
	}
	if count == 0 {
		return pooled
	}

	var norm float64
	for d := range pooled {
		pooled[d] /= count
		norm += float64(pooled[d]) * float64(pooled[d])
	}
	if norm > 0 {
		inv := float32(1.0 / math.Sqrt(norm))
		for d := range pooled {
			pooled[d] *= inv
		}
	}
	return pooled
}
