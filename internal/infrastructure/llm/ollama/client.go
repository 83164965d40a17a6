// Package ollama implements the embedding capability against an Ollama
// server. Embedding lookups are blocking calls with no internal timeout;
// callers bound latency through the request context.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	embedModel string
	httpClient *http.Client
}

func New(baseURL, embedModel string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		embedModel: embedModel,
		httpClient: &http.Client{},
	}
}

type Embedder struct {
	client   *Client
	executor *resilience.Executor
}

func NewEmbedder(client *Client) *Embedder {
	return &Embedder{client: client}
}

// NewEmbedderWithExecutor applies retries and a circuit breaker around the
// embedding calls.
func NewEmbedderWithExecutor(client *Client, executor *resilience.Executor) *Embedder {
	return &Embedder{client: client, executor: executor}
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	request := map[string]any{
		"model": e.client.embedModel,
		"input": texts,
	}
	var response struct {
		Embeddings [][]float32 `json:"embeddings"`
	}

	call := func(callCtx context.Context) error {
		return e.client.postJSON(callCtx, "/api/embed", request, &response, "embed")
	}

	var err error
	if e.executor != nil {
		err = e.executor.Execute(ctx, "ollama.embed", call, classifyEmbedError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, wrapUnavailableIfNeeded("embed texts", err)
	}

	if len(response.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embed texts: expected %d vectors, got %d", len(texts), len(response.Embeddings))
	}
	return response.Embeddings, nil
}
