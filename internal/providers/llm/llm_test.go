package llm

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"cloud.google.com/go/vertexai/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/telepatia/internal/logger"
)

type fakeStream struct {
	chunks []string
	err    error
	calls  atomic.Int32
	closed atomic.Bool
}

func (f *fakeStream) StreamAnswer(ctx context.Context, _ string) (<-chan string, <-chan error) {
	f.calls.Add(1)
	out := make(chan string, len(f.chunks))
	errs := make(chan error, 1)
	for _, c := range f.chunks {
		out <- c
	}
	if f.err != nil {
		errs <- f.err
	}
	close(out)
	close(errs)
	return out, errs
}

func (f *fakeStream) Close() error {
	f.closed.Store(true)
	return nil
}

func TestCollectJoinsAndTrims(t *testing.T) {
	fs := &fakeStream{chunks: []string{"\n{\"sintomas\": ", "[\"fiebre\"]}", "  \n"}}

	out, err := Collect(context.Background(), fs, "prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"sintomas": ["fiebre"]}`, out)
}

func TestCollectReturnsStreamError(t *testing.T) {
	boom := errors.New("resource exhausted")
	fs := &fakeStream{chunks: []string{"partial"}, err: boom}

	_, err := Collect(context.Background(), fs, "prompt")
	require.ErrorIs(t, err, boom)
}

func TestCollectHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Collect(ctx, &fakeStream{chunks: []string{"x"}}, "prompt")
	require.ErrorIs(t, err, context.Canceled)
}

func TestGeneratorRejectsEmptyOutput(t *testing.T) {
	g := NewGenerator(func(context.Context) (Provider, error) {
		return &fakeStream{chunks: []string{"   "}}, nil
	}, time.Second, logger.Discard())

	_, err := g.Generate(context.Background(), "prompt")
	require.ErrorIs(t, err, ErrEmptyOutput)
}

func TestGeneratorLazyInit(t *testing.T) {
	var built atomic.Int32
	fs := &fakeStream{chunks: []string{"{}"}}
	g := NewGenerator(func(context.Context) (Provider, error) {
		built.Add(1)
		return fs, nil
	}, 0, logger.Discard())

	assert.NoError(t, g.Close())
	assert.False(t, fs.closed.Load())

	for i := 0; i < 3; i++ {
		out, err := g.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "{}", out)
	}
	assert.Equal(t, int32(1), built.Load())
	assert.Equal(t, int32(3), fs.calls.Load())

	require.NoError(t, g.Close())
	assert.True(t, fs.closed.Load())
}

func TestGeneratorUnavailableIsSticky(t *testing.T) {
	boom := errors.New("no api key")
	var built atomic.Int32
	g := NewGenerator(func(context.Context) (Provider, error) {
		built.Add(1)
		return nil, boom
	}, 0, logger.Discard())

	require.ErrorIs(t, g.Warm(context.Background()), ErrUnavailable)
	_, err := g.Generate(context.Background(), "prompt")
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), built.Load())
}

func TestAnswerTextFirstCandidateOnly(t *testing.T) {
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
		{Content: &genai.Content{Parts: []genai.Part{
			genai.Text(`{"sintomas":`),
			genai.Text(""),
			genai.Blob{MIMEType: "image/png", Data: []byte{1}},
			genai.Text(`["tos"]}`),
		}}},
		{Content: &genai.Content{Parts: []genai.Part{genai.Text("second")}}},
	}}

	assert.Equal(t, []string{`{"sintomas":`, `["tos"]}`}, answerText(resp))
	assert.Nil(t, answerText(nil))
	assert.Nil(t, answerText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))
}

func TestClassifyBlocked(t *testing.T) {
	blocked := &genai.BlockedError{PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockedReasonSafety}}

	err := classify(blocked)
	assert.ErrorIs(t, err, ErrBlocked)
	assert.Contains(t, err.Error(), "blocked")

	other := errors.New("rpc error: code = Unavailable")
	assert.Same(t, other, classify(other))
}

func TestNewVertexGeminiRequiresProject(t *testing.T) {
	_, err := NewVertexGemini(context.Background(), " ", "us-central1", "")
	assert.Error(t, err)
}
