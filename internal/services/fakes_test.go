package services

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/telepatia/internal/audio"
	"github.com/yoockh/telepatia/internal/cache"
	"github.com/yoockh/telepatia/internal/logger"
	"github.com/yoockh/telepatia/internal/metrics"
	"github.com/yoockh/telepatia/internal/models"
	"github.com/yoockh/telepatia/internal/providers/stt"
)

type fakeRepo struct {
	mu   sync.Mutex
	err  error
	docs []models.Message
}

func (r *fakeRepo) Insert(_ context.Context, m *models.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", r.err
	}
	r.docs = append(r.docs, *m)
	return fmt.Sprintf("msg-%d", len(r.docs)), nil
}

type fakeTranscriber struct {
	text  string
	err   error
	calls int
	last  stt.Audio
}

func (f *fakeTranscriber) Transcribe(_ context.Context, a stt.Audio) (string, error) {
	f.calls++
	f.last = a
	return f.text, f.err
}

type fakeGenerator struct {
	out     string
	err     error
	calls   int
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.out, f.err
}

type fakeUploader struct {
	err  error
	name string
	body []byte
}

func (u *fakeUploader) Upload(_ context.Context, objectName, _ string, r io.Reader) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.name = objectName
	u.body, _ = io.ReadAll(r)
	return "gs://bucket/" + objectName, nil
}

type memStore struct {
	mu      sync.Mutex
	entries map[string]cache.Entry
}

func newMemStore() *memStore { return &memStore{entries: map[string]cache.Entry{}} }

func (c *memStore) Lookup(_ context.Context, prompt string) (*cache.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[prompt]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (c *memStore) Save(_ context.Context, prompt string, e cache.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[prompt] = e
	return nil
}

func (c *memStore) Forget(_ context.Context, prompt string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, prompt)
	return nil
}

type downStore struct{ err error }

func (d downStore) Lookup(context.Context, string) (*cache.Entry, error) { return nil, d.err }
func (d downStore) Save(context.Context, string, cache.Entry) error { return d.err }
func (d downStore) Forget(context.Context, string) error { return d.err }

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func testMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry())
}

// toneWAV renders a 440 Hz sine as a 16-bit mono WAV file.
func toneWAV(t *testing.T, seconds float64, amp float32) []byte {
	t.Helper()
	const rate = 16000
	n := int(seconds * rate)
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = amp * float32(math.Sin(2*math.Pi*440*float64(i)/rate))
	}
	b, err := (&audio.Clip{Samples: samples, SampleRate: rate, Channels: 1}).WAV()
	require.NoError(t, err)
	return b
}

func m4aFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "tone.m4a"))
	require.NoError(t, err)
	return data
}

func newTestMessageService(repo *fakeRepo, tr *fakeTranscriber, up *fakeUploader) MessageService {
	d := MessageDeps{
		Messages:    repo,
		Transcriber: tr,
		Metrics:     testMetrics(),
		Log:         logger.Discard(),
	}
	if up != nil {
		d.Archive = up
	}
	return NewMessageService(d)
}
