package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/models"
)

type fakeProvider struct {
	complete func(ctx context.Context, prompt string) (string, error)
	prompts  []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.complete(ctx, prompt)
}

var sampleRequest = Request{
	Requirements: "sum two numbers",
	Language:     "python",
	Framework:    "none",
}

func TestEngine_NoProviderUsesFallback(t *testing.T) {
	e := NewEngine(nil, logger.Nop())

	res := e.Generate(context.Background(), sampleRequest)

	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, models.StatusGenerated, res.Status)
	assert.Equal(t, FallbackCode(sampleRequest), res.GeneratedCode)
	assert.Equal(t, int64(len(strings.Split(res.GeneratedCode, "\n"))), res.LinesOfCode)
	assert.Equal(t, int64(9), res.LinesOfCode)
	assert.Contains(t, res.GeneratedCode, "# Requirements: sum two numbers")
	assert.Equal(t, "python", res.Language)
	assert.Equal(t, "none", res.Framework)
}

func TestEngine_ProviderSuccess(t *testing.T) {
	p := &fakeProvider{complete: func(context.Context, string) (string, error) {
		return "\n```python\ndef add(a, b):\n    return a + b\n```\n", nil
	}}
	e := NewEngine(p, logger.Nop())

	res := e.Generate(context.Background(), sampleRequest)

	assert.Equal(t, SourceProvider, res.Source)
	assert.Equal(t, "def add(a, b):\n    return a + b", res.GeneratedCode)
	assert.Equal(t, int64(2), res.LinesOfCode)

	require.Len(t, p.prompts, 1)
	assert.Contains(t, p.prompts[0], "sum two numbers")
	assert.Contains(t, p.prompts[0], "in python using the none framework")
}

func TestEngine_ProviderErrorFallsBack(t *testing.T) {
	p := &fakeProvider{complete: func(context.Context, string) (string, error) {
		return "", errors.New("rate limited")
	}}
	e := NewEngine(p, logger.Nop())

	res := e.Generate(context.Background(), sampleRequest)

	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, FallbackCode(sampleRequest), res.GeneratedCode)
	assert.Len(t, p.prompts, 1, "provider is called exactly once")
}

func TestEngine_FencesOnlyFallsBack(t *testing.T) {
	p := &fakeProvider{complete: func(context.Context, string) (string, error) {
		return "   ", nil
	}}

	res := NewEngine(p, logger.Nop()).Generate(context.Background(), sampleRequest)
	assert.Equal(t, SourceFallback, res.Source)
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no fences", in: "x = 1", want: "x = 1"},
		{name: "language fence", in: "```ts\nconst a = 1;\n```", want: "const a = 1;"},
		{name: "bare fence", in: "```\nconst a = 1;\n```", want: "const a = 1;"},
		{name: "surrounding whitespace", in: "  \n```go\nfunc f() {}\n```\n\n", want: "func f() {}"},
		{name: "only leading", in: "```js\nfoo()", want: "foo()"},
		{name: "only trailing", in: "foo()\n```", want: "foo()"},
		{name: "inner fences kept", in: "```md\na\n```\nb\n```", want: "a\n```\nb"},
		{name: "non word info string kept", in: "```c++\nint x;\n```", want: "```c++\nint x;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.in))
		})
	}
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, int64(1), CountLines(""))
	assert.Equal(t, int64(1), CountLines("a"))
	assert.Equal(t, int64(3), CountLines("a\nb\n"))
}
