// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package generator turns free-text requirements into a code snippet.
//
// The [Engine] asks the configured [adapter.TextProvider] once. Without a
// provider, on a provider error or on an empty completion it returns a
// deterministic comment skeleton instead; provider failures are logged and
// never returned to the caller.
package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-code-gen/internal/adapter"
	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/metrics"
	"github.com/MKhiriev/go-code-gen/models"
)

// Result sources.
const (
	SourceProvider = "provider"
	SourceFallback = "fallback"
)

const promptTemplate = `You are an expert programmer. Generate high-quality, working code in %[1]s using the %[2]s framework.

USER REQUIREMENTS:
%[3]s

INSTRUCTIONS:
1. Generate complete, ready-to-use code
2. Include all necessary imports/dependencies
3. Add comments for complex parts of the code
4. Follow best practices for %[1]s and %[2]s
5. Include basic error handling
6. Make the code modular and reusable
7. Add types/interfaces where appropriate
8. Use modern approaches and patterns

IMPORTANT: Output only clean code, no explanations, no ` + "```" + ` at the beginning or end.`

const fallbackTemplate = `# Code in %s
# Framework: %s
# Requirements: %s

# Implement the functionality according to the requirements
# 1. Create necessary imports/dependencies
# 2. Implement the main logic
# 3. Add error handling
# 4. Test the code`

// Request is the input of one generation.
type Request struct {
	Requirements string
	Language     string
	Framework    string
}

// Result is the output of one generation. Status is always
// [models.StatusGenerated].
type Result struct {
	GeneratedCode string
	Language      string
	Framework     string
	LinesOfCode   int64
	Status        string
	Source        string
}

// Engine generates snippets. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	provider adapter.TextProvider
	logger   *logger.Logger
}

// NewEngine constructs an [Engine]. A nil provider makes every call take the
// fallback path.
func NewEngine(provider adapter.TextProvider, logger *logger.Logger) *Engine {
	return &Engine{provider: provider, logger: logger}
}

// Generate produces a snippet for req. It never fails.
func (e *Engine) Generate(ctx context.Context, req Request) Result {
	log := logger.FromContext(ctx)

	if e.provider == nil {
		log.Debug().Str("func", "*Engine.Generate").Msg("no provider configured, using fallback")
		return e.fallback(req)
	}

	text, err := e.provider.Complete(ctx, BuildPrompt(req))
	if err != nil {
		metrics.ProviderFailuresTotal.WithLabelValues(e.provider.Name()).Inc()
		log.Err(err).
			Str("func", "*Engine.Generate").
			Str("provider", e.provider.Name()).
			Str("language", req.Language).
			Msg("provider call failed, using fallback")
		return e.fallback(req)
	}

	code := StripCodeFences(text)
	if code == "" {
		metrics.ProviderFailuresTotal.WithLabelValues(e.provider.Name()).Inc()
		log.Warn().Str("func", "*Engine.Generate").Str("provider", e.provider.Name()).Msg("provider returned only fences, using fallback")
		return e.fallback(req)
	}

	return newResult(req, code, SourceProvider)
}

func (e *Engine) fallback(req Request) Result {
	return newResult(req, FallbackCode(req), SourceFallback)
}

func newResult(req Request, code, source string) Result {
	metrics.GenerationsTotal.WithLabelValues(source).Inc()

	return Result{
		GeneratedCode: code,
		Language:      req.Language,
		Framework:     req.Framework,
		LinesOfCode:   CountLines(code),
		Status:        models.StatusGenerated,
		Source:        source,
	}
}

// BuildPrompt embeds the request into the fixed instruction prompt.
func BuildPrompt(req Request) string {
	return fmt.Sprintf(promptTemplate, req.Language, req.Framework, req.Requirements)
}

// FallbackCode is the deterministic placeholder for req.
func FallbackCode(req Request) string {
	return fmt.Sprintf(fallbackTemplate, req.Language, req.Framework, req.Requirements)
}

// CountLines returns the number of newline-delimited segments of code.
func CountLines(code string) int64 {
	return int64(strings.Count(code, "\n") + 1)
}

// StripCodeFences trims text and removes one leading "```lang" fence line
// and one trailing "```" fence line.
func StripCodeFences(text string) string {
	code := strings.TrimSpace(text)

	if strings.HasPrefix(code, "```") {
		if nl := strings.IndexByte(code, '\n'); nl >= 0 && isFenceTag(code[3:nl]) {
			code = code[nl+1:]
		}
	}

	code = strings.TrimSuffix(code, "\n```")

	return code
}

// isFenceTag reports whether tag is a valid info string of an opening fence:
// word characters only, possibly empty.
func isFenceTag(tag string) bool {
	for _, r := range tag {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
