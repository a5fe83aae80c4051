// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codecheck runs the heuristic checks applied to generated snippets.
//
// The checks are advisory. Only python-tagged snippets get a real syntax
// check (a tree-sitter parse); every other language is scanned for line
// length, comment density and duplicated lines only.
package codecheck

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/MKhiriev/go-code-gen/models"
)

// Thresholds of the heuristic rules.
const (
	MinSignificantChars    = 10
	MaxLineLength          = 100
	MinCommentLines        = 3
	CommentCheckLineCount  = 20
	MaxDuplicateLines      = 5
	pythonLanguage         = "python"
	pythonCommentPrefix    = "#"
	lineCommentMarker      = "//"
	blockCommentOpenMarker = "/*"
)

// Messages reported by the scanner.
const (
	MsgTooShort        = "Code is too short or empty"
	MsgAddComments     = "Consider adding more comments for better code documentation"
	MsgDuplicateCode   = "Duplicate code detected"
	msgLineTooLong     = "Line %d exceeds %d characters"
	msgPythonSyntax    = "Python syntax error at line %d, column %d: %s"
	msgPythonParseFail = "Python syntax check failed: %v"
	msgExpectedIndent  = "expected an indented block"
)

// Scanner checks snippets. The zero value is ready to use and is safe for
// concurrent use: every python scan allocates its own parser.
type Scanner struct{}

// NewScanner returns a [Scanner].
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan applies every rule to code and returns the combined report. Errors
// make the report invalid; warnings and suggestions never do.
func (s *Scanner) Scan(ctx context.Context, code, language string) models.ValidationReport {
	report := models.ValidationReport{
		Errors:      models.StringList{},
		Warnings:    models.StringList{},
		Suggestions: models.StringList{},
	}

	if significantChars(code) < MinSignificantChars {
		report.Errors = append(report.Errors, MsgTooShort)
	}

	isPython := strings.EqualFold(strings.TrimSpace(language), pythonLanguage)
	if isPython {
		if msg := checkPythonSyntax(ctx, code); msg != "" {
			report.Errors = append(report.Errors, msg)
		}
	}

	lines := strings.Split(code, "\n")

	for i, line := range lines {
		if utf8.RuneCountInString(line) > MaxLineLength {
			report.Warnings = append(report.Warnings, fmt.Sprintf(msgLineTooLong, i+1, MaxLineLength))
		}
	}

	if countCommentLines(lines, isPython) < MinCommentLines && len(lines) > CommentCheckLineCount {
		report.Suggestions = append(report.Suggestions, MsgAddComments)
	}

	if duplicateLines(lines) > MaxDuplicateLines {
		report.Warnings = append(report.Warnings, MsgDuplicateCode)
	}

	report.IsValid = len(report.Errors) == 0
	return report
}

func significantChars(code string) int {
	n := 0
	for _, r := range code {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

func countCommentLines(lines []string, isPython bool) int {
	n := 0
	for _, line := range lines {
		if isPython {
			if strings.HasPrefix(strings.TrimSpace(line), pythonCommentPrefix) {
				n++
			}
			continue
		}
		if strings.Contains(line, lineCommentMarker) || strings.Contains(line, blockCommentOpenMarker) {
			n++
		}
	}
	return n
}

// duplicateLines is the number of lines minus the number of distinct lines.
func duplicateLines(lines []string) int {
	distinct := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		distinct[line] = struct{}{}
	}
	return len(lines) - len(distinct)
}

// checkPythonSyntax returns an error message for the first ERROR or MISSING
// node of the parse tree or for the first compound statement left without an
// indented body, and "" when the snippet parses cleanly.
func checkPythonSyntax(ctx context.Context, code string) string {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, []byte(code))
	if err != nil {
		return fmt.Sprintf(msgPythonParseFail, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		if point, found := emptyBody(root); found {
			return fmt.Sprintf(msgPythonSyntax, point.Row+1, point.Column+1, msgExpectedIndent)
		}
		return ""
	}

	bad := firstErrorNode(root)
	if bad == nil {
		bad = root
	}

	point := bad.StartPoint()
	reason := "invalid syntax"
	if bad.IsMissing() {
		reason = fmt.Sprintf("missing %q", bad.Type())
	}

	return fmt.Sprintf(msgPythonSyntax, point.Row+1, point.Column+1, reason)
}

func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if found := firstErrorNode(child); found != nil {
			return found
		}
	}

	return nil
}

// emptyBody reports where the first compound statement without a body
// expects one. The grammar turns a body that is not indented past its header
// into an empty block followed by top-level statements, which the
// interpreter rejects.
func emptyBody(node *sitter.Node) (sitter.Point, bool) {
	for i := 1; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || child.Type() != "block" || hasStatement(child) {
			continue
		}
		return sitter.Point{Row: node.Child(i - 1).EndPoint().Row + 1}, true
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		if point, found := emptyBody(node.NamedChild(i)); found {
			return point, true
		}
	}

	return sitter.Point{}, false
}

func hasStatement(block *sitter.Node) bool {
	for i := 0; i < int(block.NamedChildCount()); i++ {
		if block.NamedChild(i).Type() != "comment" {
			return true
		}
	}
	return false
}
