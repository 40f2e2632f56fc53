// Package view renders query results for the terminal: a table by
// default, or the raw data as JSON or YAML.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"catalog-admin/internal/query"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	Table Format = "table"
	JSON  Format = "json"
	YAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", Table:
		return Table, nil
	case JSON, YAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

const (
	LoadingText       = "Loading..."
	DefaultErrorTitle = "Something went wrong"
	DefaultErrorText  = "An unexpected error occurred. Please try again."
	RetryText         = "Try Again"
	placeholder       = "—"
)

type Renderer struct {
	w      io.Writer
	format Format
}

func New(w io.Writer, format Format) *Renderer {
	if format == "" {
		format = Table
	}
	return &Renderer{w: w, format: format}
}

func (r *Renderer) Format() Format {
	return r.format
}

func (r *Renderer) Loading() error {
	_, err := fmt.Fprintln(r.w, LoadingText)
	return err
}

// ErrorPage is shown when a query failed. Retry adds the "Try Again" hint
// for pages that can refetch.
type ErrorPage struct {
	Title   string
	Message string
	Retry   bool
}

func (r *Renderer) Error(page ErrorPage) error {
	if page.Title == "" {
		page.Title = DefaultErrorTitle
	}
	if page.Message == "" {
		page.Message = DefaultErrorText
	}

	var b strings.Builder
	fmt.Fprintln(&b, page.Title)
	fmt.Fprintln(&b, page.Message)
	if page.Retry {
		fmt.Fprintf(&b, "[%s]\n", RetryText)
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Data writes v as JSON or YAML. In table format it is a no-op that
// reports false.
func (r *Renderer) Data(v any) (bool, error) {
	switch r.format {
	case JSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

// Columns lays out one list page.
type Columns[T any] struct {
	Headers []string
	Row     func(T) []string
	// Empty is the single row shown when the list has no items.
	Empty string
	// ErrorTitle overrides the default error title.
	ErrorTitle string
	// Fallback is the error message when the failure carries none.
	Fallback string
}

// List renders a list page from its query state. A failed refetch keeps
// showing the last good list.
func List[T any](r *Renderer, res query.Result[[]T], cols Columns[T]) error {
	switch {
	case res.IsPending():
		return r.Loading()
	case res.IsError() && res.Data == nil:
		return r.Error(ErrorPage{
			Title:   cols.ErrorTitle,
			Message: res.Message(cols.Fallback),
			Retry:   true,
		})
	}

	items := res.Data
	if items == nil {
		items = []T{}
	}
	if ok, err := r.Data(items); ok {
		return err
	}

	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(cols.Headers, "\t"))
	if len(items) == 0 {
		fmt.Fprintln(tw, cols.Empty)
	}
	for _, item := range items {
		fmt.Fprintln(tw, strings.Join(cols.Row(item), "\t"))
	}
	return tw.Flush()
}

// Field is one line of a detail view.
type Field struct {
	Label string
	Value string
}

// Detail renders a single record: fields as aligned "label: value" lines in
// table format, v itself otherwise.
func Detail(r *Renderer, v any, fields []Field) error {
	if ok, err := r.Data(v); ok {
		return err
	}

	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	for _, f := range fields {
		fmt.Fprintf(tw, "%s:\t%s\n", f.Label, orPlaceholder(f.Value))
	}
	return tw.Flush()
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
