// Copyright 2025 The OpenArtifacts Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package csvutil provides small in-memory CSV writers for tabular CLI and
// diagnostic output.
package csvutil

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Option configures a Writer or DictWriter.
type Option func(*Writer)

// WithDelimiter sets the field delimiter; the default is a comma.
func WithDelimiter(delimiter rune) Option {
	return func(w *Writer) {
		w.csv.Comma = delimiter
	}
}

// Writer accumulates CSV rows in memory.
type Writer struct {
	buf bytes.Buffer
	csv *csv.Writer
}

// NewWriter creates an empty Writer.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{}
	w.csv = csv.NewWriter(&w.buf)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteRow appends one row.
func (w *Writer) WriteRow(values []string) error {
	return w.csv.Write(values)
}

// Content returns everything written so far.
func (w *Writer) Content() string {
	w.csv.Flush()
	return w.buf.String()
}

// DictWriter writes rows given as maps, in a fixed column order.
type DictWriter struct {
	writer  *Writer
	columns []string
}

// NewDictWriter creates a DictWriter with the given column order.
func NewDictWriter(columns []string, opts ...Option) *DictWriter {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &DictWriter{
		writer:  NewWriter(opts...),
		columns: cols,
	}
}

// WriteHeader writes the column names as a row.
func (w *DictWriter) WriteHeader() error {
	return w.writer.WriteRow(w.columns)
}

// WriteRow appends one row, ordering values by the configured columns. A
// row missing any column is an error.
func (w *DictWriter) WriteRow(row map[string]string) error {
	values := make([]string, 0, len(w.columns))
	for _, column := range w.columns {
		value, ok := row[column]
		if !ok {
			return fmt.Errorf("row is missing column %q", column)
		}
		values = append(values, value)
	}
	return w.writer.WriteRow(values)
}

// Content returns everything written so far.
func (w *DictWriter) Content() string {
	return w.writer.Content()
}
