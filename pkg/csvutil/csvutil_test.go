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

package csvutil

import "testing"

func TestWriter_Empty(t *testing.T) {
	writer := NewWriter()

	if got := writer.Content(); got != "" {
		t.Errorf("Content() = %q; want empty", got)
	}
}

func TestWriter_SingleRow(t *testing.T) {
	writer := NewWriter()
	if err := writer.WriteRow([]string{"foo", "bar", "baz"}); err != nil {
		t.Fatalf("WriteRow failed: %v", err)
	}

	if got, want := writer.Content(), "foo,bar,baz\n"; got != want {
		t.Errorf("Content() = %q; want %q", got, want)
	}
}

func TestWriter_MultipleRows(t *testing.T) {
	writer := NewWriter()
	for _, row := range [][]string{
		{"foo", "quux"},
		{"bar", "norf"},
		{"baz", "thud"},
	} {
		if err := writer.WriteRow(row); err != nil {
			t.Fatalf("WriteRow failed: %v", err)
		}
	}

	if got, want := writer.Content(), "foo,quux\nbar,norf\nbaz,thud\n"; got != want {
		t.Errorf("Content() = %q; want %q", got, want)
	}
}

func TestWriter_Unicode(t *testing.T) {
	writer := NewWriter()
	if err := writer.WriteRow([]string{"jodła", "świerk", "dąb"}); err != nil {
		t.Fatalf("WriteRow failed: %v", err)
	}

	if got, want := writer.Content(), "jodła,świerk,dąb\n"; got != want {
		t.Errorf("Content() = %q; want %q", got, want)
	}
}

func TestWriter_CustomDelimiter(t *testing.T) {
	writer := NewWriter(WithDelimiter('|'))
	if err := writer.WriteRow([]string{"foo", "bar", "baz"}); err != nil {
		t.Fatalf("WriteRow failed: %v", err)
	}

	if got, want := writer.Content(), "foo|bar|baz\n"; got != want {
		t.Errorf("Content() = %q; want %q", got, want)
	}
}

func TestDictWriter_Empty(t *testing.T) {
	writer := NewDictWriter([]string{"foo", "bar", "baz"})

	if got := writer.Content(); got != "" {
		t.Errorf("Content() = %q; want empty", got)
	}
}

func TestDictWriter_OrderFollowsColumns(t *testing.T) {
	writer := NewDictWriter([]string{"1", "2", "3"})
	rows := []map[string]string{
		{"1": "a", "2": "b", "3": "c"},
		{"3": "d", "2": "e", "1": "f"},
	}
	for _, row := range rows {
		if err := writer.WriteRow(row); err != nil {
			t.Fatalf("WriteRow failed: %v", err)
		}
	}

	if got, want := writer.Content(), "a,b,c\nf,e,d\n"; got != want {
		t.Errorf("Content() = %q; want %q", got, want)
	}
}

func TestDictWriter_WriteHeader(t *testing.T) {
	writer := NewDictWriter([]string{"A", "B", "C"})
	if err := writer.WriteHeader(); err != nil {
		t.Fatalf("WriteHeader failed: %v", err)
	}
	if err := writer.WriteRow(map[string]string{"A": "foo", "B": "bar", "C": "baz"}); err != nil {
		t.Fatalf("WriteRow failed: %v", err)
	}

	if got, want := writer.Content(), "A,B,C\nfoo,bar,baz\n"; got != want {
		t.Errorf("Content() = %q; want %q", got, want)
	}
}

func TestDictWriter_CustomDelimiter(t *testing.T) {
	writer := NewDictWriter([]string{"1", "2", "3"}, WithDelimiter(' '))
	if err := writer.WriteRow(map[string]string{"1": "a", "2": "b", "3": "c"}); err != nil {
		t.Fatalf("WriteRow failed: %v", err)
	}

	if got, want := writer.Content(), "a b c\n"; got != want {
		t.Errorf("Content() = %q; want %q", got, want)
	}
}

func TestDictWriter_MissingColumn(t *testing.T) {
	writer := NewDictWriter([]string{"foo", "bar", "baz"})

	err := writer.WriteRow(map[string]string{"foo": "quux", "bar": "norf"})
	if err == nil {
		t.Error("expected error for row missing a column")
	}
}
