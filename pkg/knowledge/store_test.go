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

package knowledge

import (
	"reflect"
	"testing"
)

func TestBase_AttributeLookupIsCaseInsensitive(t *testing.T) {
	kb := NewBase()
	kb.SetAttribute("OS", "Windows")

	value, ok := kb.GetAttribute("os")
	if !ok || value != "Windows" {
		t.Errorf("GetAttribute(os) = %q, %v; want Windows, true", value, ok)
	}
	if _, ok := kb.GetAttribute("Os"); !ok {
		t.Error("expected mixed-case lookup to succeed")
	}
}

func TestBase_EmptyAttributeIsAbsent(t *testing.T) {
	kb := NewBase()
	kb.SetAttribute("os", "")

	if _, ok := kb.GetAttribute("os"); ok {
		t.Error("expected empty attribute to report absent")
	}
}

func TestBase_MissingAttribute(t *testing.T) {
	kb := NewBase()

	if _, ok := kb.GetAttribute("nope"); ok {
		t.Error("expected missing attribute to report absent")
	}
}

func TestBase_GroupPreservesInsertionOrder(t *testing.T) {
	kb := NewBase()
	kb.AddGroupRecord("users", map[string]string{"username": "alice"})
	kb.AddGroupRecord("users", map[string]string{"username": "bob"})
	kb.AddGroupRecord("users", map[string]string{"username": "carol"})

	var names []string
	for _, rec := range kb.GetGroup("Users") {
		name, _ := rec.GetField("username")
		names = append(names, name)
	}
	want := []string{"alice", "bob", "carol"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("group order = %v; want %v", names, want)
	}
}

func TestMapRecord_FieldLookup(t *testing.T) {
	rec := NewMapRecord(map[string]string{
		"Username": "alice",
		"empty":    "",
	})

	if v, ok := rec.GetField("USERNAME"); !ok || v != "alice" {
		t.Errorf("GetField(USERNAME) = %q, %v; want alice, true", v, ok)
	}
	if _, ok := rec.GetField("empty"); ok {
		t.Error("expected empty field to report absent")
	}
	if _, ok := rec.GetField("missing"); ok {
		t.Error("expected missing field to report absent")
	}
}

func TestMapRecord_FieldsSkipsEmptyValues(t *testing.T) {
	rec := NewMapRecord(map[string]string{
		"b":     "2",
		"a":     "1",
		"empty": "",
	})

	want := []string{"a", "b"}
	if got := rec.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %v; want %v", got, want)
	}
}

func TestBase_AttributesAndGroupsSorted(t *testing.T) {
	kb := NewBase()
	kb.SetAttribute("fqdn", "h")
	kb.SetAttribute("os", "Linux")
	kb.AddGroupRecord("users", map[string]string{"username": "a"})
	kb.AddGroupRecord("disks", map[string]string{"device": "sda"})

	if got, want := kb.Attributes(), []string{"fqdn", "os"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Attributes() = %v; want %v", got, want)
	}
	if got, want := kb.Groups(), []string{"disks", "users"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Groups() = %v; want %v", got, want)
	}
}

func TestFindRecord(t *testing.T) {
	kb := NewBase()
	kb.AddGroupRecord("users", map[string]string{"username": "alice", "sid": "S-1"})
	kb.AddGroupRecord("users", map[string]string{"username": "bob", "sid": "S-2"})

	rec, ok := FindRecord(kb, "users", "sid", "S-2")
	if !ok {
		t.Fatal("expected to find record by sid")
	}
	if name, _ := rec.GetField("username"); name != "bob" {
		t.Errorf("found username %q; want bob", name)
	}

	if _, ok := FindRecord(kb, "users", "sid", ""); ok {
		t.Error("expected empty value to match nothing")
	}
	if _, ok := FindRecord(kb, "users", "sid", "S-3"); ok {
		t.Error("expected no match for unknown sid")
	}
}
