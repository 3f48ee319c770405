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

package condition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openartifacts/artifactlib/pkg/knowledge"
)

func testStore() *knowledge.Base {
	kb := knowledge.NewBase()
	kb.SetAttribute("os", "Windows")
	kb.SetAttribute("os_major_version", "10")
	kb.AddGroupRecord("users", map[string]string{
		"username": "alice",
		"homedir":  "/home/alice",
	})
	kb.AddGroupRecord("users", map[string]string{
		"username": "bob",
	})
	return kb
}

func TestCheck_ScalarEquality(t *testing.T) {
	matched, err := Check(`os == "Windows"`, testStore())
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = Check(`os == "Linux"`, testStore())
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestCheck_BooleanOperators(t *testing.T) {
	matched, err := Check(`os == "Windows" && os_major_version == "10"`, testStore())
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = Check(`os == "Linux" || os_major_version == "10"`, testStore())
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestCheck_GroupAccess(t *testing.T) {
	matched, err := Check(`users[0].username == "alice"`, testStore())
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestCheck_AbsentAttributeIsNull(t *testing.T) {
	// Equality against null is false, not an error.
	matched, err := Check(`nonexistent == "anything"`, testStore())
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestCheck_ParseError(t *testing.T) {
	_, err := Check(`os == `, testStore())

	var condErr *ConditionError
	require.Error(t, err)
	require.True(t, errors.As(err, &condErr))
	assert.Contains(t, condErr.Error(), "parse failed")
}

func TestCheck_NonBooleanResult(t *testing.T) {
	_, err := Check(`os`, testStore())

	var condErr *ConditionError
	require.True(t, errors.As(err, &condErr))
	assert.Contains(t, condErr.Error(), "boolean")
}

func TestCheck_EvaluationError(t *testing.T) {
	// Ordered comparison against null is an evaluation diagnostic.
	_, err := Check(`nonexistent > 3`, testStore())

	var condErr *ConditionError
	require.True(t, errors.As(err, &condErr))
}

func TestParse_CompileOnceMatchMany(t *testing.T) {
	compiled, err := Parse(`os == "Windows"`)
	require.NoError(t, err)
	assert.Equal(t, `os == "Windows"`, compiled.Src())

	windows := testStore()
	linux := knowledge.NewBase()
	linux.SetAttribute("os", "Linux")

	matched, err := compiled.Matches(windows)
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = compiled.Matches(linux)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestCheck_CaseInsensitiveStoreLookup(t *testing.T) {
	kb := knowledge.NewBase()
	kb.SetAttribute("OS", "Windows")

	matched, err := Check(`os == "Windows"`, kb)
	require.NoError(t, err)
	assert.True(t, matched)
}
