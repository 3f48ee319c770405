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

// Package winenv expands Windows %VAR% environment variable references
// against a knowledge base.
//
// This is single-pass flat substitution, distinct from the %%...%%
// interpolation core: machine-wide variables live as scalar attributes
// named "environ_<var>", per-user variables as fields on records of the
// "users" group. A variable the store cannot supply stays in the string
// unchanged; expansion never fails.
package winenv

import (
	"regexp"
	"strings"

	"github.com/openartifacts/artifactlib/pkg/knowledge"
)

// envVarRegex matches one %VAR% reference and captures the variable name.
var envVarRegex = regexp.MustCompile(`%([^%]+?)%`)

// usersGroup is the group per-user variables are resolved on.
const usersGroup = "users"

// attrPrefix prefixes machine-wide variable names in the store.
const attrPrefix = "environ_"

// ExpandEnvironmentVariables expands machine-wide %VAR% references, looking
// each variable up as the scalar attribute "environ_<lower(var)>".
// Unexpandable references are left as they were.
func ExpandEnvironmentVariables(s string, kb knowledge.Store) string {
	return expand(s, func(name string) (string, bool) {
		return kb.GetAttribute(attrPrefix + name)
	})
}

// ExpandUserEnvironmentVariables expands per-user %VAR% references against
// the user record selected by sid or, failing that, by username. Variable
// names map directly to record fields (e.g. %TEMP% reads the "temp" field).
// With no matching user every reference is left as it was.
func ExpandUserEnvironmentVariables(s string, kb knowledge.Store, sid, username string) string {
	user, found := knowledge.FindRecord(kb, usersGroup, "sid", sid)
	if !found {
		user, found = knowledge.FindRecord(kb, usersGroup, "username", username)
	}
	return expand(s, func(name string) (string, bool) {
		if !found {
			return "", false
		}
		return user.GetField(name)
	})
}

// expand walks the %VAR% references of s left to right, substituting the
// lookup result or restoring the original reference on a miss.
func expand(s string, lookup func(name string) (string, bool)) string {
	var sb strings.Builder
	offset := 0
	for _, match := range envVarRegex.FindAllStringSubmatchIndex(s, -1) {
		sb.WriteString(s[offset:match[0]])
		offset = match[1]

		name := s[match[2]:match[3]]
		if value, ok := lookup(strings.ToLower(name)); ok {
			sb.WriteString(value)
		} else {
			sb.WriteString("%" + name + "%")
		}
	}
	sb.WriteString(s[offset:])
	return sb.String()
}

// machineVars maps environment variable names to their environ_* store
// attributes. programfiles and allusersprofile additionally feed the
// programw6432 and programdata aliases.
var machineVars = []struct {
	name string
	attr string
}{
	{"path", "environ_path"},
	{"temp", "environ_temp"},
	{"systemroot", "environ_systemroot"},
	{"windir", "environ_windir"},
	{"programfiles", "environ_programfiles"},
	{"programw6432", "environ_programfiles"},
	{"programfiles(x86)", "environ_programfilesx86"},
	{"systemdrive", "environ_systemdrive"},
	{"allusersprofile", "environ_allusersprofile"},
	{"programdata", "environ_allusersprofile"},
	{"allusersappdata", "environ_allusersappdata"},
}

// userVars are the per-user record fields contributing to the environment
// map, one value per user that has the field.
var userVars = []string{"appdata", "localappdata", "userdomain", "userprofile"}

// EnvironmentMap returns the known Windows environment variables and their
// values: machine-wide variables carry a single value, per-user variables
// one value per user record that supplies the field, in record order.
// Variables the store cannot supply are omitted.
func EnvironmentMap(kb knowledge.Store) map[string][]string {
	environ := make(map[string][]string)

	for _, v := range machineVars {
		if value, ok := kb.GetAttribute(v.attr); ok {
			environ[v.name] = append(environ[v.name], value)
		}
	}

	for _, user := range kb.GetGroup(usersGroup) {
		for _, field := range userVars {
			if value, ok := user.GetField(field); ok {
				environ[field] = append(environ[field], value)
			}
		}
	}

	return environ
}
