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

// Package condition evaluates boolean filter expressions against a
// knowledge base, deciding whether a pattern or artifact applies to it at
// all.
//
// The expression language is HCL: a condition like
//
//	os == "Windows" && os_major_version == "10"
//
// is parsed once and can be matched against many stores. This package is a
// narrow adapter: all parsing and evaluation belongs to the HCL engine, and
// every engine failure is translated into a ConditionError. Condition
// errors are never downgraded to logging; a malformed condition is a broken
// definition, not missing runtime data.
package condition

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/openartifacts/artifactlib/pkg/knowledge"
)

// CompiledCondition is a parsed condition ready for repeated evaluation.
type CompiledCondition struct {
	src  string
	expr hclsyntax.Expression
}

// Parse compiles a condition expression. A parse failure returns a
// ConditionError wrapping the engine diagnostics.
func Parse(text string) (*CompiledCondition, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(text), "condition", hcl.InitialPos)
	if diags.HasErrors() {
		conditionsTotal.WithLabelValues(outcomeError).Inc()
		return nil, NewConditionError(text, "parse failed", diags)
	}
	return &CompiledCondition{src: text, expr: expr}, nil
}

// Src returns the original condition text.
func (c *CompiledCondition) Src() string {
	return c.src
}

// Matches evaluates the condition against a knowledge base. The expression
// must produce a boolean; evaluation diagnostics and non-boolean results
// are ConditionErrors.
func (c *CompiledCondition) Matches(kb knowledge.Store) (bool, error) {
	val, diags := c.expr.Value(c.evalContext(kb))
	if diags.HasErrors() {
		conditionsTotal.WithLabelValues(outcomeError).Inc()
		return false, NewConditionError(c.src, "evaluation failed", diags)
	}
	if val.IsNull() || !val.IsKnown() || !val.Type().Equals(cty.Bool) {
		conditionsTotal.WithLabelValues(outcomeError).Inc()
		return false, NewConditionError(c.src, "condition did not produce a boolean", nil)
	}

	if val.True() {
		conditionsTotal.WithLabelValues(outcomeMatched).Inc()
		return true, nil
	}
	conditionsTotal.WithLabelValues(outcomeUnmatched).Inc()
	return false, nil
}

// Check parses and evaluates a condition in one step.
func Check(text string, kb knowledge.Store) (bool, error) {
	compiled, err := Parse(text)
	if err != nil {
		return false, err
	}
	return compiled.Matches(kb)
}

// evalContext builds the variable scope for one evaluation. Only the names
// the expression actually references are looked up: scalar attributes
// become strings, groups become tuples of per-record objects, and names the
// store cannot supply become null. Equality against null is simply false;
// ordered comparison against null surfaces as an evaluation diagnostic.
func (c *CompiledCondition) evalContext(kb knowledge.Store) *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, traversal := range c.expr.Variables() {
		name := traversal.RootName()
		if _, seen := vars[name]; seen {
			continue
		}
		vars[name] = subjectValue(kb, name)
	}
	return &hcl.EvalContext{Variables: vars}
}

// subjectValue resolves one root variable name on the store. Lookups are
// case-insensitive like everywhere else; the variable keeps the spelling
// used in the condition text.
func subjectValue(kb knowledge.Store, name string) cty.Value {
	if value, ok := kb.GetAttribute(name); ok {
		return cty.StringVal(value)
	}

	if records := kb.GetGroup(name); len(records) > 0 {
		elems := make([]cty.Value, 0, len(records))
		for _, record := range records {
			elems = append(elems, recordValue(record))
		}
		return cty.TupleVal(elems)
	}

	// Typed null keeps equality against absent names a plain false
	// instead of an unknown result.
	return cty.NullVal(cty.String)
}

// fieldLister is implemented by records that can enumerate their fields.
// knowledge.MapRecord implements it; records that cannot enumerate appear
// as empty objects.
type fieldLister interface {
	Fields() []string
}

func recordValue(record knowledge.Record) cty.Value {
	lister, ok := record.(fieldLister)
	if !ok {
		return cty.EmptyObjectVal
	}

	attrs := make(map[string]cty.Value)
	for _, field := range lister.Fields() {
		if value, ok := record.GetField(field); ok {
			attrs[field] = cty.StringVal(value)
		}
	}
	if len(attrs) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(attrs)
}
