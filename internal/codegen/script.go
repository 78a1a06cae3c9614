package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/posiumhq/posium-codegen/internal/entity"

	"github.com/google/uuid"
)

// Script assembles a full runnable Playwright test for the plan: import
// line, the two named timeout constants, one declaration per {{variable}}
// marker found in the plan, and one wrapped block per step.
func (e *Emitter) Script(plan *entity.Plan, runID uuid.UUID) string {
	var b strings.Builder

	fmt.Fprintf(&b, "// Plan: %s (generation %s)\n", plan.Name, runID)
	b.WriteString("import { test, expect } from '@playwright/test';\n\n")
	fmt.Fprintf(&b, "const %s = %d;\n", DefaultTimeoutName, e.defaultTimeout)
	fmt.Fprintf(&b, "const %s = %d;\n", ConditionalTimeoutName, e.conditionalTimeout)

	if vars := collectVariables(plan.Steps); len(vars) > 0 {
		b.WriteString("\n")

		for _, name := range vars {
			fmt.Fprintf(&b, "const %s = process.env.%s ?? '';\n", name, strings.ToUpper(name))
		}
	}

	fmt.Fprintf(&b, "\ntest(%s, async ({ page }) => {\n", quote(e.testName))

	for i, step := range plan.Steps {
		if i > 0 {
			b.WriteString("\n")
		}

		if step.Description != "" {
			fmt.Fprintf(&b, "  // Step %d: %s\n", step.Index, step.Description)
		}

		for _, line := range e.StepStatements(step, ModeScript) {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("});\n")

	return b.String()
}

// Raw emits only the statement stream, with literal timeout numbers, for
// inline composition by the caller.
func (e *Emitter) Raw(steps []entity.PlanStep) string {
	var b strings.Builder

	for i, step := range steps {
		if i > 0 {
			b.WriteString("\n")
		}

		for _, line := range e.StepStatements(step, ModeRaw) {
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}

// collectVariables returns every distinct {{name}} identifier in plan
// order.
func collectVariables(steps []entity.PlanStep) []string {
	seen := make(map[string]bool)
	var names []string

	var walk func(v any)
	walk = func(v any) {
		switch val := v.(type) {
		case string:
			if name, ok := VariableName(val); ok && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		case []any:
			for _, item := range val {
				walk(item)
			}
		case map[string]any:
			keys := make([]string, 0, len(val))
			for k := range val {
				keys = append(keys, k)
			}

			sort.Strings(keys)

			for _, k := range keys {
				walk(val[k])
			}
		}
	}

	for _, step := range steps {
		if step.Command == nil || step.Command.Details == nil {
			continue
		}

		walk(step.Command.Details.Args)
		walk(step.Command.Details.Value)
	}

	return names
}
