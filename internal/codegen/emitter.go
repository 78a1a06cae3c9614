package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/posiumhq/posium-codegen/internal/config"
	"github.com/posiumhq/posium-codegen/internal/entity"
)

// Timeout constant names are stable across calls so downstream tooling can
// substitute them literally.
const (
	DefaultTimeoutName     = "DEFAULT_TIMEOUT"
	ConditionalTimeoutName = "CONDITIONAL_TIMEOUT"
)

type Mode int

const (
	// ModeScript emits a full runnable test and references the named
	// timeout constants.
	ModeScript Mode = iota
	// ModeRaw emits only the statement stream with literal timeouts.
	ModeRaw
)

type assertClass int

const (
	assertUnknown assertClass = iota
	assertBare
	assertValued
	assertPaired
	assertScreenshot
	assertPage
)

var assertDispatch = map[string]assertClass{
	"toBeVisible":     assertBare,
	"toBeHidden":      assertBare,
	"toBeEnabled":     assertBare,
	"toBeDisabled":    assertBare,
	"toBeChecked":     assertBare,
	"toBeAttached":    assertBare,
	"toBeEmpty":       assertBare,
	"toBeFocused":     assertBare,
	"toBeInViewport":  assertBare,
	"toHaveText":      assertValued,
	"toContainText":   assertValued,
	"toHaveValue":     assertValued,
	"toHaveValues":    assertValued,
	"toHaveCount":     assertValued,
	"toHaveClass":     assertValued,
	"toHaveId":        assertValued,
	"toHaveRole":      assertValued,
	"toHaveAttribute": assertPaired,
	"toHaveCSS":       assertPaired,
	"toHaveScreenshot": assertScreenshot,
	"toHaveURL":       assertPage,
	"toHaveTitle":     assertPage,
}

// Emitter deterministically compiles plan steps into Playwright TypeScript
// statements. It is pure; all page probing happens before emission.
type Emitter struct {
	defaultTimeout     int
	conditionalTimeout int
	testName           string
}

func NewEmitter(conf *config.CodegenConfig) *Emitter {
	return &Emitter{
		defaultTimeout:     conf.DefaultTimeout,
		conditionalTimeout: conf.ConditionalTimeout,
		testName:           conf.TestName,
	}
}

// StepStatements emits the statement block for one step. Conditional steps
// come back wrapped so a later runtime failure cannot abort the rest of the
// sequence.
func (e *Emitter) StepStatements(step entity.PlanStep, mode Mode) []string {
	var lines []string

	switch step.Type {
	case entity.StepTypeGoto:
		lines = e.gotoStatements(step)
	case entity.StepTypeAct:
		lines = e.actStatements(step, mode)
	case entity.StepTypeAssert:
		lines = e.assertStatements(step, mode)
	default:
		lines = []string{fmt.Sprintf("// Step %d: unknown step type %q", step.Index, string(step.Type))}
	}

	if step.Conditional && hasCode(lines) {
		lines = wrapConditional(step.Index, lines)
	}

	return lines
}

func (e *Emitter) gotoStatements(step entity.PlanStep) []string {
	details, ok := commandDetails(step)
	if !ok {
		return []string{fmt.Sprintf("// Step %d: navigation command missing or failed, no code generated", step.Index)}
	}

	url := details.URL
	if url == "" {
		if s, isStr := details.Args.(string); isStr {
			url = s
		}
	}

	if url == "" {
		return []string{fmt.Sprintf("// Step %d: navigation recorded without a URL", step.Index)}
	}

	return []string{fmt.Sprintf("await page.goto(%s);", FormatArg(url))}
}

func (e *Emitter) actStatements(step entity.PlanStep, mode Mode) []string {
	details, ok := commandDetails(step)
	if !ok {
		return []string{fmt.Sprintf("// Step %d: action command missing or failed, no code generated", step.Index)}
	}

	if details.Method == "goto" {
		return e.gotoStatements(step)
	}

	if details.Selector == "" && details.XPath == "" {
		return []string{fmt.Sprintf("// Step %d: action recorded without a locator", step.Index)}
	}

	locVar := fmt.Sprintf("step%d", step.Index)
	timeout := e.timeoutToken(step.Conditional, mode)

	lines := []string{
		fmt.Sprintf("const %s = %s;", locVar, e.locatorExpr(details)),
		fmt.Sprintf("await %s.waitFor({ state: 'visible', timeout: %s });", locVar, timeout),
	}

	switch details.Method {
	case "click":
		lines = append(lines, fmt.Sprintf("await %s.click();", locVar))
	case "type", "fill":
		lines = append(lines, fmt.Sprintf("await %s.fill(%s);", locVar, FormatArg(details.Args)))
	case "selectOption":
		lines = append(lines, fmt.Sprintf("await %s.selectOption(%s);", locVar, FormatArg(details.Args)))
	case "check":
		lines = append(lines, fmt.Sprintf("await %s.check();", locVar))
	case "uncheck":
		lines = append(lines, fmt.Sprintf("await %s.uncheck();", locVar))
	default:
		lines = append(lines, fmt.Sprintf("await %s.%s(%s);", locVar, details.Method, FormatCallArgs(details.Args)))
	}

	return lines
}

func (e *Emitter) assertStatements(step entity.PlanStep, mode Mode) []string {
	details, ok := commandDetails(step)
	if !ok {
		return []string{fmt.Sprintf("// Step %d: assertion command missing or failed, no code generated", step.Index)}
	}

	timeout := e.timeoutToken(step.Conditional, mode)
	class := assertDispatch[details.Method]

	if class == assertPage {
		return []string{fmt.Sprintf("await expect(page).%s(%s, { timeout: %s });",
			details.Method, FormatArg(details.Value), timeout)}
	}

	if details.XPath == "" && details.Selector == "" {
		// Only url/title assertions can run without an element locator.
		return []string{fmt.Sprintf("// Unsupported assertion: %s", details.Method)}
	}

	if class == assertUnknown {
		return []string{fmt.Sprintf("// Unsupported assertion: %s", details.Method)}
	}

	locVar := fmt.Sprintf("step%d", step.Index)

	lines := []string{
		fmt.Sprintf("const %s = %s;", locVar, e.locatorExpr(details)),
		fmt.Sprintf("await %s.waitFor({ state: 'visible', timeout: %s });", locVar, timeout),
	}

	switch class {
	case assertBare:
		lines = append(lines, fmt.Sprintf("await expect(%s).%s({ timeout: %s });", locVar, details.Method, timeout))
	case assertValued:
		lines = append(lines, fmt.Sprintf("await expect(%s).%s(%s, { timeout: %s });",
			locVar, details.Method, FormatArg(details.Value), timeout))
	case assertPaired:
		name, value, ok := splitPair(details.Value)
		if !ok {
			return []string{fmt.Sprintf("// Invalid parameters for assertion: %s", details.Method)}
		}

		lines = append(lines, fmt.Sprintf("await expect(%s).%s(%s, %s, { timeout: %s });",
			locVar, details.Method, FormatArg(name), FormatArg(value), timeout))
	case assertScreenshot:
		lines = append(lines, fmt.Sprintf("await expect(%s).toHaveScreenshot({ timeout: %s });", locVar, timeout))
	}

	return lines
}

func (e *Emitter) locatorExpr(details *entity.CommandDetails) string {
	if details.Selector != "" && details.SelectorKind.Valid() && details.SelectorKind != entity.SelectorKindXPath {
		return LocatorExpr(entity.SelectorInfo{
			Selector: details.Selector,
			Kind:     details.SelectorKind,
		})
	}

	return XPathLocatorExpr(details.XPath)
}

func (e *Emitter) timeoutToken(conditional bool, mode Mode) string {
	if mode == ModeScript {
		if conditional {
			return ConditionalTimeoutName
		}

		return DefaultTimeoutName
	}

	if conditional {
		return strconv.Itoa(e.conditionalTimeout)
	}

	return strconv.Itoa(e.defaultTimeout)
}

func commandDetails(step entity.PlanStep) (*entity.CommandDetails, bool) {
	if step.Command == nil || !step.Command.Success || step.Command.Details == nil {
		return nil, false
	}

	return step.Command.Details, true
}

// splitPair parses an "name=value" expected value for attribute and CSS
// property assertions.
func splitPair(value any) (string, string, bool) {
	s, ok := value.(string)
	if !ok {
		return "", "", false
	}

	name, val, found := strings.Cut(s, "=")
	if !found || strings.TrimSpace(name) == "" {
		return "", "", false
	}

	return strings.TrimSpace(name), strings.TrimSpace(val), true
}

func hasCode(lines []string) bool {
	for _, line := range lines {
		if !strings.HasPrefix(line, "//") {
			return true
		}
	}

	return false
}

func wrapConditional(index int, lines []string) []string {
	wrapped := make([]string, 0, len(lines)+4)
	wrapped = append(wrapped, "try {")

	for _, line := range lines {
		wrapped = append(wrapped, "  "+line)
	}

	wrapped = append(wrapped,
		"} catch (error) {",
		fmt.Sprintf("  console.warn('Optional step %d failed:', error);", index),
		"}")

	return wrapped
}
