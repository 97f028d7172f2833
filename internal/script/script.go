// Package script is the thin host-side harness that makes the action verbs
// reachable from a binary: it loads HCL action pipelines and dispatches the
// steps sequentially. It is deliberately not a scripting language — there is
// no control flow here, only an ordered list of action calls.
package script

import (
	"github.com/hashicorp/hcl/v2"
)

// Step is one `action "verb" "name" { ... }` block of a pipeline file.
//
// Args and Options are kept as raw HCL expressions so their evaluation can be
// deferred to dispatch time, when the session's variables and last result are
// known.
type Step struct {
	Verb string
	Name string

	// Args is the tuple expression from the `args` attribute, or nil.
	Args hcl.Expression
	// Options maps option names to their value expressions from the
	// `options` block.
	Options map[string]hcl.Expression

	DeclRange hcl.Range
}

// stepBodySchema describes the content of an action block.
var stepBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "args"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "options"},
	},
}

// fileSchema describes the top level of a pipeline file.
var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "action", LabelNames: []string{"verb", "name"}},
	},
}

// newStep decodes a single action block into a Step.
func newStep(block *hcl.Block) (*Step, hcl.Diagnostics) {
	step := &Step{
		Verb:      block.Labels[0],
		Name:      block.Labels[1],
		DeclRange: block.DefRange,
	}

	content, diags := block.Body.Content(stepBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	if attr, ok := content.Attributes["args"]; ok {
		step.Args = attr.Expr
	}

	for _, optBlock := range content.Blocks {
		if step.Options != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"options\" block",
				Detail:   "Only one \"options\" block is allowed per action.",
				Subject:  &optBlock.DefRange,
			})
			return nil, diags
		}
		attrs, attrDiags := optBlock.Body.JustAttributes()
		diags = append(diags, attrDiags...)
		if attrDiags.HasErrors() {
			return nil, diags
		}
		step.Options = make(map[string]hcl.Expression, len(attrs))
		for name, attr := range attrs {
			step.Options[name] = attr.Expr
		}
	}

	return step, diags
}
