package resolve

import (
	"slices"

	"github.com/panyam/flowres/decl"
)

// WhenExhaustivenessChecker decides exhaustiveness from the subject type:
//
//   - a when with an else branch is exhaustive
//   - a Boolean subject needs true and false
//   - an enum subject needs every entry
//   - a nullable subject additionally needs null
//   - a Nothing subject has no values and is always exhaustive
//
// Any other when needs an else branch.  Conditions count when they compare
// the subject with a constant through ==, possibly combined with ||.
type WhenExhaustivenessChecker struct{}

func (c *WhenExhaustivenessChecker) CheckExhaustive(w *decl.WhenExpr) (*decl.WhenExpr, bool) {
	missing := c.missingCases(w)
	w.Exhaustiveness = decl.Exhaustiveness{
		Checked:    true,
		Exhaustive: len(missing) == 0,
		Missing:    missing,
	}
	return w, w.Exhaustiveness.Exhaustive
}

func (c *WhenExhaustivenessChecker) missingCases(w *decl.WhenExpr) []string {
	for _, b := range w.Branches {
		if b != nil && b.IsElse() {
			return nil
		}
	}

	subjectType := w.SubjectType()
	if subjectType == nil || subjectType.IsError() {
		return []string{"else"}
	}
	if subjectType.IsNothing() {
		return nil
	}

	var required []string
	switch {
	case subjectType.IsBoolean():
		required = []string{"true", "false"}
	case subjectType.Tag == decl.TypeTagEnum:
		required = slices.Clone(subjectType.Info.(*decl.EnumDecl).Entries)
	default:
		return []string{"else"}
	}
	if subjectType.CanBeNull() {
		required = append(required, "null")
	}

	covered := map[string]bool{}
	for _, b := range w.Branches {
		if b != nil {
			collectCovered(w, b.Condition, covered)
		}
	}

	var missing []string
	for _, r := range required {
		if !covered[r] {
			missing = append(missing, r)
		}
	}
	return missing
}

func collectCovered(w *decl.WhenExpr, cond decl.Expr, covered map[string]bool) {
	bin, ok := cond.(*decl.BinaryExpr)
	if !ok {
		return
	}
	switch bin.Operator {
	case "||":
		collectCovered(w, bin.Left, covered)
		collectCovered(w, bin.Right, covered)
	case "==":
		if isSubjectOf(w, bin.Left) {
			markConstant(bin.Right, covered)
		} else if isSubjectOf(w, bin.Right) {
			markConstant(bin.Left, covered)
		}
	}
}

func isSubjectOf(w *decl.WhenExpr, e decl.Expr) bool {
	s, ok := e.(*decl.WhenSubjectExpr)
	return ok && s.WhenRef == w.ID()
}

func markConstant(e decl.Expr, covered map[string]bool) {
	switch v := e.(type) {
	case *decl.LiteralExpr:
		switch v.ValueKind {
		case decl.LitBool, decl.LitNull:
			covered[v.Value] = true
		}
	case *decl.MemberAccessExpr:
		if t := v.InferredType(); t != nil && t.Tag == decl.TypeTagEnum {
			covered[v.Member] = true
		}
	}
}
