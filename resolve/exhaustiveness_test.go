package resolve

import (
	"testing"

	"github.com/panyam/flowres/decl"
	"github.com/stretchr/testify/assert"
)

func subjectOfType(tr *decl.Tree, t *decl.Type) *decl.WhenExpr {
	subject := tr.Ident("s")
	subject.SetInferredType(t)
	return tr.When(subject)
}

func enumEntry(tr *decl.Tree, enum *decl.EnumDecl, entry string) *decl.MemberAccessExpr {
	m := tr.Member(tr.Ident(enum.Name), entry)
	m.SetInferredType(decl.EnumType(enum))
	return m
}

func TestExhaustiveness(t *testing.T) {
	checker := &WhenExhaustivenessChecker{}
	tr := decl.NewTree("test")
	color := tr.Enum("Color", "RED", "GREEN", "BLUE")

	tests := []struct {
		name    string
		build   func() *decl.WhenExpr
		missing []string
	}{
		{
			name: "else branch",
			build: func() *decl.WhenExpr {
				w := subjectOfType(tr, decl.IntType)
				return w.AddBranch(tr.Branch(tr.Is(w, tr.IntLit(1)), tr.Block()), tr.Else(tr.Block()))
			},
		},
		{
			name: "int without else",
			build: func() *decl.WhenExpr {
				w := subjectOfType(tr, decl.IntType)
				return w.AddBranch(tr.Branch(tr.Is(w, tr.IntLit(1)), tr.Block()))
			},
			missing: []string{"else"},
		},
		{
			name: "no subject",
			build: func() *decl.WhenExpr {
				return tr.When(nil, tr.Branch(tr.BoolLit(true), tr.Block()))
			},
			missing: []string{"else"},
		},
		{
			name: "boolean",
			build: func() *decl.WhenExpr {
				w := subjectOfType(tr, decl.BooleanType)
				return w.AddBranch(
					tr.Branch(tr.Is(w, tr.BoolLit(true)), tr.Block()),
					tr.Branch(tr.Is(w, tr.BoolLit(false)), tr.Block()))
			},
		},
		{
			name: "boolean missing false",
			build: func() *decl.WhenExpr {
				w := subjectOfType(tr, decl.BooleanType)
				return w.AddBranch(tr.Branch(tr.Is(w, tr.BoolLit(true)), tr.Block()))
			},
			missing: []string{"false"},
		},
		{
			name: "nullable boolean needs null",
			build: func() *decl.WhenExpr {
				w := subjectOfType(tr, decl.BooleanType.WithNullability(true))
				return w.AddBranch(
					tr.Branch(tr.Is(w, tr.BoolLit(true)), tr.Block()),
					tr.Branch(tr.Is(w, tr.BoolLit(false)), tr.Block()))
			},
			missing: []string{"null"},
		},
		{
			name: "enum with or",
			build: func() *decl.WhenExpr {
				w := subjectOfType(tr, decl.EnumType(color))
				either := tr.Binary(tr.Is(w, enumEntry(tr, color, "RED")), "||", tr.Is(w, enumEntry(tr, color, "GREEN")))
				return w.AddBranch(
					tr.Branch(either, tr.Block()),
					tr.Branch(tr.Is(w, enumEntry(tr, color, "BLUE")), tr.Block()))
			},
		},
		{
			name: "enum missing entries",
			build: func() *decl.WhenExpr {
				w := subjectOfType(tr, decl.EnumType(color))
				return w.AddBranch(tr.Branch(tr.Is(w, enumEntry(tr, color, "GREEN")), tr.Block()))
			},
			missing: []string{"RED", "BLUE"},
		},
		{
			name: "nothing subject",
			build: func() *decl.WhenExpr {
				return subjectOfType(tr, decl.NothingType)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := tc.build()
			out, exhaustive := checker.CheckExhaustive(w)
			assert.Same(t, w, out)
			assert.Equal(t, len(tc.missing) == 0, exhaustive)
			assert.Equal(t, tc.missing, w.Exhaustiveness.Missing)
			assert.True(t, w.Exhaustiveness.Checked)
			assert.Equal(t, exhaustive, w.IsProperlyExhaustive())
		})
	}
}
