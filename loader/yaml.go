package loader

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/panyam/flowres/decl"
	"gopkg.in/yaml.v3"
)

// YAMLParser decodes tree files written in YAML.
//
// A file is either a list of statements or a mapping with `imports` and
// `statements`.  Expressions are mappings keyed by `kind`, or scalars:
// numbers, booleans and null are literals, quoted strings are string
// literals and plain words are identifiers.
type YAMLParser struct{}

func (p *YAMLParser) Parse(input io.Reader, sourceName string, tree *decl.Tree) (file *File, err error) {
	var doc yaml.Node
	if derr := yaml.NewDecoder(input).Decode(&doc); derr != nil {
		if errors.Is(derr, io.EOF) {
			return &File{Path: sourceName}, nil
		}
		return nil, fmt.Errorf("in '%s': %w", sourceName, derr)
	}
	if len(doc.Content) == 0 {
		return &File{Path: sourceName}, nil
	}

	d := &decoder{file: sourceName, tree: tree}
	defer func() {
		if r := recover(); r != nil {
			le, ok := r.(*LoadError)
			if !ok {
				panic(r)
			}
			file, err = nil, le
		}
	}()
	return d.decodeFile(doc.Content[0]), nil
}

var longLiteral = regexp.MustCompile(`^-?[0-9]+L$`)

type decoder struct {
	file string
	tree *decl.Tree

	// Functions, lambdas and loops being decoded, innermost last.
	targets []decl.Node
	whens   []*decl.WhenExpr
}

func (d *decoder) fail(n *yaml.Node, format string, args ...any) {
	panic(&LoadError{File: d.file, Pos: posOf(n), Msg: fmt.Sprintf(format, args...)})
}

func posOf(n *yaml.Node) decl.Location {
	if n == nil {
		return decl.Location{}
	}
	return decl.Location{Line: n.Line, Col: n.Column}
}

func (d *decoder) setPos(node decl.Node, n *yaml.Node) {
	if p, ok := node.(interface{ SetPos(decl.Location) }); ok {
		p.SetPos(posOf(n))
	}
}

func (d *decoder) decodeFile(n *yaml.Node) *File {
	file := &File{Path: d.file}
	if n.Kind == yaml.SequenceNode {
		file.Statements = d.statements(n)
		return file
	}
	f := d.fields(n, "imports", "statements")
	if imports := f["imports"]; imports != nil {
		for _, imp := range d.list(imports) {
			file.Imports = append(file.Imports, d.scalar(imp))
		}
	}
	file.Statements = d.statements(f["statements"])
	return file
}

// fields maps the keys of a mapping node to their values.  Keys other than
// kind, annotations and allowed are rejected.
func (d *decoder) fields(n *yaml.Node, allowed ...string) map[string]*yaml.Node {
	if n.Kind != yaml.MappingNode {
		d.fail(n, "expected a mapping")
	}
	out := map[string]*yaml.Node{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if key != "kind" && key != "annotations" && !slices.Contains(allowed, key) {
			d.fail(n.Content[i], "unknown key '%s'", key)
		}
		out[key] = n.Content[i+1]
	}
	return out
}

func (d *decoder) list(n *yaml.Node) []*yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		d.fail(n, "expected a list")
	}
	return n.Content
}

func (d *decoder) scalar(n *yaml.Node) string {
	if n.Kind != yaml.ScalarNode {
		d.fail(n, "expected a scalar")
	}
	return n.Value
}

func (d *decoder) required(f map[string]*yaml.Node, parent *yaml.Node, key string) *yaml.Node {
	n, ok := f[key]
	if !ok || n == nil {
		d.fail(parent, "missing '%s'", key)
	}
	return n
}

func (d *decoder) name(f map[string]*yaml.Node, parent *yaml.Node, key string) string {
	return d.scalar(d.required(f, parent, key))
}

// optName returns "" for a missing key.
func (d *decoder) optName(f map[string]*yaml.Node, key string) string {
	if n := f[key]; n != nil {
		return d.scalar(n)
	}
	return ""
}

func (d *decoder) optExpr(n *yaml.Node) decl.Expr {
	if n == nil {
		return nil
	}
	return d.expr(n)
}

func (d *decoder) statements(n *yaml.Node) []decl.Expr {
	var out []decl.Expr
	for _, s := range d.list(n) {
		out = append(out, d.expr(s))
	}
	return out
}

func (d *decoder) block(n *yaml.Node) *decl.BlockExpr {
	b := d.tree.Block(d.statements(n)...)
	if n != nil {
		d.setPos(b, n)
	}
	return b
}

func (d *decoder) expr(n *yaml.Node) decl.Expr {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	var e decl.Expr
	switch n.Kind {
	case yaml.ScalarNode:
		e = d.scalarExpr(n)
	case yaml.MappingNode:
		e = d.construct(n)
	case yaml.SequenceNode:
		e = d.block(n)
	default:
		d.fail(n, "expected an expression")
	}
	d.setPos(e, n)
	return e
}

func (d *decoder) scalarExpr(n *yaml.Node) decl.Expr {
	tr := d.tree
	switch n.Tag {
	case "!!int":
		return d.literal(n, "int", n.Value)
	case "!!float":
		return d.literal(n, "double", n.Value)
	case "!!bool":
		return d.literal(n, "bool", n.Value)
	case "!!null":
		return tr.Null()
	case "!!str":
		if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
			return tr.StringLit(n.Value)
		}
		if longLiteral.MatchString(n.Value) {
			return d.literal(n, "long", strings.TrimSuffix(n.Value, "L"))
		}
		return tr.Ident(n.Value)
	}
	d.fail(n, "unsupported scalar %s", n.Tag)
	return nil
}

func (d *decoder) literal(n *yaml.Node, kind, value string) decl.Expr {
	tr := d.tree
	switch kind {
	case "int":
		v, err := strconv.Atoi(value)
		if err != nil {
			d.fail(n, "invalid int literal '%s'", value)
		}
		return tr.IntLit(v)
	case "long":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			d.fail(n, "invalid long literal '%s'", value)
		}
		return tr.LongLit(v)
	case "double":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			d.fail(n, "invalid double literal '%s'", value)
		}
		return tr.DoubleLit(v)
	case "bool":
		v, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			d.fail(n, "invalid bool literal '%s'", value)
		}
		return tr.BoolLit(v)
	}
	return tr.StringLit(value)
}

func (d *decoder) construct(n *yaml.Node) decl.Expr {
	var kind string
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == "kind" {
			kind = d.scalar(n.Content[i+1])
		}
	}
	if kind == "" {
		d.fail(n, "missing 'kind'")
	}

	tr := d.tree
	var e decl.Expr
	var f map[string]*yaml.Node
	switch kind {
	case "int", "long", "double", "string", "bool":
		f = d.fields(n, "value")
		e = d.literal(n, kind, d.name(f, n, "value"))

	case "null":
		f = d.fields(n)
		e = tr.Null()

	case "ident":
		f = d.fields(n, "name")
		e = tr.Ident(d.name(f, n, "name"))

	case "member":
		f = d.fields(n, "receiver", "name")
		e = tr.Member(d.expr(d.required(f, n, "receiver")), d.name(f, n, "name"))

	case "binary":
		f = d.fields(n, "left", "op", "right")
		e = tr.Binary(d.expr(d.required(f, n, "left")), d.name(f, n, "op"), d.expr(d.required(f, n, "right")))

	case "unary":
		f = d.fields(n, "op", "operand")
		e = tr.Unary(d.name(f, n, "op"), d.expr(d.required(f, n, "operand")))

	case "call":
		f = d.fields(n, "name", "args")
		e = tr.Call(d.name(f, n, "name"), d.statements(f["args"])...)

	case "block":
		f = d.fields(n, "statements")
		e = d.block(f["statements"])

	case "val", "var":
		f = d.fields(n, "name", "type", "value")
		v := &decl.VarDecl{Name: d.name(f, n, "name"), Value: d.optExpr(f["value"]), Mutable: kind == "var"}
		if typeName := d.optName(f, "type"); typeName != "" {
			v.TypeDecl = tr.TypeRef(typeName)
		} else if v.Value == nil {
			d.fail(n, "'%s' needs a type or a value", v.Name)
		}
		e = decl.Add(tr, v)

	case "assign":
		f = d.fields(n, "name", "value")
		e = tr.Assign(d.name(f, n, "name"), d.expr(d.required(f, n, "value")))

	case "function":
		f = d.fields(n, "name", "params", "returns", "body")
		fn := tr.Function(d.name(f, n, "name"), d.optName(f, "returns"), d.params(f["params"])...)
		d.withTarget(fn, func() { fn.Body = d.block(f["body"]) })
		e = fn

	case "lambda":
		f = d.fields(n, "label", "params", "returns", "body")
		l := tr.Lambda(d.optName(f, "label"), d.optName(f, "returns"), d.params(f["params"])...)
		d.withTarget(l, func() { l.Body = d.block(f["body"]) })
		e = l

	case "enum":
		f = d.fields(n, "name", "entries")
		var entries []string
		for _, entry := range d.list(f["entries"]) {
			entries = append(entries, d.scalar(entry))
		}
		e = tr.Enum(d.name(f, n, "name"), entries...)

	case "while":
		f = d.fields(n, "label", "cond", "body")
		loop := tr.While(d.expr(d.required(f, n, "cond")), nil)
		loop.Label = d.optName(f, "label")
		d.withTarget(loop, func() { loop.Block = d.block(f["body"]) })
		e = loop

	case "do-while":
		f = d.fields(n, "label", "body", "cond")
		loop := tr.DoWhile(nil, nil)
		loop.Label = d.optName(f, "label")
		d.withTarget(loop, func() { loop.Block = d.block(f["body"]) })
		loop.Condition = d.expr(d.required(f, n, "cond"))
		e = loop

	case "when":
		f = d.fields(n, "subject", "variable", "branches")
		e = d.when(n, f)

	case "subject":
		f = d.fields(n)
		if len(d.whens) == 0 {
			d.fail(n, "'subject' outside of a when")
		}
		e = tr.SubjectOf(d.whens[len(d.whens)-1])

	case "if":
		f = d.fields(n, "cond", "then", "else")
		var otherwise *decl.BlockExpr
		if f["else"] != nil {
			otherwise = d.block(f["else"])
		}
		e = tr.If(d.expr(d.required(f, n, "cond")), d.block(d.required(f, n, "then")), otherwise)

	case "try":
		f = d.fields(n, "block", "catches", "finally")
		t := tr.Try(d.block(d.required(f, n, "block")))
		for _, c := range d.list(f["catches"]) {
			cf := d.fields(c, "param", "type", "block")
			clause := tr.Catch(d.name(cf, c, "param"), d.optName(cf, "type"), d.block(cf["block"]))
			d.setPos(clause, c)
			t.Catches = append(t.Catches, clause)
		}
		if f["finally"] != nil {
			t.FinallyBlock = d.block(f["finally"])
		}
		e = t

	case "elvis":
		f = d.fields(n, "lhs", "rhs")
		e = tr.Elvis(d.expr(d.required(f, n, "lhs")), d.expr(d.required(f, n, "rhs")))

	case "return":
		f = d.fields(n, "target", "value")
		e = tr.Return(d.returnTarget(n, d.optName(f, "target")), d.optExpr(f["value"]))

	case "throw":
		f = d.fields(n, "value")
		e = tr.Throw(d.expr(d.required(f, n, "value")))

	case "break":
		f = d.fields(n, "target")
		e = tr.Break(d.loopTarget(n, d.optName(f, "target")))

	case "continue":
		f = d.fields(n, "target")
		e = tr.Continue(d.loopTarget(n, d.optName(f, "target")))

	default:
		d.fail(n, "unknown kind '%s'", kind)
	}

	for _, a := range d.list(f["annotations"]) {
		af := d.fields(a, "name", "args")
		annotation := tr.Annotate(e, d.name(af, a, "name"), d.statements(af["args"])...)
		d.setPos(annotation, a)
	}
	return e
}

// params decodes `- name: Type` entries.  An empty type leaves the
// parameter untyped.
func (d *decoder) params(n *yaml.Node) (out []*decl.ParamDecl) {
	for _, p := range d.list(n) {
		if p.Kind != yaml.MappingNode || len(p.Content) != 2 {
			d.fail(p, "expected a parameter as 'name: Type'")
		}
		typeName := ""
		if t := p.Content[1]; t.Tag != "!!null" {
			typeName = d.scalar(t)
		}
		param := d.tree.Param(d.scalar(p.Content[0]), typeName)
		d.setPos(param, p)
		out = append(out, param)
	}
	return
}

func (d *decoder) when(n *yaml.Node, f map[string]*yaml.Node) *decl.WhenExpr {
	tr := d.tree
	var w *decl.WhenExpr
	if v := f["variable"]; v != nil {
		if f["subject"] != nil {
			d.fail(n, "a when takes either a subject or a variable")
		}
		vf := d.fields(v, "name", "value")
		w = tr.WhenWithVariable(d.name(vf, v, "name"), d.expr(d.required(vf, v, "value")))
		d.setPos(w.SubjectVariable, v)
	} else {
		w = tr.When(d.optExpr(f["subject"]))
	}

	d.whens = append(d.whens, w)
	defer func() { d.whens = d.whens[:len(d.whens)-1] }()

	for _, b := range d.list(f["branches"]) {
		bf := d.fields(b, "cond", "is", "else", "result", "synthetic")
		var branch *decl.WhenBranch
		switch {
		case bf["synthetic"] != nil:
			branch = tr.SyntheticElse()
		case bf["else"] != nil:
			branch = tr.Else(d.block(bf["else"]))
		case bf["is"] != nil:
			if w.Subject == nil {
				d.fail(b, "'is' needs a when subject")
			}
			branch = tr.Branch(tr.Is(w, d.expr(bf["is"])), d.block(bf["result"]))
		case bf["cond"] != nil:
			branch = tr.Branch(d.expr(bf["cond"]), d.block(bf["result"]))
		default:
			d.fail(b, "a branch needs 'cond', 'is' or 'else'")
		}
		d.setPos(branch, b)
		w.AddBranch(branch)
	}
	return w
}

func (d *decoder) withTarget(target decl.Node, body func()) {
	d.targets = append(d.targets, target)
	defer func() { d.targets = d.targets[:len(d.targets)-1] }()
	body()
}

// returnTarget finds the innermost function or lambda, or the one named
// label.  Outside of any it is nil.
func (d *decoder) returnTarget(n *yaml.Node, label string) decl.ReturnTarget {
	for i := len(d.targets) - 1; i >= 0; i-- {
		if rt, ok := d.targets[i].(decl.ReturnTarget); ok && (label == "" || rt.TargetLabel() == label) {
			return rt
		}
	}
	if label != "" {
		d.fail(n, "unknown return target '%s'", label)
	}
	return nil
}

// loopTarget finds the innermost loop, or the one named label, without
// leaving the enclosing function or lambda.
func (d *decoder) loopTarget(n *yaml.Node, label string) decl.Loop {
	for i := len(d.targets) - 1; i >= 0; i-- {
		if _, ok := d.targets[i].(decl.ReturnTarget); ok {
			break
		}
		if loop, ok := d.targets[i].(decl.Loop); ok && (label == "" || loop.LoopLabel() == label) {
			return loop
		}
	}
	if label != "" {
		d.fail(n, "unknown loop '%s'", label)
	}
	return nil
}
