package env

import (
	"fmt"
	"strings"

	"github.com/odvcencio/leancheck/pkg/term"
)

// RenderName joins the segments along the parent chain, root first.
func (e *Env) RenderName(idx term.NameIdx) (string, error) {
	if e.nameCache != nil {
		if s, ok := e.nameCache.Get(idx); ok {
			return s, nil
		}
	}

	var segs []string
	cur := term.Under(idx)
	for cur.Valid {
		n, err := e.Name(cur.Idx)
		if err != nil {
			return "", err
		}
		segs = append(segs, n.Segment.String())
		cur = n.Parent
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	s := strings.Join(segs, ".")

	if e.nameCache != nil {
		e.nameCache.Add(idx, s)
	}
	return s, nil
}

func (e *Env) RenderLevel(idx term.LevelIdx) (string, error) {
	lvl, err := e.Level(idx)
	if err != nil {
		return "", err
	}
	switch l := lvl.(type) {
	case term.Zero:
		return "0", nil
	case term.Succ:
		u, err := e.RenderLevel(l.Of)
		if err != nil {
			return "", err
		}
		return "(succ " + u + ")", nil
	case term.Max:
		return e.renderLevelPair("max", l.Left, l.Right)
	case term.IMax:
		return e.renderLevelPair("imax", l.Left, l.Right)
	case term.Param:
		return e.RenderName(l.Name)
	default:
		return "", fmt.Errorf("render level %d: unknown level %T", idx, lvl)
	}
}

func (e *Env) renderLevelPair(op string, left, right term.LevelIdx) (string, error) {
	a, err := e.RenderLevel(left)
	if err != nil {
		return "", err
	}
	b, err := e.RenderLevel(right)
	if err != nil {
		return "", err
	}
	return "(" + op + " " + a + " " + b + ")", nil
}

func (e *Env) renderLevels(us []term.LevelIdx) (string, error) {
	parts := make([]string, len(us))
	for i, u := range us {
		s, err := e.RenderLevel(u)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ","), nil
}

// RenderExpr prints an expression, resolving bound variables against the
// binders that enclose them. A variable with no enclosing binder renders as
// "<i>" (see Placeholder) rather than failing.
func (e *Env) RenderExpr(idx term.ExprIdx) (string, error) {
	return e.renderTop(idx, e.showBinderStack)
}

// exprWalk is the state of one top-level expression rendering.
type exprWalk struct {
	// names of the open binders, innermost last
	scope []string
	// append the enclosing scope after each binder
	stack bool
}

func (e *Env) renderTop(idx term.ExprIdx, stack bool) (string, error) {
	w := &exprWalk{stack: stack}
	s, err := e.renderExpr(idx, w)
	if err != nil {
		return "", err
	}
	if len(w.scope) != 0 {
		return "", fmt.Errorf("render expr %d: unbalanced binder scope (%d left open)", idx, len(w.scope))
	}
	return s, nil
}

// Placeholder is the rendering of a bound variable that escapes every
// enclosing binder.
func Placeholder(i uint64) string {
	return fmt.Sprintf("<%d>", i)
}

// renderExpr walks x. w.scope has the same length on return as on entry.
func (e *Env) renderExpr(idx term.ExprIdx, w *exprWalk) (string, error) {
	x, err := e.Expr(idx)
	if err != nil {
		return "", err
	}
	switch x := x.(type) {
	case term.Sort:
		u, err := e.RenderLevel(x.Level)
		if err != nil {
			return "", err
		}
		return "Sort " + u, nil
	case term.BoundVar:
		depth := uint64(len(w.scope))
		if x.Index >= depth {
			return Placeholder(x.Index), nil
		}
		return w.scope[depth-1-x.Index], nil
	case term.Const:
		name, err := e.RenderName(x.Name)
		if err != nil {
			return "", err
		}
		if len(x.Levels) == 0 {
			return name, nil
		}
		us, err := e.renderLevels(x.Levels)
		if err != nil {
			return "", err
		}
		return name + ".{" + us + "}", nil
	case term.App:
		f, err := e.renderExpr(x.Fn, w)
		if err != nil {
			return "", err
		}
		a, err := e.renderExpr(x.Arg, w)
		if err != nil {
			return "", err
		}
		return "(" + f + " " + a + ")", nil
	case term.Lambda:
		return e.renderBinder(x.Binder, w)
	case term.Pi:
		return e.renderBinder(x.Binder, w)
	default:
		return "", fmt.Errorf("render expr %d: unknown expression %T", idx, x)
	}
}

func (e *Env) renderBinder(b term.Binder, w *exprWalk) (string, error) {
	open, closing := b.Info.Delims()
	name, err := e.RenderName(b.Name)
	if err != nil {
		return "", err
	}
	domain, err := e.renderExpr(b.Domain, w)
	if err != nil {
		return "", err
	}

	depth := len(w.scope)
	w.scope = append(w.scope, name)
	body, err := e.renderExpr(b.Body, w)
	w.scope = w.scope[:depth]
	if err != nil {
		return "", err
	}

	s := open + name + " : " + domain + closing + ", " + body
	if w.stack {
		s += " [" + strings.Join(w.scope, ",") + "]"
	}
	return s, nil
}

// RenderDecl prints the declaration defining name.
//
//	definition foo.{u,v} <type> := <value>
//	inductive nat Sort 1
//	| nat.zero : nat
//	| nat.succ : (n : nat), nat
func (e *Env) RenderDecl(name term.NameIdx) (string, error) {
	return e.renderDecl(name, e.showBinderStack)
}

func (e *Env) renderDecl(name term.NameIdx, stack bool) (string, error) {
	d, err := e.Decl(name)
	if err != nil {
		return "", err
	}
	declName, err := e.RenderName(name)
	if err != nil {
		return "", err
	}
	switch d := d.(type) {
	case term.Definition:
		return e.renderDefinition(declName, d, stack)
	case term.Inductive:
		return e.renderInductive(declName, d, stack)
	default:
		return "", fmt.Errorf("render decl %d: unknown declaration %T", name, d)
	}
}

func (e *Env) renderParams(params []term.NameIdx) (string, error) {
	parts := make([]string, len(params))
	for i, p := range params {
		s, err := e.RenderName(p)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ","), nil
}

func (e *Env) renderDefinition(name string, d term.Definition, stack bool) (string, error) {
	params, err := e.renderParams(d.Params)
	if err != nil {
		return "", err
	}
	typ, err := e.renderTop(d.Type, stack)
	if err != nil {
		return "", err
	}
	value, err := e.renderTop(d.Value, stack)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("definition ")
	b.WriteString(name)
	if params != "" {
		b.WriteString(".{" + params + "}")
	}
	b.WriteString(" " + typ + " := " + value)
	return b.String(), nil
}

func (e *Env) renderInductive(name string, d term.Inductive, stack bool) (string, error) {
	params, err := e.renderParams(d.Params)
	if err != nil {
		return "", err
	}
	typ, err := e.renderTop(d.Type, stack)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("inductive ")
	b.WriteString(name)
	if params != "" {
		b.WriteString(" {" + params + "}")
	}
	b.WriteString(" " + typ)
	for _, c := range d.Ctors {
		ctorName, err := e.RenderName(c.Name)
		if err != nil {
			return "", err
		}
		ctorType, err := e.renderTop(c.Type, stack)
		if err != nil {
			return "", err
		}
		b.WriteString("\n| " + ctorName + " : " + ctorType)
	}
	return b.String(), nil
}

// Render prints the entity identified by ref.
func (e *Env) Render(ref term.Ref) (string, error) {
	switch ref.Kind {
	case term.KindName:
		return e.RenderName(term.NameIdx(ref.Index))
	case term.KindLevel:
		return e.RenderLevel(term.LevelIdx(ref.Index))
	case term.KindExpr:
		return e.RenderExpr(term.ExprIdx(ref.Index))
	case term.KindDecl:
		return e.RenderDecl(term.NameIdx(ref.Index))
	default:
		return "", fmt.Errorf("render: unknown kind %v", ref.Kind)
	}
}
