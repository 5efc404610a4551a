package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/leancheck/pkg/term"
)

// identity builds
//
//	1 #NS 0 x
//	2 #NS 0 id
//	0 #ES 0          Sort 0
//	1 #EV 0          #0
//	2 #EL #BD 1 0 1  (x : Sort 0), x
func identity(t *testing.T, opts ...Option) *Env {
	t.Helper()
	e := New(opts...)
	require.NoError(t, e.InsertName(1, term.Str("x"), term.Root))
	require.NoError(t, e.InsertName(2, term.Str("id"), term.Root))
	require.NoError(t, e.InsertSort(0, 0))
	require.NoError(t, e.InsertBoundVar(1, 0))
	require.NoError(t, e.InsertLambda(2, term.BinderDefault, 1, 0, 1))
	return e
}

func TestRenderDefinition(t *testing.T) {
	e := identity(t)
	require.NoError(t, e.InsertDefinition(2, 0, 2, nil))

	got, err := e.RenderDecl(2)
	require.NoError(t, err)
	assert.Equal(t, "definition id Sort 0 := (x : Sort 0), x", got)
}

func TestRenderDefinitionWithUniverseParams(t *testing.T) {
	e := identity(t)
	require.NoError(t, e.InsertName(3, term.Str("u"), term.Root))
	require.NoError(t, e.InsertName(4, term.Str("v"), term.Root))
	require.NoError(t, e.InsertLevelParam(1, 3))
	require.NoError(t, e.InsertSort(3, 1))
	require.NoError(t, e.InsertDefinition(2, 3, 2, []term.NameIdx{3, 4}))

	got, err := e.RenderDecl(2)
	require.NoError(t, err)
	assert.Equal(t, "definition id.{u,v} Sort u := (x : Sort 0), x", got)
}

func TestRenderBinderDelimiters(t *testing.T) {
	tests := []struct {
		info term.BinderInfo
		want string
	}{
		{term.BinderDefault, "(x : Sort 0), x"},
		{term.BinderImplicit, "{x : Sort 0}, x"},
		{term.BinderStrictImplicit, "{{x : Sort 0}}, x"},
		{term.BinderInstImplicit, "[x : Sort 0], x"},
	}
	for _, tc := range tests {
		t.Run(tc.info.String(), func(t *testing.T) {
			e := identity(t)
			require.NoError(t, e.InsertPi(3, tc.info, 1, 0, 1))
			got, err := e.RenderExpr(3)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRenderNestedBinders(t *testing.T) {
	e := identity(t)
	require.NoError(t, e.InsertName(3, term.Str("y"), term.Root))
	// 3 #EV 1
	// 4 #EA 3 1           (#1 #0)
	// 5 #EL #BI 3 1 4     {y : #0}, (#1 #0)   domain sees the outer binder only
	// 6 #EL #BD 1 0 5
	require.NoError(t, e.InsertBoundVar(3, 1))
	require.NoError(t, e.InsertApp(4, 3, 1))
	require.NoError(t, e.InsertLambda(5, term.BinderImplicit, 3, 1, 4))
	require.NoError(t, e.InsertLambda(6, term.BinderDefault, 1, 0, 5))

	got, err := e.RenderExpr(6)
	require.NoError(t, err)
	assert.Equal(t, "(x : Sort 0), {y : x}, (x y)", got)
}

func TestRenderOutOfRangeBoundVar(t *testing.T) {
	e := identity(t)
	require.NoError(t, e.InsertBoundVar(3, 4))
	require.NoError(t, e.InsertLambda(4, term.BinderDefault, 1, 3, 3))

	got, err := e.RenderExpr(3)
	require.NoError(t, err)
	assert.Equal(t, "<4>", got)

	got, err = e.RenderExpr(4)
	require.NoError(t, err)
	assert.Equal(t, "(x : <4>), <4>", got)

	w := &exprWalk{scope: []string{"a", "b"}}
	got, err = e.renderExpr(4, w)
	require.NoError(t, err)
	assert.Equal(t, "(x : <4>), <4>", got)
	assert.Equal(t, []string{"a", "b"}, w.scope)

	// Index 2 under two open binders plus x is in range.
	require.NoError(t, e.InsertBoundVar(5, 2))
	require.NoError(t, e.InsertLambda(6, term.BinderDefault, 1, 0, 5))
	got, err = e.renderExpr(6, w)
	require.NoError(t, err)
	assert.Equal(t, "(x : Sort 0), a", got)
	assert.Equal(t, []string{"a", "b"}, w.scope)
}

func TestRenderConstant(t *testing.T) {
	e := New()
	require.NoError(t, e.InsertName(1, term.Str("list"), term.Root))
	require.NoError(t, e.InsertName(2, term.Str("u"), term.Root))
	require.NoError(t, e.InsertLevelParam(1, 2))
	require.NoError(t, e.InsertLevelSucc(2, 1))
	require.NoError(t, e.InsertConst(0, 1, nil))
	require.NoError(t, e.InsertConst(1, 1, []term.LevelIdx{1, 2, 0}))

	got, err := e.RenderExpr(0)
	require.NoError(t, err)
	assert.Equal(t, "list", got)

	got, err = e.RenderExpr(1)
	require.NoError(t, err)
	assert.Equal(t, "list.{u,(succ u),0}", got)
}

func TestRenderInductive(t *testing.T) {
	e := New()
	// nat, nat.zero, nat.succ, n
	require.NoError(t, e.InsertName(1, term.Str("nat"), term.Root))
	require.NoError(t, e.InsertName(2, term.Str("zero"), term.Under(1)))
	require.NoError(t, e.InsertName(3, term.Str("succ"), term.Under(1)))
	require.NoError(t, e.InsertName(4, term.Str("n"), term.Root))
	require.NoError(t, e.InsertLevelSucc(1, 0))
	require.NoError(t, e.InsertSort(0, 1))
	require.NoError(t, e.InsertConst(1, 1, nil))
	require.NoError(t, e.InsertPi(2, term.BinderDefault, 4, 1, 1))
	require.NoError(t, e.InsertInductive(0, 1, 0, []term.Ctor{{Name: 2, Type: 1}, {Name: 3, Type: 2}}, nil))

	got, err := e.RenderDecl(1)
	require.NoError(t, err)
	assert.Equal(t, "inductive nat Sort (succ 0)\n| nat.zero : nat\n| nat.succ : (n : nat), nat", got)
}

func TestRenderInductiveWithUniverseParams(t *testing.T) {
	e := New()
	require.NoError(t, e.InsertName(1, term.Str("box"), term.Root))
	require.NoError(t, e.InsertName(2, term.Str("u"), term.Root))
	require.NoError(t, e.InsertLevelParam(1, 2))
	require.NoError(t, e.InsertSort(0, 1))
	require.NoError(t, e.InsertInductive(1, 1, 0, nil, []term.NameIdx{2}))

	got, err := e.RenderDecl(1)
	require.NoError(t, err)
	assert.Equal(t, "inductive box {u} Sort u", got)
}

func TestRenderBinderStackTrace(t *testing.T) {
	e := identity(t, WithBinderStack(true))
	require.NoError(t, e.InsertName(3, term.Str("y"), term.Root))
	require.NoError(t, e.InsertLambda(3, term.BinderDefault, 3, 0, 1))
	require.NoError(t, e.InsertLambda(4, term.BinderDefault, 1, 0, 3))

	got, err := e.RenderExpr(4)
	require.NoError(t, err)
	assert.Equal(t, "(x : Sort 0), (y : Sort 0), y [x] []", got)
}

func TestRenderByRef(t *testing.T) {
	e := identity(t)
	require.NoError(t, e.InsertDefinition(2, 0, 2, nil))

	tests := []struct {
		ref  term.Ref
		want string
	}{
		{term.Ref{Kind: term.KindName, Index: 2}, "id"},
		{term.Ref{Kind: term.KindLevel, Index: 0}, "0"},
		{term.Ref{Kind: term.KindExpr, Index: 2}, "(x : Sort 0), x"},
		{term.Ref{Kind: term.KindDecl, Index: 2}, "definition id Sort 0 := (x : Sort 0), x"},
	}
	for _, tc := range tests {
		got, err := e.Render(tc.ref)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "ref %+v", tc.ref)
	}
}

func TestDigest(t *testing.T) {
	a := identity(t)
	require.NoError(t, a.InsertDefinition(2, 0, 2, nil))

	// Same declaration under different indices.
	b := New(WithBinderStack(true))
	require.NoError(t, b.InsertName(10, term.Str("id"), term.Root))
	require.NoError(t, b.InsertName(11, term.Str("x"), term.Root))
	require.NoError(t, b.InsertSort(7, 0))
	require.NoError(t, b.InsertBoundVar(8, 0))
	require.NoError(t, b.InsertLambda(9, term.BinderDefault, 11, 7, 8))
	require.NoError(t, b.InsertDefinition(10, 7, 9, nil))

	da, err := a.Digest()
	require.NoError(t, err)
	db, err := b.Digest()
	require.NoError(t, err)
	assert.Len(t, string(da), 64)
	assert.Equal(t, da, db)

	// Digesting leaves the printer options alone.
	got, err := b.RenderExpr(9)
	require.NoError(t, err)
	assert.Equal(t, "(x : Sort 0), x []", got)
	decl, err := b.RenderDecl(10)
	require.NoError(t, err)
	assert.Equal(t, "definition id Sort 0 := (x : Sort 0), x []", decl)

	empty, err := New().Digest()
	require.NoError(t, err)
	assert.NotEqual(t, da, empty)
}
