// Package env is the term arena: four append-only tables of names, universe
// levels, expressions and declarations keyed by the export format's indices.
//
// Every insertion validates its target index and embedded references before
// touching any table, so a failed call leaves the arena unchanged. Entities
// are never edited or removed.
package env

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/odvcencio/leancheck/pkg/term"
)

// DefaultNameCacheSize bounds the rendered-name cache when no option is given.
const DefaultNameCacheSize = 4096

// Env owns the arena tables.
type Env struct {
	names  map[term.NameIdx]term.Name
	levels map[term.LevelIdx]term.Level
	exprs  map[term.ExprIdx]term.Expr
	decls  map[term.NameIdx]term.Decl

	// declaration keys in insertion order
	declOrder []term.NameIdx

	nameCache       *lru.Cache[term.NameIdx, string]
	showBinderStack bool
}

// Option configures an Env.
type Option func(*Env)

// WithNameCache sets the number of rendered names kept in memory. A size of
// zero or less disables the cache.
func WithNameCache(size int) Option {
	return func(e *Env) {
		if size <= 0 {
			e.nameCache = nil
			return
		}
		// lru.New only fails for non-positive sizes.
		e.nameCache, _ = lru.New[term.NameIdx, string](size)
	}
}

// WithBinderStack makes RenderExpr append the enclosing binder scope after
// each binder, e.g. "(y : A), y [x]".
func WithBinderStack(on bool) Option {
	return func(e *Env) { e.showBinderStack = on }
}

// New returns an empty arena whose level table holds Zero at index 0.
func New(opts ...Option) *Env {
	e := &Env{
		names:  make(map[term.NameIdx]term.Name),
		levels: map[term.LevelIdx]term.Level{term.ZeroLevel: term.Zero{}},
		exprs:  make(map[term.ExprIdx]term.Expr),
		decls:  make(map[term.NameIdx]term.Decl),
	}
	WithNameCache(DefaultNameCacheSize)(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ---------------------------------------------------------------------------
// Validation helpers
// ---------------------------------------------------------------------------

func missing(table term.Kind, idx uint64, ref term.Kind, refIdx uint64) error {
	return &IntegrityError{Violation: MissingRef, Table: table, Index: idx, Ref: ref, RefIndex: refIdx}
}

func duplicate(table term.Kind, idx uint64) error {
	return &IntegrityError{Violation: Duplicate, Table: table, Index: idx}
}

func (e *Env) checkName(table term.Kind, idx uint64, n term.NameIdx) error {
	if _, ok := e.names[n]; !ok {
		return missing(table, idx, term.KindName, uint64(n))
	}
	return nil
}

func (e *Env) checkNames(table term.Kind, idx uint64, ns []term.NameIdx) error {
	for _, n := range ns {
		if err := e.checkName(table, idx, n); err != nil {
			return err
		}
	}
	return nil
}

func (e *Env) checkLevels(table term.Kind, idx uint64, us ...term.LevelIdx) error {
	for _, u := range us {
		if _, ok := e.levels[u]; !ok {
			return missing(table, idx, term.KindLevel, uint64(u))
		}
	}
	return nil
}

func (e *Env) checkExprs(idx term.ExprIdx, es ...term.ExprIdx) error {
	for _, x := range es {
		if _, ok := e.exprs[x]; !ok {
			return missing(term.KindExpr, uint64(idx), term.KindExpr, uint64(x))
		}
	}
	return nil
}

func (e *Env) freshExpr(idx term.ExprIdx) error {
	if _, ok := e.exprs[idx]; ok {
		return duplicate(term.KindExpr, uint64(idx))
	}
	return nil
}

func (e *Env) freshLevel(idx term.LevelIdx) error {
	if _, ok := e.levels[idx]; ok {
		return duplicate(term.KindLevel, uint64(idx))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Names
// ---------------------------------------------------------------------------

// InsertName adds a name segment under parent. Index 0 is reserved.
func (e *Env) InsertName(idx term.NameIdx, seg term.Segment, parent term.Parent) error {
	if idx == 0 {
		return &IntegrityError{Violation: Reserved, Table: term.KindName, Index: 0}
	}
	if _, ok := e.names[idx]; ok {
		return duplicate(term.KindName, uint64(idx))
	}
	if parent.Valid {
		if err := e.checkName(term.KindName, uint64(idx), parent.Idx); err != nil {
			return err
		}
	}
	e.names[idx] = term.Name{Segment: seg, Parent: parent}
	return nil
}

// ---------------------------------------------------------------------------
// Levels
// ---------------------------------------------------------------------------

func (e *Env) insertLevel(idx term.LevelIdx, lvl term.Level, operands ...term.LevelIdx) error {
	if err := e.freshLevel(idx); err != nil {
		return err
	}
	if err := e.checkLevels(term.KindLevel, uint64(idx), operands...); err != nil {
		return err
	}
	e.levels[idx] = lvl
	return nil
}

func (e *Env) InsertLevelSucc(idx, of term.LevelIdx) error {
	return e.insertLevel(idx, term.Succ{Of: of}, of)
}

func (e *Env) InsertLevelMax(idx, left, right term.LevelIdx) error {
	return e.insertLevel(idx, term.Max{Left: left, Right: right}, left, right)
}

func (e *Env) InsertLevelIMax(idx, left, right term.LevelIdx) error {
	return e.insertLevel(idx, term.IMax{Left: left, Right: right}, left, right)
}

// InsertLevelParam adds a universe variable named by name.
func (e *Env) InsertLevelParam(idx term.LevelIdx, name term.NameIdx) error {
	if err := e.freshLevel(idx); err != nil {
		return err
	}
	if err := e.checkName(term.KindLevel, uint64(idx), name); err != nil {
		return err
	}
	e.levels[idx] = term.Param{Name: name}
	return nil
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// InsertBoundVar adds a de Bruijn variable. n is resolved only when printing.
// Expression index 0 is an ordinary key, unlike name and level 0.
func (e *Env) InsertBoundVar(idx term.ExprIdx, n uint64) error {
	if err := e.freshExpr(idx); err != nil {
		return err
	}
	e.exprs[idx] = term.BoundVar{Index: n}
	return nil
}

// InsertSort adds Sort level. Exports commonly put Sort 0 at expression 0,
// which is an ordinary key.
func (e *Env) InsertSort(idx term.ExprIdx, level term.LevelIdx) error {
	if err := e.freshExpr(idx); err != nil {
		return err
	}
	if err := e.checkLevels(term.KindExpr, uint64(idx), level); err != nil {
		return err
	}
	e.exprs[idx] = term.Sort{Level: level}
	return nil
}

// InsertConst adds a constant reference instantiated at levels.
func (e *Env) InsertConst(idx term.ExprIdx, name term.NameIdx, levels []term.LevelIdx) error {
	if err := e.freshExpr(idx); err != nil {
		return err
	}
	if err := e.checkName(term.KindExpr, uint64(idx), name); err != nil {
		return err
	}
	if err := e.checkLevels(term.KindExpr, uint64(idx), levels...); err != nil {
		return err
	}
	e.exprs[idx] = term.Const{Name: name, Levels: append([]term.LevelIdx(nil), levels...)}
	return nil
}

func (e *Env) InsertApp(idx, fn, arg term.ExprIdx) error {
	if err := e.freshExpr(idx); err != nil {
		return err
	}
	if err := e.checkExprs(idx, fn, arg); err != nil {
		return err
	}
	e.exprs[idx] = term.App{Fn: fn, Arg: arg}
	return nil
}

func (e *Env) checkBinder(idx term.ExprIdx, b term.Binder) error {
	if err := e.freshExpr(idx); err != nil {
		return err
	}
	if err := e.checkName(term.KindExpr, uint64(idx), b.Name); err != nil {
		return err
	}
	return e.checkExprs(idx, b.Domain, b.Body)
}

func (e *Env) InsertLambda(idx term.ExprIdx, info term.BinderInfo, name term.NameIdx, domain, body term.ExprIdx) error {
	b := term.Binder{Info: info, Name: name, Domain: domain, Body: body}
	if err := e.checkBinder(idx, b); err != nil {
		return err
	}
	e.exprs[idx] = term.Lambda{Binder: b}
	return nil
}

func (e *Env) InsertPi(idx term.ExprIdx, info term.BinderInfo, name term.NameIdx, domain, codomain term.ExprIdx) error {
	b := term.Binder{Info: info, Name: name, Domain: domain, Body: codomain}
	if err := e.checkBinder(idx, b); err != nil {
		return err
	}
	e.exprs[idx] = term.Pi{Binder: b}
	return nil
}

// ---------------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------------

func (e *Env) freshDecl(name term.NameIdx) error {
	if _, ok := e.decls[name]; ok {
		return duplicate(term.KindDecl, uint64(name))
	}
	return e.checkName(term.KindDecl, uint64(name), name)
}

// InsertDefinition declares name with the given type, value and universe
// parameters.
func (e *Env) InsertDefinition(name term.NameIdx, typ, value term.ExprIdx, params []term.NameIdx) error {
	if err := e.freshDecl(name); err != nil {
		return err
	}
	if err := e.checkDeclExprs(name, typ, value); err != nil {
		return err
	}
	if err := e.checkNames(term.KindDecl, uint64(name), params); err != nil {
		return err
	}
	e.addDecl(name, term.Definition{
		Type:   typ,
		Value:  value,
		Params: append([]term.NameIdx(nil), params...),
	})
	return nil
}

// InsertInductive declares an inductive type with numParams leading
// parameters and the given constructors.
func (e *Env) InsertInductive(numParams uint64, name term.NameIdx, typ term.ExprIdx, ctors []term.Ctor, params []term.NameIdx) error {
	if err := e.freshDecl(name); err != nil {
		return err
	}
	if err := e.checkDeclExprs(name, typ); err != nil {
		return err
	}
	for _, c := range ctors {
		if err := e.checkName(term.KindDecl, uint64(name), c.Name); err != nil {
			return err
		}
		if err := e.checkDeclExprs(name, c.Type); err != nil {
			return err
		}
	}
	if err := e.checkNames(term.KindDecl, uint64(name), params); err != nil {
		return err
	}
	e.addDecl(name, term.Inductive{
		NumParams: numParams,
		Type:      typ,
		Ctors:     append([]term.Ctor(nil), ctors...),
		Params:    append([]term.NameIdx(nil), params...),
	})
	return nil
}

func (e *Env) checkDeclExprs(name term.NameIdx, es ...term.ExprIdx) error {
	for _, x := range es {
		if _, ok := e.exprs[x]; !ok {
			return missing(term.KindDecl, uint64(name), term.KindExpr, uint64(x))
		}
	}
	return nil
}

func (e *Env) addDecl(name term.NameIdx, d term.Decl) {
	e.decls[name] = d
	e.declOrder = append(e.declOrder, name)
}

// ---------------------------------------------------------------------------
// Lookups
// ---------------------------------------------------------------------------

func (e *Env) Name(idx term.NameIdx) (term.Name, error) {
	n, ok := e.names[idx]
	if !ok {
		return term.Name{}, &NotFoundError{Table: term.KindName, Index: uint64(idx)}
	}
	return n, nil
}

func (e *Env) Level(idx term.LevelIdx) (term.Level, error) {
	l, ok := e.levels[idx]
	if !ok {
		return nil, &NotFoundError{Table: term.KindLevel, Index: uint64(idx)}
	}
	return l, nil
}

func (e *Env) Expr(idx term.ExprIdx) (term.Expr, error) {
	x, ok := e.exprs[idx]
	if !ok {
		return nil, &NotFoundError{Table: term.KindExpr, Index: uint64(idx)}
	}
	return x, nil
}

// Decl returns the declaration defining name.
func (e *Env) Decl(name term.NameIdx) (term.Decl, error) {
	d, ok := e.decls[name]
	if !ok {
		return nil, &NotFoundError{Table: term.KindDecl, Index: uint64(name)}
	}
	return d, nil
}

// Decls returns the declared names in insertion order.
func (e *Env) Decls() []term.NameIdx {
	return append([]term.NameIdx(nil), e.declOrder...)
}

// Stats counts the entities in each table. The implicit zero level is
// included in Levels.
type Stats struct {
	Names  int
	Levels int
	Exprs  int
	Decls  int
}

func (e *Env) Stats() Stats {
	return Stats{
		Names:  len(e.names),
		Levels: len(e.levels),
		Exprs:  len(e.exprs),
		Decls:  len(e.decls),
	}
}

// FindName returns the index whose full dotted rendering equals dotted.
// When several indices render identically the smallest wins.
func (e *Env) FindName(dotted string) (term.NameIdx, bool) {
	var (
		best  term.NameIdx
		found bool
	)
	for idx := range e.names {
		if found && idx >= best {
			continue
		}
		s, err := e.RenderName(idx)
		if err == nil && s == dotted {
			best, found = idx, true
		}
	}
	return best, found
}
