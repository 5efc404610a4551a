package term

import "strconv"

// NameIdx, LevelIdx and ExprIdx are the export format's own integer keys.
// Each indexes a separate table.
type (
	NameIdx  uint64
	LevelIdx uint64
	ExprIdx  uint64
)

// ZeroLevel is the implicit universe level stored at index 0.
const ZeroLevel LevelIdx = 0

// ---------------------------------------------------------------------------
// Names
// ---------------------------------------------------------------------------

// Segment is one component of a hierarchical name: text or a number.
type Segment struct {
	Text  string
	Num   uint64
	IsNum bool
}

// Str returns a text segment.
func Str(s string) Segment { return Segment{Text: s} }

// Num returns an integer segment.
func Num(n uint64) Segment { return Segment{Num: n, IsNum: true} }

func (s Segment) String() string {
	if s.IsNum {
		return strconv.FormatUint(s.Num, 10)
	}
	return s.Text
}

// Parent is an optional reference to the enclosing Name. The zero value is
// the root (no parent).
type Parent struct {
	Idx   NameIdx
	Valid bool
}

// Root is the absent parent.
var Root = Parent{}

// Under returns a parent reference to idx.
func Under(idx NameIdx) Parent { return Parent{Idx: idx, Valid: true} }

// Name is a single segment linked to its parent; the full dotted name is the
// root-to-leaf concatenation along the parent chain.
type Name struct {
	Segment Segment
	Parent  Parent
}

// ---------------------------------------------------------------------------
// Universe levels
// ---------------------------------------------------------------------------

// Level is one of Zero, Succ, Max, IMax or Param.
type Level interface {
	isLevel()
}

type Zero struct{}

type Succ struct {
	Of LevelIdx
}

type Max struct {
	Left, Right LevelIdx
}

type IMax struct {
	Left, Right LevelIdx
}

// Param is a universe variable named by a Name.
type Param struct {
	Name NameIdx
}

func (Zero) isLevel()  {}
func (Succ) isLevel()  {}
func (Max) isLevel()   {}
func (IMax) isLevel()  {}
func (Param) isLevel() {}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// BinderInfo only affects how a binder is delimited when printed.
type BinderInfo int

const (
	BinderDefault BinderInfo = iota
	BinderImplicit
	BinderStrictImplicit
	BinderInstImplicit
)

// Delims returns the opening and closing delimiters for the binder.
func (b BinderInfo) Delims() (string, string) {
	switch b {
	case BinderImplicit:
		return "{", "}"
	case BinderStrictImplicit:
		return "{{", "}}"
	case BinderInstImplicit:
		return "[", "]"
	default:
		return "(", ")"
	}
}

func (b BinderInfo) String() string {
	switch b {
	case BinderDefault:
		return "default"
	case BinderImplicit:
		return "implicit"
	case BinderStrictImplicit:
		return "strict-implicit"
	case BinderInstImplicit:
		return "inst-implicit"
	default:
		return "binderinfo(" + strconv.Itoa(int(b)) + ")"
	}
}

// Expr is one of BoundVar, Sort, Const, App, Lambda or Pi.
type Expr interface {
	isExpr()
}

// BoundVar is a de Bruijn index counted outward from the nearest binder.
// It is not a table reference.
type BoundVar struct {
	Index uint64
}

type Sort struct {
	Level LevelIdx
}

// Const references a declared constant instantiated at Levels.
type Const struct {
	Name   NameIdx
	Levels []LevelIdx
}

type App struct {
	Fn, Arg ExprIdx
}

// Binder is the shared payload of Lambda and Pi. Body is interpreted with
// Name pushed onto the binder scope.
type Binder struct {
	Info   BinderInfo
	Name   NameIdx
	Domain ExprIdx
	Body   ExprIdx
}

type Lambda struct {
	Binder
}

type Pi struct {
	Binder
}

func (BoundVar) isExpr() {}
func (Sort) isExpr()     {}
func (Const) isExpr()    {}
func (App) isExpr()      {}
func (Lambda) isExpr()   {}
func (Pi) isExpr()       {}

// ---------------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------------

// Decl is a Definition or an Inductive. Declarations are keyed by the Name
// they define.
type Decl interface {
	isDecl()
}

type Definition struct {
	Type   ExprIdx
	Value  ExprIdx
	Params []NameIdx // universe parameters
}

// Ctor is one constructor of an inductive type.
type Ctor struct {
	Name NameIdx
	Type ExprIdx
}

type Inductive struct {
	NumParams uint64
	Type      ExprIdx
	Ctors     []Ctor
	Params    []NameIdx
}

func (Definition) isDecl() {}
func (Inductive) isDecl()  {}

// ---------------------------------------------------------------------------
// References
// ---------------------------------------------------------------------------

// Kind names one of the four tables.
type Kind int

const (
	KindName Kind = iota
	KindLevel
	KindExpr
	KindDecl
)

func (k Kind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindLevel:
		return "level"
	case KindExpr:
		return "expr"
	case KindDecl:
		return "decl"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseKind accepts the lower-case table names returned by Kind.String.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "name":
		return KindName, true
	case "level":
		return KindLevel, true
	case "expr":
		return KindExpr, true
	case "decl":
		return KindDecl, true
	}
	return 0, false
}

// Ref identifies an entity by table and index. Declarations use the index
// of the Name they define.
type Ref struct {
	Kind  Kind
	Index uint64
}
