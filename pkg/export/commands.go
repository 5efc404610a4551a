package export

import (
	"github.com/odvcencio/leancheck/pkg/term"
)

type (
	indexedHandler  func(d *Decoder, idx uint64, s *scanner) (term.Ref, error)
	toplevelHandler func(d *Decoder, s *scanner) (term.Ref, error)
)

// Tags without a handler are recognized but rejected with UnsupportedError.
var indexedHandlers = map[Tag]indexedHandler{
	TagNameStr:    (*Decoder).nameStr,
	TagNameInt:    (*Decoder).nameInt,
	TagLevelSucc:  (*Decoder).levelSucc,
	TagLevelMax:   (*Decoder).levelMax,
	TagLevelIMax:  (*Decoder).levelIMax,
	TagLevelParam: (*Decoder).levelParam,
	TagExprSort:   (*Decoder).exprSort,
	TagExprVar:    (*Decoder).exprVar,
	TagExprConst:  (*Decoder).exprConst,
	TagExprApp:    (*Decoder).exprApp,
	TagExprLambda: (*Decoder).exprLambda,
	TagExprPi:     (*Decoder).exprPi,
}

var toplevelHandlers = map[Tag]toplevelHandler{
	TagDefinition: (*Decoder).definition,
	TagInductive:  (*Decoder).inductive,
}

func parseBinderInfo(tok string) (term.BinderInfo, bool) {
	switch tok {
	case "#BD":
		return term.BinderDefault, true
	case "#BI":
		return term.BinderImplicit, true
	case "#BS":
		return term.BinderStrictImplicit, true
	case "#BC":
		return term.BinderInstImplicit, true
	}
	return 0, false
}

// parent decodes the wire sentinel 0 as "no parent".
func parent(idx uint64) term.Parent {
	if idx == 0 {
		return term.Root
	}
	return term.Under(term.NameIdx(idx))
}

func nameRef(idx uint64) term.Ref  { return term.Ref{Kind: term.KindName, Index: idx} }
func levelRef(idx uint64) term.Ref { return term.Ref{Kind: term.KindLevel, Index: idx} }
func exprRef(idx uint64) term.Ref  { return term.Ref{Kind: term.KindExpr, Index: idx} }
func declRef(idx uint64) term.Ref  { return term.Ref{Kind: term.KindDecl, Index: idx} }

func toNames(idxs []uint64) []term.NameIdx {
	out := make([]term.NameIdx, len(idxs))
	for i, n := range idxs {
		out[i] = term.NameIdx(n)
	}
	return out
}

func toLevels(idxs []uint64) []term.LevelIdx {
	out := make([]term.LevelIdx, len(idxs))
	for i, n := range idxs {
		out[i] = term.LevelIdx(n)
	}
	return out
}

// ---------------------------------------------------------------------------
// Names
// ---------------------------------------------------------------------------

// <idx> #NS <parent> <text>
func (d *Decoder) nameStr(idx uint64, s *scanner) (term.Ref, error) {
	p, err := s.idx("index")
	if err != nil {
		return term.Ref{}, err
	}
	text, ok := s.next()
	if !ok {
		return term.Ref{}, expecting("identifier")
	}
	if err := s.eol(); err != nil {
		return term.Ref{}, err
	}
	if err := d.env.InsertName(term.NameIdx(idx), term.Str(text), parent(p)); err != nil {
		return term.Ref{}, err
	}
	return nameRef(idx), nil
}

// <idx> #NI <parent> <int>
func (d *Decoder) nameInt(idx uint64, s *scanner) (term.Ref, error) {
	p, err := s.idx("index")
	if err != nil {
		return term.Ref{}, err
	}
	n, err := s.idx("integer")
	if err != nil {
		return term.Ref{}, err
	}
	if err := s.eol(); err != nil {
		return term.Ref{}, err
	}
	if err := d.env.InsertName(term.NameIdx(idx), term.Num(n), parent(p)); err != nil {
		return term.Ref{}, err
	}
	return nameRef(idx), nil
}

// ---------------------------------------------------------------------------
// Levels
// ---------------------------------------------------------------------------

// <idx> #US <level>
func (d *Decoder) levelSucc(idx uint64, s *scanner) (term.Ref, error) {
	u, err := s.idx("index")
	if err != nil {
		return term.Ref{}, err
	}
	if err := s.eol(); err != nil {
		return term.Ref{}, err
	}
	if err := d.env.InsertLevelSucc(term.LevelIdx(idx), term.LevelIdx(u)); err != nil {
		return term.Ref{}, err
	}
	return levelRef(idx), nil
}

func (d *Decoder) levelPair(s *scanner) (term.LevelIdx, term.LevelIdx, error) {
	a, err := s.idx("index")
	if err != nil {
		return 0, 0, err
	}
	b, err := s.idx("index")
	if err != nil {
		return 0, 0, err
	}
	if err := s.eol(); err != nil {
		return 0, 0, err
	}
	return term.LevelIdx(a), term.LevelIdx(b), nil
}

// <idx> #UM <level> <level>
func (d *Decoder) levelMax(idx uint64, s *scanner) (term.Ref, error) {
	a, b, err := d.levelPair(s)
	if err != nil {
		return term.Ref{}, err
	}
	if err := d.env.InsertLevelMax(term.LevelIdx(idx), a, b); err != nil {
		return term.Ref{}, err
	}
	return levelRef(idx), nil
}

// <idx> #UIM <level> <level>
func (d *Decoder) levelIMax(idx uint64, s *scanner) (term.Ref, error) {
	a, b, err := d.levelPair(s)
	if err != nil {
		return term.Ref{}, err
	}
	if err := d.env.InsertLevelIMax(term.LevelIdx(idx), a, b); err != nil {
		return term.Ref{}, err
	}
	return levelRef(idx), nil
}

// <idx> #UP <name>
func (d *Decoder) levelParam(idx uint64, s *scanner) (term.Ref, error) {
	n, err := s.idx("index")
	if err != nil {
		return term.Ref{}, err
	}
	if err := s.eol(); err != nil {
		return term.Ref{}, err
	}
	if err := d.env.InsertLevelParam(term.LevelIdx(idx), term.NameIdx(n)); err != nil {
		return term.Ref{}, err
	}
	return levelRef(idx), nil
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// <idx> #ES <level>
func (d *Decoder) exprSort(idx uint64, s *scanner) (term.Ref, error) {
	u, err := s.idx("index")
	if err != nil {
		return term.Ref{}, err
	}
	if err := s.eol(); err != nil {
		return term.Ref{}, err
	}
	if err := d.env.InsertSort(term.ExprIdx(idx), term.LevelIdx(u)); err != nil {
		return term.Ref{}, err
	}
	return exprRef(idx), nil
}

// <idx> #EV <int>
func (d *Decoder) exprVar(idx uint64, s *scanner) (term.Ref, error) {
	i, err := s.idx("integer")
	if err != nil {
		return term.Ref{}, err
	}
	if err := s.eol(); err != nil {
		return term.Ref{}, err
	}
	if err := d.env.InsertBoundVar(term.ExprIdx(idx), i); err != nil {
		return term.Ref{}, err
	}
	return exprRef(idx), nil
}

// <idx> #EC <name> <level>*
func (d *Decoder) exprConst(idx uint64, s *scanner) (term.Ref, error) {
	n, err := s.idx("index")
	if err != nil {
		return term.Ref{}, err
	}
	levels := s.idxs()
	if err := s.eol(); err != nil {
		return term.Ref{}, err
	}
	if err := d.env.InsertConst(term.ExprIdx(idx), term.NameIdx(n), toLevels(levels)); err != nil {
		return term.Ref{}, err
	}
	return exprRef(idx), nil
}

// <idx> #EA <fn> <arg>
func (d *Decoder) exprApp(idx uint64, s *scanner) (term.Ref, error) {
	fn, err := s.idx("index")
	if err != nil {
		return term.Ref{}, err
	}
	arg, err := s.idx("index")
	if err != nil {
		return term.Ref{}, err
	}
	if err := s.eol(); err != nil {
		return term.Ref{}, err
	}
	if err := d.env.InsertApp(term.ExprIdx(idx), term.ExprIdx(fn), term.ExprIdx(arg)); err != nil {
		return term.Ref{}, err
	}
	return exprRef(idx), nil
}

// binder parses "<info> <name> <domain> <body>".
func (d *Decoder) binder(s *scanner) (term.Binder, error) {
	tok, ok := s.next()
	if !ok {
		return term.Binder{}, expecting("info")
	}
	info, ok := parseBinderInfo(tok)
	if !ok {
		return term.Binder{}, expecting("info tag")
	}
	n, err := s.idx("index")
	if err != nil {
		return term.Binder{}, err
	}
	domain, err := s.idx("index")
	if err != nil {
		return term.Binder{}, err
	}
	body, err := s.idx("index")
	if err != nil {
		return term.Binder{}, err
	}
	if err := s.eol(); err != nil {
		return term.Binder{}, err
	}
	return term.Binder{
		Info:   info,
		Name:   term.NameIdx(n),
		Domain: term.ExprIdx(domain),
		Body:   term.ExprIdx(body),
	}, nil
}

// <idx> #EL <info> <name> <domain> <body>
func (d *Decoder) exprLambda(idx uint64, s *scanner) (term.Ref, error) {
	b, err := d.binder(s)
	if err != nil {
		return term.Ref{}, err
	}
	if err := d.env.InsertLambda(term.ExprIdx(idx), b.Info, b.Name, b.Domain, b.Body); err != nil {
		return term.Ref{}, err
	}
	return exprRef(idx), nil
}

// <idx> #EP <info> <name> <domain> <codomain>
func (d *Decoder) exprPi(idx uint64, s *scanner) (term.Ref, error) {
	b, err := d.binder(s)
	if err != nil {
		return term.Ref{}, err
	}
	if err := d.env.InsertPi(term.ExprIdx(idx), b.Info, b.Name, b.Domain, b.Body); err != nil {
		return term.Ref{}, err
	}
	return exprRef(idx), nil
}

// ---------------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------------

// #DEF <name> <type> <value> <param>*
func (d *Decoder) definition(s *scanner) (term.Ref, error) {
	n, err := s.idx("index")
	if err != nil {
		return term.Ref{}, err
	}
	typ, err := s.idx("index")
	if err != nil {
		return term.Ref{}, err
	}
	value, err := s.idx("index")
	if err != nil {
		return term.Ref{}, err
	}
	params := s.idxs()
	if err := s.eol(); err != nil {
		return term.Ref{}, err
	}
	if err := d.env.InsertDefinition(term.NameIdx(n), term.ExprIdx(typ), term.ExprIdx(value), toNames(params)); err != nil {
		return term.Ref{}, err
	}
	return declRef(n), nil
}

// #IND <nparams> <name> <type> <nctors> (<ctor> <type>){nctors} <param>*
func (d *Decoder) inductive(s *scanner) (term.Ref, error) {
	numParams, err := s.idx("number")
	if err != nil {
		return term.Ref{}, err
	}
	n, err := s.idx("index")
	if err != nil {
		return term.Ref{}, err
	}
	typ, err := s.idx("index")
	if err != nil {
		return term.Ref{}, err
	}
	numCtors, err := s.idx("number")
	if err != nil {
		return term.Ref{}, err
	}
	var ctors []term.Ctor
	for i := uint64(0); i < numCtors; i++ {
		cn, err := s.idx("index")
		if err != nil {
			return term.Ref{}, err
		}
		ct, err := s.idx("index")
		if err != nil {
			return term.Ref{}, err
		}
		ctors = append(ctors, term.Ctor{Name: term.NameIdx(cn), Type: term.ExprIdx(ct)})
	}
	params := s.idxs()
	if err := s.eol(); err != nil {
		return term.Ref{}, err
	}
	if err := d.env.InsertInductive(numParams, term.NameIdx(n), term.ExprIdx(typ), ctors, toNames(params)); err != nil {
		return term.Ref{}, err
	}
	return declRef(n), nil
}
