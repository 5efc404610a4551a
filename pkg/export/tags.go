package export

// Tag enumerates every command of the export format. Indexed tags follow a
// leading "<idx>" field; the rest start a line on their own.
type Tag uint8

const (
	TagInvalid Tag = iota

	TagNameStr
	TagNameInt

	TagLevelSucc
	TagLevelMax
	TagLevelIMax
	TagLevelParam

	TagExprSort
	TagExprVar
	TagExprConst
	TagExprApp
	TagExprLambda
	TagExprPi
	TagExprProj
	TagExprNatLit
	TagExprStrLit
	TagExprLet

	TagDefinition
	TagInductive
	TagAxiom
	TagQuot
	TagPrefix
	TagPostfix
	TagInfix

	numTags
)

type tagEntry struct {
	token   string
	indexed bool
	desc    string
}

var tagTable = [numTags]tagEntry{
	TagInvalid: {"", false, "invalid"},

	TagNameStr: {"#NS", true, "string name segment"},
	TagNameInt: {"#NI", true, "integer name segment"},

	TagLevelSucc:  {"#US", true, "successor level"},
	TagLevelMax:   {"#UM", true, "max level"},
	TagLevelIMax:  {"#UIM", true, "impredicative max level"},
	TagLevelParam: {"#UP", true, "level parameter"},

	TagExprSort:   {"#ES", true, "sort"},
	TagExprVar:    {"#EV", true, "bound variable"},
	TagExprConst:  {"#EC", true, "constant"},
	TagExprApp:    {"#EA", true, "application"},
	TagExprLambda: {"#EL", true, "lambda"},
	TagExprPi:     {"#EP", true, "pi"},
	TagExprProj:   {"#EJ", true, "projection"},
	TagExprNatLit: {"#ELN", true, "natural number literal"},
	TagExprStrLit: {"#ELS", true, "string literal"},
	TagExprLet:    {"#EZ", true, "let"},

	TagDefinition: {"#DEF", false, "definition"},
	TagInductive:  {"#IND", false, "inductive"},
	TagAxiom:      {"#AX", false, "axiom"},
	TagQuot:       {"#QUOT", false, "quotient"},
	TagPrefix:     {"#PREFIX", false, "prefix notation"},
	TagPostfix:    {"#POSTFIX", false, "postfix notation"},
	TagInfix:      {"#INFIX", false, "infix notation"},
}

var (
	indexedTags  = make(map[string]Tag)
	toplevelTags = make(map[string]Tag)
)

func init() {
	for t := TagInvalid + 1; t < numTags; t++ {
		e := tagTable[t]
		if e.indexed {
			indexedTags[e.token] = t
		} else {
			toplevelTags[e.token] = t
		}
	}
}

// lookupTag resolves tok within the indexed or top-level branch.
func lookupTag(tok string, indexed bool) (Tag, bool) {
	var t Tag
	var ok bool
	if indexed {
		t, ok = indexedTags[tok]
	} else {
		t, ok = toplevelTags[tok]
	}
	return t, ok
}

// Tags returns the tags of one branch in declaration order.
func Tags(indexed bool) []Tag {
	var out []Tag
	for t := TagInvalid + 1; t < numTags; t++ {
		if tagTable[t].indexed == indexed {
			out = append(out, t)
		}
	}
	return out
}

// String returns the wire token, e.g. "#DEF".
func (t Tag) String() string {
	if t >= numTags || t == TagInvalid {
		return "#?"
	}
	return tagTable[t].token
}

func (t Tag) Description() string {
	if t >= numTags {
		return "invalid"
	}
	return tagTable[t].desc
}

// Indexed reports whether the tag follows a leading index field.
func (t Tag) Indexed() bool {
	return t < numTags && tagTable[t].indexed
}

// Supported reports whether lines with this tag can be decoded.
func (t Tag) Supported() bool {
	if t.Indexed() {
		return indexedHandlers[t] != nil
	}
	return toplevelHandlers[t] != nil
}
