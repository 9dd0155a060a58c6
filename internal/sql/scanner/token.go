package scanner

// Kind tags a token. The set is closed.
type Kind int

const (
	Create Kind = iota
	Table
	Database
	Use
	List
	Databases
	Tables
	Identifier
	LBrace
	RBrace
	Comma
)

var kindNames = [...]string{
	Create:     "CREATE",
	Table:      "TABLE",
	Database:   "DATABASE",
	Use:        "USE",
	List:       "LIST",
	Databases:  "DATABASES",
	Tables:     "TABLES",
	Identifier: "IDENTIFIER",
	LBrace:     "LBRACE",
	RBrace:     "RBRACE",
	Comma:      "COMMA",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// keywords match exactly; "create" is an identifier.
var keywords = map[string]Kind{
	"CREATE":    Create,
	"TABLE":     Table,
	"DATABASE":  Database,
	"USE":       Use,
	"LIST":      List,
	"DATABASES": Databases,
	"TABLES":    Tables,
}

// Keywords returns the keyword spellings, e.g. for shell completion.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := Create; k <= Tables; k++ {
		out = append(out, k.String())
	}
	return out
}

// Token is one lexical unit. Literal is only set for Identifier.
type Token struct {
	Kind    Kind
	Literal string
}

func (t Token) String() string {
	if t.Kind == Identifier {
		return "IDENTIFIER(" + t.Literal + ")"
	}
	return t.Kind.String()
}

func Ident(name string) Token {
	return Token{Kind: Identifier, Literal: name}
}
