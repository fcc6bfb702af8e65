package lexer

import "fmt"

// TokenType classifies a lexical token.
type TokenType int

const (
	// Special tokens.
	TokenError TokenType = iota
	TokenEOF

	// Delimiters and punctuation.
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLParen    // (
	TokenRParen    // )
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenColon     // :
	TokenComma     // ,
	TokenDot       // .
	TokenNewline   // \n
	TokenPipe      // |
	TokenHash      // # (also visibility, also color marker)
	TokenLAngle    // <
	TokenRAngle    // >
	TokenEquals    // =
	TokenSemicolon // ;

	// Visibility markers.
	TokenPlus  // +
	TokenMinus // -
	TokenTilde // ~
	TokenStar  // * (lone, e.g. create-marker "**")
	TokenBang  // ! (lone, e.g. destroy-marker "!!")

	// Diagram delimiters.
	TokenStartUML // @startuml
	TokenEndUML   // @enduml

	// Class diagram keywords.
	TokenClass      // class
	TokenInterface  // interface
	TokenEnum       // enum
	TokenAbstract   // abstract
	TokenExtends    // extends
	TokenImplements // implements
	TokenPackage    // package
	TokenNamespace  // namespace
	TokenAs         // as
	TokenStatic     // {static}
	TokenField      // {field}
	TokenMethod     // {method}

	// Component diagram keywords.
	TokenComponent // component

	// State diagram keywords.
	TokenState // state

	// Sequence diagram keywords.
	TokenParticipant // participant
	TokenActor       // actor
	TokenBoundary    // boundary
	TokenControl     // control
	TokenEntity      // entity
	TokenDatabase    // database
	TokenCollections // collections
	TokenQueue       // queue
	TokenBox         // box
	TokenActivate    // activate
	TokenDeactivate  // deactivate
	TokenDestroy     // destroy
	TokenReturn      // return
	TokenAlt         // alt
	TokenOpt         // opt
	TokenElse        // else
	TokenEnd         // end
	TokenLoop        // loop
	TokenPar         // par
	TokenBreak       // break
	TokenCritical    // critical
	TokenRef         // ref
	TokenGroup       // group
	TokenAutonumber  // autonumber
	TokenNote        // note
	TokenOf          // of
	TokenOver        // over
	TokenLeft        // left
	TokenRight       // right
	TokenTop         // top
	TokenBottom      // bottom

	// Arrows.
	TokenArrow // ->, -->, <-, <--, <|--, *--, o--, etc.

	// Directives.
	TokenSkinparam // skinparam
	TokenHide      // hide
	TokenShow      // show
	TokenTitle     // title
	TokenHeader    // header
	TokenFooter    // footer

	// Literals.
	TokenIdent  // identifiers
	TokenString // "..."
	TokenNumber // integer or decimal

	// Comments.
	TokenLineComment  // ' single-line comment
	TokenBlockComment // /' ... '/
)

var tokenNames = map[TokenType]string{
	TokenError: "Error", TokenEOF: "EOF",
	TokenLBrace: "LBrace", TokenRBrace: "RBrace", TokenLParen: "LParen", TokenRParen: "RParen",
	TokenLBracket: "LBracket", TokenRBracket: "RBracket", TokenColon: "Colon", TokenComma: "Comma",
	TokenDot: "Dot", TokenNewline: "Newline", TokenPipe: "Pipe", TokenHash: "Hash",
	TokenLAngle: "LAngle", TokenRAngle: "RAngle", TokenEquals: "Equals", TokenSemicolon: "Semicolon",
	TokenPlus: "Plus", TokenMinus: "Minus", TokenTilde: "Tilde", TokenStar: "Star", TokenBang: "Bang",
	TokenStartUML: "StartUML", TokenEndUML: "EndUML",
	TokenClass: "Class", TokenInterface: "Interface", TokenEnum: "Enum", TokenAbstract: "Abstract",
	TokenExtends: "Extends", TokenImplements: "Implements", TokenPackage: "Package",
	TokenNamespace: "Namespace", TokenAs: "As", TokenStatic: "Static", TokenField: "Field",
	TokenMethod: "Method", TokenComponent: "Component", TokenState: "State",
	TokenParticipant: "Participant", TokenActor: "Actor", TokenBoundary: "Boundary",
	TokenControl: "Control", TokenEntity: "Entity", TokenDatabase: "Database",
	TokenCollections: "Collections", TokenQueue: "Queue", TokenBox: "Box",
	TokenActivate: "Activate", TokenDeactivate: "Deactivate", TokenDestroy: "Destroy",
	TokenReturn: "Return", TokenAlt: "Alt", TokenOpt: "Opt", TokenElse: "Else", TokenEnd: "End",
	TokenLoop: "Loop", TokenPar: "Par", TokenBreak: "Break", TokenCritical: "Critical",
	TokenRef: "Ref", TokenGroup: "Group", TokenAutonumber: "Autonumber", TokenNote: "Note",
	TokenOf: "Of", TokenOver: "Over", TokenLeft: "Left", TokenRight: "Right", TokenTop: "Top",
	TokenBottom: "Bottom", TokenArrow: "Arrow", TokenSkinparam: "Skinparam", TokenHide: "Hide",
	TokenShow: "Show", TokenTitle: "Title", TokenHeader: "Header", TokenFooter: "Footer",
	TokenIdent: "Ident", TokenString: "String", TokenNumber: "Number",
	TokenLineComment: "LineComment", TokenBlockComment: "BlockComment",
}

// String renders the token type's name, handwritten rather than generated
// since the token set keeps changing shape across diagram families.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Pos represents a source position.
type Pos struct {
	Line   int // 1-based line number
	Column int // 1-based column number
}

// String returns the position as "line:col".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a lexical token with its type, literal text, and source position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Pos
}

// String returns a debug representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Literal, t.Pos)
}
