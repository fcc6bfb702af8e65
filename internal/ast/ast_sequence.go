package ast

import "github.com/plantgo/plantgo/internal/lexer"

// ParticipantKind classifies sequence diagram participant types.
type ParticipantKind int

const (
	ParticipantDefault ParticipantKind = iota
	ParticipantActor
	ParticipantBoundary
	ParticipantControl
	ParticipantEntity
	ParticipantDatabase
	ParticipantCollections
	ParticipantQueue
)

// FragmentKind classifies combined fragment types.
type FragmentKind int

const (
	FragmentAlt      FragmentKind = iota // alt/else
	FragmentOpt                          // opt
	FragmentLoop                         // loop
	FragmentPar                          // par
	FragmentBreak                        // break
	FragmentCritical                     // critical
	FragmentRef                          // ref
	FragmentGroup                        // group
)

// String renders the fragment kind the way it appears in rendered labels.
func (k FragmentKind) String() string {
	switch k {
	case FragmentOpt:
		return "opt"
	case FragmentLoop:
		return "loop"
	case FragmentPar:
		return "par"
	case FragmentBreak:
		return "break"
	case FragmentCritical:
		return "critical"
	case FragmentRef:
		return "ref"
	case FragmentGroup:
		return "group"
	default:
		return "alt"
	}
}

// Participant represents a sequence diagram participant declaration.
type Participant struct {
	Pos   lexer.Pos
	Name  string
	Alias string
	Kind  ParticipantKind
	Color string // optional "#RRGGBB" or named shade, "" if unset
	Order int    // explicit "order N" override, 0 if unset
	Box   string // enclosing box title, "" if not inside a box
}

func (p *Participant) Position() lexer.Pos { return p.Pos }
func (p *Participant) stmtNode()           {}

// ID returns the participant's canonical identifier: its alias if declared,
// otherwise its name, per §4.1.1's "alias is canonical" rule.
func (p *Participant) ID() string {
	if p.Alias != "" {
		return p.Alias
	}
	return p.Name
}

// Box represents an inline "box [title] [color] ... end box" grouping.
// Boxes may not nest (§4.1.1).
type Box struct {
	Pos     lexer.Pos
	Title   string
	Color   string
	Members []string // participant ids declared between the markers
}

func (b *Box) Position() lexer.Pos { return b.Pos }
func (b *Box) stmtNode()           {}

// ArrowHead classifies the arrowhead glyph of a message arrow.
type ArrowHead int

const (
	ArrowNormal ArrowHead = iota
	ArrowThin             // >>
	ArrowCross            // >x
	ArrowCircle           // >o
	ArrowHalfTop          // \\ or //
)

// Message represents a sequence diagram message between participants.
type Message struct {
	Pos        lexer.Pos
	From       string
	To         string
	Label      string
	Arrow      string // raw arrow literal, e.g. "-->"
	Dashed     bool
	ArrowType  ArrowHead
	Activate   bool // trailing "++" on target
	Deactivate bool // leading "--" before an activation marker, on source
	Create     bool // trailing "**" on target
	Destroy    bool // trailing "!!" on target
	ActivationColor string // optional color for the activation bar, "" if unset
}

func (m *Message) Position() lexer.Pos { return m.Pos }
func (m *Message) stmtNode()           {}

// FragmentSection is one branch of a combined fragment: the header section
// plus every "else"-introduced section that follows it. Sections are stored
// in source order and never overlap vertically once laid out (§3.3).
type FragmentSection struct {
	Pos        lexer.Pos
	Condition  string // "" if this section carries no label
	Statements []Statement
}

// Fragment represents a combined fragment (alt, opt, loop, par, break,
// critical, group, ref).
type Fragment struct {
	Pos       lexer.Pos
	Kind      FragmentKind
	Condition string // header condition, may be empty
	Sections  []FragmentSection
}

func (f *Fragment) Position() lexer.Pos { return f.Pos }
func (f *Fragment) stmtNode()           {}

// Activate represents a standalone activate/deactivate/destroy statement.
type ActivateKind int

const (
	ActivateOn ActivateKind = iota
	ActivateOff
	ActivateDestroy
)

type Activate struct {
	Pos    lexer.Pos
	Target string
	Kind   ActivateKind
	Color  string
}

func (a *Activate) Position() lexer.Pos { return a.Pos }
func (a *Activate) stmtNode()           {}

// Return represents a return message in a sequence diagram; its caller and
// callee are resolved at layout time via the call stack (§4.2.4).
type Return struct {
	Pos   lexer.Pos
	Label string
}

func (r *Return) Position() lexer.Pos { return r.Pos }
func (r *Return) stmtNode()           {}

// AutonumberCommand is the tagged union of autonumber directives.
type AutonumberCommand int

const (
	AutonumberStart AutonumberCommand = iota
	AutonumberStop
	AutonumberResume
	AutonumberInc
)

// Autonumber represents an autonumber directive in a sequence diagram.
// Start/Resume carry optional parameters; Stop and Inc carry none (Inc
// carries a nesting Level instead).
type Autonumber struct {
	Pos     lexer.Pos
	Command AutonumberCommand
	Start   int    // 0 means "unspecified, keep current"
	Step    int    // 0 means "unspecified, keep current"
	Format  string // digit-mask format string, "" if unspecified
	Level   int    // only meaningful for Inc
}

func (a *Autonumber) Position() lexer.Pos { return a.Pos }
func (a *Autonumber) stmtNode()           {}

// Divider represents a divider (== text ==) in a sequence diagram.
type Divider struct {
	Pos  lexer.Pos
	Text string
}

func (d *Divider) Position() lexer.Pos { return d.Pos }
func (d *Divider) stmtNode()           {}

// Delay represents a delay (...) or (... text ...) in a sequence diagram.
type Delay struct {
	Pos  lexer.Pos
	Text string
}

func (d *Delay) Position() lexer.Pos { return d.Pos }
func (d *Delay) stmtNode()           {}

// Space represents explicit vertical padding ("|||" or "||N||").
type Space struct {
	Pos    lexer.Pos
	Height float64 // 0 means "use the default spacer height"
}

func (s *Space) Position() lexer.Pos { return s.Pos }
func (s *Space) stmtNode()           {}

// Reference represents a nested-diagram reference (a stub per §3.2: it
// carries only the label shown inside the frame, never an inlined diagram).
type Reference struct {
	Pos          lexer.Pos
	Label        string
	Participants []string
}

func (r *Reference) Position() lexer.Pos { return r.Pos }
func (r *Reference) stmtNode()           {}
