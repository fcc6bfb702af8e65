package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/plantgo/plantgo/internal/ast"
	"github.com/plantgo/plantgo/internal/lexer"
)

func (p *Parser) parseParticipant(kind ast.ParticipantKind) *ast.Participant {
	tok := p.advance() // consume keyword
	name := p.readParticipantName()
	part := &ast.Participant{Pos: tok.Pos, Name: name, Kind: kind}
	if p.current().Type == lexer.TokenAs {
		p.advance()
		if p.current().Type == lexer.TokenIdent || p.current().Type == lexer.TokenString {
			part.Alias = stripQuotes(p.current().Literal)
			p.advance()
		}
	}
	for {
		switch p.current().Type {
		case lexer.TokenHash:
			p.advance()
			if p.current().Type == lexer.TokenIdent {
				part.Color = "#" + p.current().Literal
				p.advance()
			}
		case lexer.TokenIdent:
			if strings.EqualFold(p.current().Literal, "order") {
				p.advance()
				if p.current().Type == lexer.TokenNumber {
					n, _ := strconv.Atoi(p.current().Literal)
					part.Order = n
					p.advance()
				}
				continue
			}
			goto done
		case lexer.TokenLAngle:
			// <<stereotype>> — consumed but not stored on Participant; note
			// the occurrence so parsing doesn't choke on it.
			p.advance()
			if p.current().Type == lexer.TokenLAngle {
				p.advance()
			}
			for p.current().Type != lexer.TokenRAngle && p.current().Type != lexer.TokenNewline && p.current().Type != lexer.TokenEOF {
				p.advance()
			}
			if p.current().Type == lexer.TokenRAngle {
				p.advance()
				if p.current().Type == lexer.TokenRAngle {
					p.advance()
				}
			}
		default:
			goto done
		}
	}
done:
	p.skipToNextLine()
	return part
}

func (p *Parser) readParticipantName() string {
	if p.current().Type == lexer.TokenString {
		name := stripQuotes(p.current().Literal)
		p.advance()
		return name
	}
	if p.current().Type == lexer.TokenIdent {
		name := p.current().Literal
		p.advance()
		return name
	}
	return ""
}

// parseBox handles "box [title] [color] ... end box". Boxes may not nest
// (§4.1.1); participants declared between the markers are attached to the
// surrounding box by name.
func (p *Parser) parseBox() ast.Statement {
	tok := p.advance() // consume 'box'
	title := ""
	color := ""
	for p.current().Type != lexer.TokenNewline && p.current().Type != lexer.TokenEOF {
		if p.current().Type == lexer.TokenHash {
			p.advance()
			if p.current().Type == lexer.TokenIdent {
				color = "#" + p.current().Literal
				p.advance()
			}
			continue
		}
		if title != "" {
			title += " "
		}
		title += stripQuotes(p.current().Literal)
		p.advance()
	}
	p.skipNewlines()
	box := &ast.Box{Pos: tok.Pos, Title: strings.TrimSpace(title), Color: color}
	for !p.atBoxEnd() && p.current().Type != lexer.TokenEOF {
		p.skipNewlines()
		if p.atBoxEnd() || p.current().Type == lexer.TokenEOF {
			break
		}
		stmt := p.parseStatement()
		if stmt == nil {
			continue
		}
		if part, ok := stmt.(*ast.Participant); ok {
			part.Box = box.Title
			box.Members = append(box.Members, part.ID())
		}
		p.pending = append(p.pending, stmt)
	}
	if p.atBoxEnd() {
		p.advance() // 'end'
		if p.current().Type == lexer.TokenIdent && strings.EqualFold(p.current().Literal, "box") {
			p.advance()
		}
		p.skipToNextLine()
	} else {
		p.addError(p.current().Pos, "expected 'end box' to close box")
	}
	return box
}

func (p *Parser) atBoxEnd() bool {
	return p.current().Type == lexer.TokenEnd && strings.EqualFold(p.peek().Literal, "box")
}

func (p *Parser) parseActivate(kind ast.ActivateKind) *ast.Activate {
	tok := p.advance() // consume 'activate'/'deactivate'/'destroy'
	target := ""
	if p.current().Type == lexer.TokenIdent || p.current().Type == lexer.TokenString {
		target = stripQuotes(p.current().Literal)
		p.advance()
	}
	color := ""
	if p.current().Type == lexer.TokenHash {
		p.advance()
		if p.current().Type == lexer.TokenIdent {
			color = "#" + p.current().Literal
			p.advance()
		}
	}
	p.skipToNextLine()
	return &ast.Activate{Pos: tok.Pos, Target: target, Kind: kind, Color: color}
}

func (p *Parser) parseReturn() *ast.Return {
	tok := p.advance() // consume 'return'
	label := strings.TrimSpace(p.readRestOfLine())
	return &ast.Return{Pos: tok.Pos, Label: label}
}

// parseFragment is a push-down automaton over fragment sections (§4.1.1):
// the header condition opens section 0; each "else [cond]" finalizes the
// current section and opens the next; "end" finalizes and emits the
// Fragment.
func (p *Parser) parseFragment(kind ast.FragmentKind) *ast.Fragment {
	tok := p.advance() // consume keyword (alt, opt, loop, par, break, critical, ref, group)
	condition := strings.TrimSpace(p.readRestOfLine())
	frag := &ast.Fragment{Pos: tok.Pos, Kind: kind, Condition: condition}
	section := ast.FragmentSection{Pos: tok.Pos, Condition: condition}
	p.skipNewlines()
	for !p.atFragmentBoundary() {
		stmt := p.parseStatementInContext(true)
		if stmt != nil {
			section.Statements = append(section.Statements, stmt)
		}
		p.skipNewlines()
	}
	frag.Sections = append(frag.Sections, section)
	for p.current().Type == lexer.TokenElse {
		etok := p.advance() // consume 'else'
		econd := strings.TrimSpace(p.readRestOfLine())
		esec := ast.FragmentSection{Pos: etok.Pos, Condition: econd}
		p.skipNewlines()
		for !p.atFragmentBoundary() {
			stmt := p.parseStatementInContext(true)
			if stmt != nil {
				esec.Statements = append(esec.Statements, stmt)
			}
			p.skipNewlines()
		}
		frag.Sections = append(frag.Sections, esec)
	}
	if p.current().Type == lexer.TokenEnd {
		p.advance()
		p.skipToNextLine()
	} else {
		p.addError(p.current().Pos, fmt.Sprintf("expected 'end' to close %s fragment", kind))
	}
	return frag
}

func (p *Parser) atFragmentBoundary() bool {
	t := p.current().Type
	return t == lexer.TokenEnd || t == lexer.TokenElse || t == lexer.TokenEndUML || t == lexer.TokenEOF
}

// parseAutonumber implements the compact autonumber grammar (§4.1.1):
//
//	autonumber [N [step]] [format?]
//	autonumber stop
//	autonumber resume [N] [format?]
//	autonumber inc LEVEL
func (p *Parser) parseAutonumber() *ast.Autonumber {
	tok := p.advance() // consume 'autonumber'
	an := &ast.Autonumber{Pos: tok.Pos, Command: ast.AutonumberStart}
	if p.current().Type == lexer.TokenIdent {
		switch strings.ToLower(p.current().Literal) {
		case "stop":
			p.advance()
			an.Command = ast.AutonumberStop
			p.skipToNextLine()
			return an
		case "resume":
			p.advance()
			an.Command = ast.AutonumberResume
		case "inc":
			p.advance()
			an.Command = ast.AutonumberInc
			if p.current().Type == lexer.TokenNumber {
				n, _ := strconv.Atoi(p.current().Literal)
				an.Level = n
				p.advance()
			}
			p.skipToNextLine()
			return an
		}
	}
	if p.current().Type == lexer.TokenNumber {
		n, err := strconv.Atoi(p.current().Literal)
		if err != nil {
			p.addError(p.current().Pos, fmt.Sprintf("malformed autonumber start %q", p.current().Literal))
		}
		an.Start = n
		p.advance()
		if p.current().Type == lexer.TokenNumber {
			step, _ := strconv.Atoi(p.current().Literal)
			an.Step = step
			p.advance()
		}
	}
	if p.current().Type == lexer.TokenString {
		an.Format = stripQuotes(p.current().Literal)
		p.advance()
	}
	p.skipToNextLine()
	return an
}

func (p *Parser) parseDivider() *ast.Divider {
	tok := p.advance() // consume first '='
	if p.current().Type == lexer.TokenEquals {
		p.advance()
	}
	var parts []string
	for p.current().Type != lexer.TokenNewline && p.current().Type != lexer.TokenEOF {
		if p.current().Type == lexer.TokenEquals {
			p.advance()
			if p.current().Type == lexer.TokenEquals {
				p.advance()
				break
			}
			parts = append(parts, "=")
			continue
		}
		parts = append(parts, p.current().Literal)
		p.advance()
	}
	text := strings.TrimSpace(strings.Join(parts, " "))
	return &ast.Divider{Pos: tok.Pos, Text: text}
}

func (p *Parser) parseDelay() *ast.Delay {
	tok := p.advance() // consume '...' arrow
	text := ""
	if p.current().Type != lexer.TokenNewline && p.current().Type != lexer.TokenEOF {
		var parts []string
		for p.current().Type != lexer.TokenNewline && p.current().Type != lexer.TokenEOF {
			if p.current().Type == lexer.TokenArrow && isDelayArrow(p.current().Literal) {
				p.advance()
				break
			}
			parts = append(parts, p.current().Literal)
			p.advance()
		}
		text = strings.TrimSpace(strings.Join(parts, " "))
	}
	return &ast.Delay{Pos: tok.Pos, Text: text}
}

// parseSpace handles an explicit vertical spacer: "|||" or "||40||".
func (p *Parser) parseSpace() *ast.Space {
	tok := p.advance() // consume first '|'
	height := 0.0
	if p.current().Type == lexer.TokenNumber {
		n, _ := strconv.ParseFloat(p.current().Literal, 64)
		height = n
		p.advance()
	}
	for p.current().Type == lexer.TokenPipe {
		p.advance()
	}
	p.skipToNextLine()
	return &ast.Space{Pos: tok.Pos, Height: height}
}

func (p *Parser) parseSequenceIdentStatement() ast.Statement {
	tok := p.current()
	name := tok.Literal
	p.advance()
	if p.current().Type == lexer.TokenArrow {
		return p.parseMessage(tok.Pos, name)
	}
	p.addError(tok.Pos, fmt.Sprintf("unexpected identifier %q", name))
	p.skipToNextLine()
	return nil
}

// parseMessage decomposes the arrow token and the activation-shorthand
// suffix into the Message's flags (§4.1.1).
func (p *Parser) parseMessage(pos lexer.Pos, from string) *ast.Message {
	arrowTok := p.advance() // consume arrow
	arrow := arrowTok.Literal
	to := ""
	if p.current().Type == lexer.TokenIdent || p.current().Type == lexer.TokenString {
		to = stripQuotes(p.current().Literal)
		p.advance()
	}
	msg := &ast.Message{
		Pos:       pos,
		From:      from,
		To:        to,
		Arrow:     arrow,
		Dashed:    isDashedArrow(arrow),
		ArrowType: classifyArrowHead(arrow),
	}
	p.parseActivationSuffix(msg)
	if p.current().Type == lexer.TokenColon {
		p.advance()
		msg.Label = strings.TrimSpace(p.readRestOfLine())
	} else {
		p.skipToNextLine()
	}
	return msg
}

// parseActivationSuffix consumes the "++"/"--"/"**"/"!!" markers that may
// directly follow a message target with no intervening space (§4.1.1):
// trailing "++" activates the target, "**" creates it, "!!" destroys it;
// a bare "--" deactivates the source.
func (p *Parser) parseActivationSuffix(msg *ast.Message) {
	switch p.current().Type {
	case lexer.TokenPlus:
		if p.peek().Type == lexer.TokenPlus {
			p.advance()
			p.advance()
			msg.Activate = true
		}
	case lexer.TokenStar:
		if p.peek().Type == lexer.TokenStar {
			p.advance()
			p.advance()
			msg.Create = true
		}
	case lexer.TokenBang:
		if p.peek().Type == lexer.TokenBang {
			p.advance()
			p.advance()
			msg.Destroy = true
		}
	case lexer.TokenArrow:
		if isAllDashes(p.current().Literal) {
			p.advance()
			msg.Deactivate = true
		}
	}
	if p.current().Type == lexer.TokenHash {
		p.advance()
		if p.current().Type == lexer.TokenIdent {
			msg.ActivationColor = "#" + p.current().Literal
			p.advance()
		}
	}
}

func isAllDashes(s string) bool {
	if len(s) < 2 {
		return false
	}
	for _, ch := range s {
		if ch != '-' {
			return false
		}
	}
	return true
}

func classifyArrowHead(arrow string) ast.ArrowHead {
	switch {
	case strings.HasSuffix(arrow, ">>"):
		return ast.ArrowThin
	case strings.HasSuffix(arrow, ">x"):
		return ast.ArrowCross
	case strings.HasSuffix(arrow, ">o"):
		return ast.ArrowCircle
	case strings.Contains(arrow, `\`) || strings.Contains(arrow, "/"):
		return ast.ArrowHalfTop
	default:
		return ast.ArrowNormal
	}
}

func isDashedArrow(arrow string) bool {
	shaft := strings.TrimLeft(arrow, "<|")
	shaft = strings.TrimRight(shaft, ">|*ox")
	return strings.Contains(shaft, "..") || strings.Contains(shaft, "--")
}

func isDelayArrow(literal string) bool {
	for _, ch := range literal {
		if ch != '.' {
			return false
		}
	}
	return len(literal) >= 3
}

func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
