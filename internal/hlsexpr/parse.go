package hlsexpr

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
)

// Parse reads a small s-expression surface syntax and builds the
// function it describes. It is a minimal stand-in for the
// expression-builder collaborator named in spec.md — not a general
// hardware description language, just enough to drive build/eval from
// a text file.
//
// Grammar, one form per top-level list:
//
//	(input NAME)
//	(const NAME VALUE)
//	(def NAME (OP ARG...))
//	(output NAME VALUE)
//	(pipeline II [DEPTH UNROLL])
//
// OP is one of add sub mul div and or not cmplt cmpeq mux pipelinereg.
// ARG is either a previously bound NAME or a literal integer.
func Parse(name, src string) (*Function, error) {
	var s scanner.Scanner
	s.Init(strings.NewReader(src))
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanComments | scanner.SkipComments
	s.Error = func(*scanner.Scanner, string) {}

	p := &parser{s: &s, fn: New(name), bound: make(map[string]Value)}
	for p.peek() != scanner.EOF {
		if err := p.parseForm(); err != nil {
			return nil, err
		}
	}
	return p.fn, nil
}

type parser struct {
	s     *scanner.Scanner
	fn    *Function
	bound map[string]Value
}

// peek returns the next non-whitespace character without consuming it.
func (p *parser) peek() rune {
	for {
		ch := p.s.Peek()
		if ch < 0 || ch >= 64 || p.s.Whitespace&(1<<uint(ch)) == 0 {
			return ch
		}
		p.s.Next()
	}
}

func (p *parser) next() (rune, string) {
	tok := p.s.Scan()
	return tok, p.s.TokenText()
}

func (p *parser) expect(text string) error {
	tok, got := p.next()
	if tok == scanner.EOF || got != text {
		return fmt.Errorf("expected %q, got %q at %s", text, got, p.s.Pos())
	}
	return nil
}

func (p *parser) parseForm() error {
	if err := p.expect("("); err != nil {
		return err
	}
	_, keyword := p.next()

	switch keyword {
	case "input":
		_, name := p.next()
		p.bound[name] = p.fn.Input(name)
		return p.expect(")")
	case "const":
		_, name := p.next()
		_, lit := p.next()
		val, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid constant %q at %s: %w", lit, p.s.Pos(), err)
		}
		p.bound[name] = p.fn.Const(val)
		return p.expect(")")
	case "def":
		_, name := p.next()
		val, err := p.parseExpr()
		if err != nil {
			return err
		}
		p.bound[name] = val
		return p.expect(")")
	case "output":
		_, portName := p.next()
		_, valueName := p.next()
		val, ok := p.bound[valueName]
		if !ok {
			return fmt.Errorf("output %q references unbound value %q", portName, valueName)
		}
		p.fn.Output(portName, val)
		return p.expect(")")
	case "pipeline":
		return p.parsePipeline()
	default:
		return fmt.Errorf("unknown form %q at %s", keyword, p.s.Pos())
	}
}

func (p *parser) parsePipeline() error {
	ii, err := p.parseInt()
	if err != nil {
		return err
	}
	if p.peek() == ')' {
		p.fn.Pipeline(ii)
		return p.expect(")")
	}
	depth, err := p.parseInt()
	if err != nil {
		return err
	}
	unroll, err := p.parseInt()
	if err != nil {
		return err
	}
	p.fn.PipelineAdvanced(ii, depth, unroll)
	return p.expect(")")
}

func (p *parser) parseInt() (int, error) {
	_, lit := p.next()
	v, err := strconv.Atoi(lit)
	if err != nil {
		return 0, fmt.Errorf("expected integer, got %q at %s: %w", lit, p.s.Pos(), err)
	}
	return v, nil
}

// parseExpr parses "(OP ARG...)" and returns the value it produces.
func (p *parser) parseExpr() (Value, error) {
	if err := p.expect("("); err != nil {
		return Value{}, err
	}
	_, op := p.next()

	var args []Value
	for p.peek() != ')' {
		v, err := p.parseArg()
		if err != nil {
			return Value{}, err
		}
		args = append(args, v)
	}
	if err := p.expect(")"); err != nil {
		return Value{}, err
	}

	return p.applyOp(op, args)
}

func (p *parser) parseArg() (Value, error) {
	if p.peek() == '(' {
		return p.parseExpr()
	}
	tok, text := p.next()
	if tok == scanner.Int {
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid literal %q at %s: %w", text, p.s.Pos(), err)
		}
		return p.fn.Const(v), nil
	}
	val, ok := p.bound[text]
	if !ok {
		return Value{}, fmt.Errorf("reference to unbound value %q at %s", text, p.s.Pos())
	}
	return val, nil
}

func (p *parser) applyOp(op string, args []Value) (Value, error) {
	binary := func(f func(Value, Value) Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, fmt.Errorf("%s takes 2 arguments, got %d", op, len(args))
		}
		return f(args[0], args[1]), nil
	}

	switch op {
	case "add":
		return binary(Value.Add)
	case "sub":
		return binary(Value.Sub)
	case "mul":
		return binary(Value.Mul)
	case "div":
		return binary(Value.Div)
	case "and":
		return binary(Value.And)
	case "or":
		return binary(Value.Or)
	case "cmplt":
		return binary(Value.CmpLt)
	case "cmpeq":
		return binary(Value.CmpEq)
	case "not":
		if len(args) != 1 {
			return Value{}, fmt.Errorf("not takes 1 argument, got %d", len(args))
		}
		return args[0].Not(), nil
	case "mux":
		if len(args) != 3 {
			return Value{}, fmt.Errorf("mux takes 3 arguments, got %d", len(args))
		}
		return args[0].Mux(args[1], args[2]), nil
	case "pipelinereg":
		if len(args) != 1 {
			return Value{}, fmt.Errorf("pipelinereg takes 1 argument, got %d", len(args))
		}
		return args[0].PipelineReg(), nil
	default:
		return Value{}, fmt.Errorf("unknown operator %q", op)
	}
}
