package match

import (
	"fmt"
	"regexp"

	"github.com/dlclark/regexp2"
)

// engine is implemented by each dialect backend.
type engine interface {
	iterate(text string) iterator
	test(text string) (bool, error)
}

// Pattern is a compiled regular expression. It holds no iteration state and
// may be shared; every call to Matches returns an independent Sequence.
type Pattern struct {
	expr    string
	options Options
	engine  engine
}

// Compile compiles expr with the given options.
// The returned error wraps ErrInvalidPattern when expr is not valid in the
// selected dialect.
func Compile(expr string, opts Options) (*Pattern, error) {
	var eng engine

	switch opts.Dialect {
	case ECMAScript:
		flags := regexp2.RegexOptions(regexp2.ECMAScript)
		if opts.IgnoreCase {
			flags |= regexp2.IgnoreCase
		}
		if opts.Multiline {
			flags |= regexp2.Multiline
		}
		re, err := regexp2.Compile(expr, flags)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		if opts.Timeout > 0 {
			re.MatchTimeout = opts.Timeout
		}
		eng = &ecmaEngine{re: re}

	case RE2:
		prefix := ""
		if opts.IgnoreCase {
			prefix += "(?i)"
		}
		if opts.Multiline {
			prefix += "(?m)"
		}
		re, err := regexp.Compile(prefix + expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		// at consumes the rune before a position, then captures the
		// highest-priority match of expr starting there.
		at, err := regexp.Compile(`\A(?s:.)(` + prefix + expr + `)`)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		eng = &re2Engine{re: re, at: at}

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownDialect, opts.Dialect)
	}

	return &Pattern{expr: expr, options: opts, engine: eng}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string, opts Options) *Pattern {
	p, err := Compile(expr, opts)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate reports whether expr compiles with the given options.
func Validate(expr string, opts Options) error {
	_, err := Compile(expr, opts)
	return err
}

// String returns the source expression.
func (p *Pattern) String() string {
	return p.expr
}

// Options returns the options the pattern was compiled with.
func (p *Pattern) Options() Options {
	return p.options
}

// Matches returns a new sequence over the matches of p in text.
func (p *Pattern) Matches(text string) *Sequence {
	s := &Sequence{engine: p.engine, text: text}
	s.Reset()
	return s
}

// Test reports whether text contains a match of p.
func (p *Pattern) Test(text string) (bool, error) {
	return p.engine.test(text)
}

// ecmaEngine backs the ECMAScript dialect.
type ecmaEngine struct {
	re *regexp2.Regexp
}

func (e *ecmaEngine) iterate(text string) iterator {
	return &ecmaIterator{re: e.re, runes: []rune(text)}
}

func (e *ecmaEngine) test(text string) (bool, error) {
	return e.re.MatchString(text)
}

// re2Engine backs the RE2 dialect.
type re2Engine struct {
	re *regexp.Regexp
	at *regexp.Regexp
}

func (e *re2Engine) iterate(text string) iterator {
	return &re2Iterator{re: e.re, at: e.at, text: text}
}

func (e *re2Engine) test(text string) (bool, error) {
	return e.re.MatchString(text), nil
}
