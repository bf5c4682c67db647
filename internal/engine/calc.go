package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrorToken is the only raw failure text ever shown on the display.
const ErrorToken = "Error"

var (
	// ErrDivideByZero is the arithmetic fault for x/0.
	ErrDivideByZero = errors.New("division by zero")
	// ErrBadExpression is the parse fault for malformed input.
	ErrBadExpression = errors.New("malformed expression")
)

// Evaluate parses and evaluates an arithmetic expression with standard
// precedence: addition/subtraction lowest, multiplication/division higher,
// unary minus, parenthesized groups highest.
//
// Percent is context sensitive. A trailing % on an operand of + or -
// multiplies the running left operand by the percentage (100+20% = 120),
// while a % operand consumed by * or / behaves as plain value/100
// (50%*2 = 1).
func Evaluate(expr string) (float64, error) {
	p := &exprParser{src: strings.TrimSpace(expr)}
	if p.src == "" {
		return 0, ErrBadExpression
	}
	v, _, err := p.parseSum()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return 0, ErrBadExpression
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrDivideByZero
	}
	return v, nil
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// parseSum handles + and - and applies the contextual percent rule.
func (p *exprParser) parseSum() (float64, bool, error) {
	acc, accPct, err := p.parseProduct()
	if err != nil {
		return 0, false, err
	}
	if accPct {
		// A bare leading percent operand is plain value/100.
		acc /= 100
		accPct = false
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return acc, accPct, nil
		}
		p.pos++
		rhs, pct, err := p.parseProduct()
		if err != nil {
			return 0, false, err
		}
		if pct {
			rhs = acc * rhs / 100
		}
		if op == '+' {
			acc += rhs
		} else {
			acc -= rhs
		}
	}
}

// parseProduct handles * and /. Percent operands here are plain value/100.
// A lone percent factor propagates upward so the additive context can apply
// its own rule.
func (p *exprParser) parseProduct() (float64, bool, error) {
	acc, accPct, err := p.parseFactor()
	if err != nil {
		return 0, false, err
	}
	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return acc, accPct, nil
		}
		p.pos++
		if accPct {
			acc /= 100
			accPct = false
		}
		rhs, pct, err := p.parseFactor()
		if err != nil {
			return 0, false, err
		}
		if pct {
			rhs /= 100
		}
		if op == '*' {
			acc *= rhs
		} else {
			if rhs == 0 {
				return 0, false, ErrDivideByZero
			}
			acc /= rhs
		}
	}
}

// parseFactor handles unary minus and the trailing percent marker.
func (p *exprParser) parseFactor() (float64, bool, error) {
	if p.peek() == '-' {
		p.pos++
		v, pct, err := p.parseFactor()
		return -v, pct, err
	}
	v, err := p.parsePrimary()
	if err != nil {
		return 0, false, err
	}
	pct := false
	for p.peek() == '%' {
		p.pos++
		pct = true
	}
	return v, pct, nil
}

func (p *exprParser) parsePrimary() (float64, error) {
	c := p.peek()
	if c == '(' {
		p.pos++
		v, pct, err := p.parseSum()
		if err != nil {
			return 0, err
		}
		if pct {
			v /= 100
		}
		if p.peek() != ')' {
			return 0, ErrBadExpression
		}
		p.pos++
		return v, nil
	}
	start := p.pos
	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		if (ch >= '0' && ch <= '9') || ch == '.' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return 0, ErrBadExpression
	}
	lit := strings.TrimSuffix(p.src[start:p.pos], ".")
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, ErrBadExpression
	}
	return v, nil
}

// FormatResult renders an evaluation result: integral values without a
// decimal point, everything else fixed to ten places with trailing zeros
// and a trailing point stripped.
func FormatResult(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	s := strconv.FormatFloat(v, 'f', 10, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}
