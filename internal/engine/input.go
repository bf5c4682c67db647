package engine

import "strings"

// Calculator input assembly: digits and operators build either the
// traditional number1/op/number2 registers or, once parentheses or percent
// are involved, a free-form expression string that supersedes them.

const maxEntryDigits = 12

// calcDigit appends a digit (or decimal point) to the active register.
func calcDigit(s State, d string) State {
	if s.Expression != "" {
		s.Expression += d
		return s
	}
	// A fresh digit after a completed evaluation starts a new calculation.
	if s.Display != "" && s.Op == "" {
		s = s.ClearEntry()
	}
	if s.Op == "" {
		s.Number1 = appendDigit(s.Number1, d)
	} else {
		s.Number2 = appendDigit(s.Number2, d)
	}
	return s
}

func appendDigit(cur, d string) string {
	if d == "." {
		if strings.Contains(cur, ".") {
			return cur
		}
		if cur == "" {
			return "0."
		}
		return cur + "."
	}
	if digitCount(cur) >= maxEntryDigits {
		return cur
	}
	if cur == "0" {
		return d
	}
	return cur + d
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// calcOperator applies one of + - * /.
func calcOperator(s State, op string) State {
	if s.Expression != "" {
		s.Expression = appendExprOperator(s.Expression, op)
		return s
	}
	if s.Number1 == "" {
		if op == BtnMinus {
			s.Number1 = "-"
		}
		return s
	}
	if s.Number1 == "-" {
		return s
	}
	if s.Op != "" && s.Number2 != "" {
		// Chain: fold the pending pair before taking the next operator.
		s = calcEquals(s)
		if s.Display == ErrorToken {
			return s
		}
	}
	s.Op = op
	s.Display = ""
	return s
}

func appendExprOperator(expr, op string) string {
	if expr == "" {
		if op == BtnMinus {
			return op
		}
		return expr
	}
	last := expr[len(expr)-1]
	if last == '+' || last == '-' || last == '*' || last == '/' {
		return expr[:len(expr)-1] + op
	}
	if last == '(' && op != BtnMinus {
		return expr
	}
	return expr + op
}

// calcParens enters expression mode and appends an opening or closing
// parenthesis depending on balance and the trailing character.
func calcParens(s State) State {
	if s.Expression == "" {
		s.Expression = assembleExpression(s)
		s.Number1, s.Number2, s.Op = "", "", ""
	}
	open := 0
	for _, r := range s.Expression {
		switch r {
		case '(':
			open++
		case ')':
			open--
		}
	}
	if s.Expression == "" {
		s.Expression = "("
		return s
	}
	last := s.Expression[len(s.Expression)-1]
	closing := open > 0 && (last == ')' || (last >= '0' && last <= '9') || last == '%')
	if closing {
		s.Expression += ")"
	} else {
		if (last >= '0' && last <= '9') || last == ')' || last == '%' {
			s.Expression += "*("
		} else {
			s.Expression += "("
		}
	}
	return s
}

// calcPercent tags the current operand with the context-sensitive percent.
func calcPercent(s State) State {
	if s.Expression != "" {
		last := s.Expression[len(s.Expression)-1]
		if (last >= '0' && last <= '9') || last == ')' {
			s.Expression += "%"
		}
		return s
	}
	if s.Op != "" && s.Number2 != "" {
		s.Number2 += "%"
	} else if s.Op == "" && s.Number1 != "" {
		s.Number1 += "%"
	}
	return s
}

// calcDelete removes the last entered character.
func calcDelete(s State) State {
	if s.Expression != "" {
		s.Expression = s.Expression[:len(s.Expression)-1]
		return s
	}
	switch {
	case s.Number2 != "":
		s.Number2 = s.Number2[:len(s.Number2)-1]
	case s.Op != "":
		s.Op = ""
	case s.Number1 != "":
		s.Number1 = s.Number1[:len(s.Number1)-1]
	}
	return s
}

// assembleExpression renders the traditional registers as a single string.
func assembleExpression(s State) string {
	var b strings.Builder
	b.WriteString(s.Number1)
	if s.Op != "" {
		b.WriteString(s.Op)
		b.WriteString(s.Number2)
	}
	return b.String()
}

// calcEquals evaluates whatever is assembled. On success the result becomes
// number1 so chained arithmetic keeps flowing; on failure the display shows
// the Error token and the registers reset.
func calcEquals(s State) State {
	expr := s.Expression
	if expr == "" {
		if s.Op == "" || s.Number2 == "" {
			return s
		}
		expr = assembleExpression(s)
	} else {
		expr = closeParens(expr)
	}
	v, err := Evaluate(expr)
	if err != nil {
		s = s.ClearEntry()
		s.Display = ErrorToken
		s.LastExpression = expr
		return s
	}
	out := FormatResult(v)
	s.LastExpression = expr
	s = s.AppendHistory(expr + "=" + out)
	s.Number1 = out
	s.Number2 = ""
	s.Op = ""
	s.Expression = ""
	s.Display = out
	s.Calculations++
	return s
}

func closeParens(expr string) string {
	open := 0
	for _, r := range expr {
		switch r {
		case '(':
			open++
		case ')':
			open--
		}
	}
	return expr + strings.Repeat(")", max(open, 0))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
