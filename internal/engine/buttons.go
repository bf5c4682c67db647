package engine

// Button labels. The pad exposes exactly nineteen buttons; "()" is a single
// button that emits an opening or closing parenthesis depending on balance.
const (
	BtnZero    = "0"
	BtnOne     = "1"
	BtnTwo     = "2"
	BtnThree   = "3"
	BtnFour    = "4"
	BtnFive    = "5"
	BtnSix     = "6"
	BtnSeven   = "7"
	BtnEight   = "8"
	BtnNine    = "9"
	BtnPlus    = "+"
	BtnMinus   = "-"
	BtnTimes   = "*"
	BtnDivide  = "/"
	BtnEquals  = "="
	BtnPercent = "%"
	BtnParens  = "()"
	BtnClear   = "C"
	BtnDelete  = "DEL"
)

// AllButtons lists every pad button in layout order.
var AllButtons = []string{
	BtnClear, BtnParens, BtnPercent, BtnDivide,
	BtnSeven, BtnEight, BtnNine, BtnTimes,
	BtnFour, BtnFive, BtnSix, BtnMinus,
	BtnOne, BtnTwo, BtnThree, BtnPlus,
	BtnZero, BtnDelete, BtnEquals,
}

// IsDigit reports whether label is one of 0-9.
func IsDigit(label string) bool {
	return len(label) == 1 && label[0] >= '0' && label[0] <= '9'
}

// IsOperator reports whether label is one of the four arithmetic operators.
func IsOperator(label string) bool {
	switch label {
	case BtnPlus, BtnMinus, BtnTimes, BtnDivide:
		return true
	}
	return false
}
