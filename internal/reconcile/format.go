package reconcile

import "strconv"

// number renders v with the fewest digits that round-trip: 3.5, 220, -110
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// signed renders v like number with an explicit sign: +150, -110, +3.5, +0
func signed(v float64) string {
	if v == 0 {
		return "+0"
	}
	if v > 0 {
		return "+" + number(v)
	}
	return number(v)
}

// FormatAmerican renders an American-odds price with its sign
func FormatAmerican(price float64) string {
	return signed(price)
}
