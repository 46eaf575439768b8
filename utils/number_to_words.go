package utils

import (
	"fmt"
	"math"
	"strings"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

var scales = []struct {
	value int64
	name  string
}{
	{1_000_000_000_000, "Trillion"},
	{1_000_000_000, "Billion"},
	{1_000_000, "Million"},
	{1_000, "Thousand"},
}

// NumberToWords spells a non-negative integer using short-scale names.
// Zero yields an empty string.
func NumberToWords(num int64) string {
	switch {
	case num <= 0:
		return ""
	case num < 20:
		return ones[num]
	case num < 100:
		return strings.TrimSpace(tens[num/10] + " " + ones[num%10])
	case num < 1000:
		rest := num % 100
		if rest == 0 {
			return ones[num/100] + " Hundred"
		}
		return ones[num/100] + " Hundred " + NumberToWords(rest)
	}
	for _, s := range scales {
		if num >= s.value {
			rest := num % s.value
			head := NumberToWords(num/s.value) + " " + s.name
			if rest == 0 {
				return head
			}
			return head + " " + NumberToWords(rest)
		}
	}
	return ""
}

// AmountToDollarWords spells a USD amount with cents, e.g. for the profit line
// of a RoRo statement.
func AmountToDollarWords(amount float64) string {
	prefix := ""
	if amount < 0 {
		prefix = "Minus "
		amount = -amount
	}

	totalCents := int64(math.Round(amount * 100))
	dollars := totalCents / 100
	cents := totalCents % 100

	var parts []string
	if dollars > 0 {
		parts = append(parts, fmt.Sprintf("%s %s", NumberToWords(dollars), plural(dollars, "Dollar")))
	}
	if cents > 0 {
		parts = append(parts, fmt.Sprintf("%s %s", NumberToWords(cents), plural(cents, "Cent")))
	}
	if len(parts) == 0 {
		return "Zero Dollars Only"
	}
	return prefix + strings.Join(parts, " and ") + " Only"
}

func plural(n int64, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
