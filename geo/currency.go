package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	lakh  = 100_000
	crore = 10_000_000
)

// FormatINR renders an asking price the way Indian listings quote
// them: crores above 1,00,00,000, lakhs above 1,00,000, otherwise a
// grouped rupee amount. Zero, negative, and non-finite amounts all
// render as "₹0".
func FormatINR(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return "₹0"
	}
	switch {
	case amount >= crore:
		s := strconv.FormatFloat(amount/crore, 'f', 2, 64)
		s = strings.TrimSuffix(s, ".00")
		return "₹" + s + " Cr"
	case amount >= lakh:
		s := strconv.FormatFloat(amount/lakh, 'f', 1, 64)
		s = strings.TrimSuffix(s, ".0")
		return "₹" + s + " L"
	default:
		return "₹" + groupIndian(int64(math.Round(amount)))
	}
}

// groupIndian applies South-Asian digit grouping: the last three
// digits form one group, every preceding pair another (12,34,567).
func groupIndian(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
