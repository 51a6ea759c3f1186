package helpers

import (
	"fmt"
	"strings"
	"time"

	twmerge "github.com/Oudwins/tailwind-merge-go"
)

// FormatInt formats an integer as a string
func FormatInt(n int) string {
	return fmt.Sprintf("%d", n)
}

// FormatPrice formats a price in currency units (e.g., 15.99 -> "$15.99").
// A zero price is shown as "Free".
func FormatPrice(price float64) string {
	if price == 0 {
		return "Free"
	}
	return fmt.Sprintf("$%.2f", price)
}

// FormatAmount formats a money amount, showing zero as "$0.00"
func FormatAmount(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// FormatDate formats a time.Time as "Jan 2, 2006"
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("Jan 2, 2006")
}

// FormatDateTime formats a time.Time as "Jan 2, 2006 3:04 PM"
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("Jan 2, 2006 3:04 PM")
}

// FormatInputDate formats a time for an <input type="date"> value
func FormatInputDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// Title upper-cases the first letter of s
func Title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Classes merges tailwind class lists, later classes winning over earlier
// conflicting ones.
func Classes(classes ...string) string {
	return twmerge.Merge(classes...)
}

// StatusBadge returns the badge classes for an event or registration status
func StatusBadge(status string) string {
	base := "inline-flex rounded-full px-2 py-0.5 text-xs font-semibold bg-gray-100 text-gray-700"
	switch status {
	case "approved", "confirmed", "active":
		return Classes(base, "bg-green-100 text-green-800")
	case "pending":
		return Classes(base, "bg-yellow-100 text-yellow-800")
	case "rejected", "cancelled":
		return Classes(base, "bg-red-100 text-red-800")
	case "transferred":
		return Classes(base, "bg-blue-100 text-blue-800")
	}
	return base
}

// FlashClasses returns the alert classes for a notification kind
func FlashClasses(kind string) string {
	base := "rounded-md border px-4 py-3 text-sm border-gray-200 bg-gray-50 text-gray-800"
	switch kind {
	case "success":
		return Classes(base, "border-green-200 bg-green-50 text-green-800")
	case "error":
		return Classes(base, "border-red-200 bg-red-50 text-red-800")
	case "warning":
		return Classes(base, "border-yellow-200 bg-yellow-50 text-yellow-800")
	case "info":
		return Classes(base, "border-blue-200 bg-blue-50 text-blue-800")
	}
	return base
}
