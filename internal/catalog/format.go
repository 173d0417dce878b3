package catalog

import (
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is the language amounts are grouped in until SetLocale runs
const DefaultLocale = "ru"

var printer atomic.Pointer[message.Printer]

func init() {
	printer.Store(message.NewPrinter(language.Russian))
}

// FormatAmount renders a currency amount with locale digit grouping
func FormatAmount(amount int) string {
	return printer.Load().Sprintf("%d", amount)
}

// SetLocale switches the language used by FormatAmount. Safe to call while
// other goroutines format.
func SetLocale(tag string) error {
	t, err := language.Parse(tag)
	if err != nil {
		return err
	}
	printer.Store(message.NewPrinter(t))
	return nil
}
