package logutils

import (
	"fmt"
)

// FormatPrinter implements fmt.Stringer by formatting an arbitrary value with
// a given verb. Useful for logrus fields that shouldn't pay the formatting
// cost unless the entry is actually emitted.
type FormatPrinter struct {
	verb string
	item any
}

func (v FormatPrinter) String() string {
	return fmt.Sprintf(v.verb, v.item)
}

func Format(verb string, item any) FormatPrinter {
	return FormatPrinter{verb, item}
}
