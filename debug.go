package scrolltween

import (
	"fmt"
	"os"
)

// debugf prints a [scrolltween]-prefixed line to stderr. Callers check
// c.debug first so release builds pay nothing for formatting.
func (c *Controller) debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[scrolltween] "+format+"\n", args...)
}

// warnInert reports tracks that were described but never bound to an action.
// They are harmless, so this only fires once per controller and only in
// debug mode.
func (c *Controller) warnInert() {
	inert := 0
	for _, b := range c.bindings {
		if !b.bound() {
			inert++
		}
	}
	if inert == 0 {
		return
	}
	c.warnedInert = true
	_, _ = fmt.Fprintf(os.Stderr, "[scrolltween] warning: %d of %d tracks have no action\n",
		inert, len(c.bindings))
}
