// Package goroutine launches background work that logs panics instead of
// crashing the process.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/ilim-academy/website/internal/shared/logger"
)

// Go runs fn in a new goroutine. A panic is recovered and logged with its
// stack. The returned channel is closed once fn has returned or panicked.
func Go(log logger.Interface, name string, fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
	return done
}
