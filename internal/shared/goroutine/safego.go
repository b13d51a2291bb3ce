// Package goroutine launches tracked goroutines that log panics instead of
// crashing the process.
package goroutine

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/assetflow/assetflow/internal/shared/logger"
)

// SafeGoWG runs fn on a goroutine tracked by wg. A panic in fn is logged with
// its stack and wg is still released.
func SafeGoWG(wg *sync.WaitGroup, log logger.Interface, name string, fn func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		run(log, name, fn)
	}()
}

func run(log logger.Interface, name string, fn func()) {
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
}
