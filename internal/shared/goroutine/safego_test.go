package goroutine

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/assetflow/assetflow/internal/shared/logger"
)

func TestSafeGoWG_RecoversPanicAndReleasesWaitGroup(t *testing.T) {
	var wg sync.WaitGroup
	var ran atomic.Int32

	SafeGoWG(&wg, logger.NewNopLogger(), "panicky", func() {
		ran.Add(1)
		panic("smtp exploded")
	})
	SafeGoWG(&wg, logger.NewNopLogger(), "fine", func() {
		ran.Add(1)
	})

	wg.Wait()
	assert.Equal(t, int32(2), ran.Load())
}
