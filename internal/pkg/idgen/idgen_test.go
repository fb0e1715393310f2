package idgen_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/steel-compendium/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	bare := idgen.NewUUID("").Generate()
	_, err := uuid.Parse(bare)
	require.NoError(t, err)

	prefixed := idgen.NewUUID("run").Generate()
	require.True(t, strings.HasPrefix(prefixed, "run_"))
	_, err = uuid.Parse(strings.TrimPrefix(prefixed, "run_"))
	assert.NoError(t, err)

	assert.NotEqual(t, bare, idgen.NewUUID("").Generate())
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("run")
	assert.Equal(t, "run_1", gen.Generate())
	assert.Equal(t, "run_2", gen.Generate())

	assert.Equal(t, "1", idgen.NewSequential("").Generate())
}

func TestSequentialGeneratorIsUniqueAcrossGoroutines(t *testing.T) {
	gen := idgen.NewSequential("")

	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
		wg   sync.WaitGroup
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				id := gen.Generate()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 400)
}
