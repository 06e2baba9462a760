package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedRunIDGenerator(t *testing.T) {
	gen := NewFixedRunIDGenerator("run-42")
	assert.Equal(t, "run-42", gen.Generate())
	assert.Equal(t, "run-42", gen.Generate())

	assert.Equal(t, DefaultRunID, NewFixedRunIDGenerator("").Generate())
}

func TestFixedRunIDGeneratorConcurrent(t *testing.T) {
	gen := NewFixedRunIDGenerator("")
	ids := make([]string, 50)

	var wg sync.WaitGroup
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = gen.Generate()
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, DefaultRunID, id)
	}
}

func TestMustDecimal(t *testing.T) {
	d := MustDecimal(t, "0.10")
	assert.Equal(t, "0.10", d.String())
}
