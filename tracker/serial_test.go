package tracker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialDropsStale(t *testing.T) {

	s := NewSerial(NewEpisodes(DefaultParams(), nil))

	_, ok := s.LastSeq()
	assert.False(t, ok)

	assert.True(t, s.Apply(0, frame(1, 3)))
	assert.True(t, s.Apply(5, frame(1, 4)))
	assert.False(t, s.Apply(5, frame(1, 9)))
	assert.False(t, s.Apply(2, frame(1, 9)))

	seq, ok := s.LastSeq()
	require.True(t, ok)
	assert.Equal(t, uint64(5), seq)
	assert.Equal(t, PotEpisode{PotID: 0, MaxSpikes: 4}, s.Current())
}

func TestSerialGapsAllowed(t *testing.T) {

	s := NewSerial(NewEpisodes(DefaultParams(), nil))

	assert.True(t, s.Apply(1, frame(1, 2)))
	assert.True(t, s.Apply(10, frame(0, 0)))
	assert.True(t, s.Apply(11, frame(1, 1)))

	assert.Equal(t, []PotCount{
		{PotID: 0, WheatSpikes: 2},
		{PotID: 1, WheatSpikes: 1},
	}, s.Report())
}

func TestSerialConcurrent(t *testing.T) {

	s := NewSerial(NewEpisodes(DefaultParams(), nil))

	var wg sync.WaitGroup
	applied := make([]bool, 200)

	for i := 0; i < len(applied); i++ {
		wg.Add(1)

		go func(seq int) {
			defer wg.Done()
			applied[seq] = s.Apply(uint64(seq), frame(1, seq))
		}(i)
	}

	wg.Wait()

	seq, ok := s.LastSeq()
	require.True(t, ok)

	// whichever frame landed last its sequence is the highest applied one
	// and the max is the largest count applied
	maxApplied := -1

	for i, ok := range applied {
		if ok {
			maxApplied = i
		}
	}

	assert.Equal(t, uint64(maxApplied), seq)
	assert.Len(t, s.Episodes(), 1)
	assert.Equal(t, maxApplied, s.Current().MaxSpikes)
}
