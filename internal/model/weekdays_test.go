package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdaySetValueAndScan(t *testing.T) {
	set := WeekdaySet{time.Monday, time.Wednesday, time.Friday}

	v, err := set.Value()
	require.NoError(t, err)
	assert.Equal(t, "1,3,5", v)

	var scanned WeekdaySet
	require.NoError(t, scanned.Scan("1,3,5"))
	assert.Equal(t, set, scanned)

	assert.True(t, scanned.Contains(time.Wednesday))
	assert.False(t, scanned.Contains(time.Sunday))
}

func TestWeekdaySetEmpty(t *testing.T) {
	var set WeekdaySet

	v, err := set.Value()
	require.NoError(t, err)
	assert.Equal(t, "", v)

	var scanned WeekdaySet
	require.NoError(t, scanned.Scan(""))
	assert.Empty(t, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)
}

func TestWeekdaySetScanRejectsGarbage(t *testing.T) {
	var scanned WeekdaySet
	assert.Error(t, scanned.Scan("1,notaday"))
	assert.Error(t, scanned.Scan("7"))
	assert.Error(t, scanned.Scan(42))
}
