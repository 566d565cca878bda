package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59", "24:00"}
	for _, s := range valid {
		assert.NoError(t, TimeString(s).Validate(), s)
	}

	invalid := []string{"", "9:30", "09:60", "25:00", "24:01", "09-30", "ab:cd", "09:30:00"}
	for _, s := range invalid {
		assert.Error(t, TimeString(s).Validate(), s)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 570, TimeString("09:30").Minutes())
	assert.Equal(t, MinutesPerDay, TimeString("24:00").Minutes())
}

func TestTimeString_Ordering(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("10:30")

	assert.True(t, a.IsBefore(b))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
	assert.False(t, a.IsAfter(a))
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("09:00").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:45"), ts)

	// Граница суток представима
	ts, err = TimeString("23:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), ts)

	// Выход за пределы суток - ошибка
	_, err = TimeString("23:30").AddMinutes(31)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestTimeString_Clamped(t *testing.T) {
	assert.Equal(t, TimeString("00:00"), TimeString("00:10").SubMinutesClamped(15))
	assert.Equal(t, TimeString("09:45"), TimeString("10:00").SubMinutesClamped(15))
	assert.Equal(t, TimeString("24:00"), TimeString("23:50").AddMinutesClamped(15))
	assert.Equal(t, TimeString("10:15"), TimeString("10:00").AddMinutesClamped(15))
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 3, 2, 14, 5, 59, 0, time.UTC))
	assert.Equal(t, TimeString("14:05"), ts)
}
