package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatElapsedMS(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatElapsedMS(0))
	assert.Equal(t, "00:00:59", FormatElapsedMS(59_999))
	assert.Equal(t, "00:01:00", FormatElapsedMS(60_000))
	assert.Equal(t, "01:30:05", FormatElapsedMS((3600+30*60+5)*1000))
	// Past a day the hour field keeps counting.
	assert.Equal(t, "25:00:00", FormatElapsedMS(25*3600*1000))
	assert.Equal(t, "00:00:00", FormatElapsedMS(-5), "negative clamps to zero")
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "45s", FormatSeconds(45))
	assert.Equal(t, "12m", FormatSeconds(12*60+30))
	assert.Equal(t, "3h 20m", FormatSeconds(3*3600+20*60))
	assert.Equal(t, "2h", FormatSeconds(2*3600))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "7.50h", FormatHours(7.5))
	assert.Equal(t, "0.00h", FormatHours(0))
}
