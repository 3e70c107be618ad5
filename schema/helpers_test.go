package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		d, err := ParseDate("2013-01-17")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2013, 1, 17, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("round trip", func(t *testing.T) {
		d, err := ParseDate("2013-02-01")
		require.NoError(t, err)
		assert.Equal(t, "2013-02-01", FormatDate(d))
	})

	t.Run("invalid inputs", func(t *testing.T) {
		for _, s := range []string{"", "2013/01/17", "17-01-2013", "2013-13-01", "2013-01-32", "not-a-date"} {
			_, err := ParseDate(s)
			assert.Error(t, err, "input %q", s)
		}
	})
}

func TestParseCellValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"plain integer", "50", 50, false},
		{"zero", "0", 0, false},
		{"negative", "-12", -12, false},
		{"integral float", "50.0", 50, false},
		{"negative integral float", "-4.0", -4, false},
		{"large value", "9007199254740993", 9007199254740993, false},
		{"fractional float", "50.5", 0, true},
		{"not a number", "abc", 0, true},
		{"empty", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCellValue(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "42", FormatCell(KnownCell(42)))
	assert.Equal(t, "-7", FormatCell(KnownCell(-7)))
	assert.Equal(t, "0", FormatCell(KnownCell(0)))
	assert.Equal(t, NoDataMarker, FormatCell(Cell{}))
}
