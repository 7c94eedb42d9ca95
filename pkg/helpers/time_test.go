package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2010-06-01", time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC), true},
		{"2010-06-01T08:30:00Z", time.Date(2010, 6, 1, 8, 30, 0, 0, time.UTC), true},
		{"2010-06-01T10:30:00+02:00", time.Date(2010, 6, 1, 8, 30, 0, 0, time.UTC), true},
		{"06/01/2010", time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC), true},
		{" 2010-06-01 ", time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"yesterday", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}
