package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDay(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "utc",
			in:   time.Date(2024, 12, 15, 23, 59, 59, 999, time.UTC),
			want: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "offset crosses day boundary",
			in:   time.Date(2024, 12, 16, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*60*60)),
			want: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Day(tt.in))
		})
	}
}

func TestURL_OwnedBy(t *testing.T) {
	u := URL{OwnerID: "user-1"}

	assert.True(t, u.OwnedBy("user-1"))
	assert.False(t, u.OwnedBy("user-2"))
	assert.False(t, u.OwnedBy(""))
}
