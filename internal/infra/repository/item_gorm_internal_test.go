package repository

import (
	"testing"
	"time"

	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
)

func TestRegisteredWithinCutoff(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		window repo.RegisteredWithin
		want   time.Time
		ok     bool
	}{
		{repo.RegisteredWithin1Day, time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC), true},
		{repo.RegisteredWithin1Week, time.Date(2025, 6, 8, 10, 0, 0, 0, time.UTC), true},
		// 月はカレンダー基準
		{repo.RegisteredWithin1Month, time.Date(2025, 5, 15, 10, 0, 0, 0, time.UTC), true},
		{repo.RegisteredWithin6Months, time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC), true},
		{repo.RegisteredWithinAll, time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, c := range cases {
		got, ok := registeredWithinCutoff(c.window, now)

		assert.Equal(t, c.ok, ok, string(c.window))
		if c.ok {
			assert.Equal(t, c.want, got, string(c.window))
		}
	}
}
