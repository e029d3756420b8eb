package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_parseClock(t *testing.T) {
	day := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"14:30", "14:30", true},
		{"02:30 pm", "14:30", true},
		{"2:30PM", "14:30", true},
		{"12:00 am", "00:00", true},
		{"9am", "09:00", true},
		{" 7 pm ", "19:00", true},
		{"25:00", "", false},
		{"noon", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseClock(day, tt.in)
			if !tt.ok {
				require.ErrorIs(t, err, ErrInvalidClock)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got.Format("15:04"))
			require.Equal(t, 15, got.Day())
		})
	}
}

func Test_sampleTasks(t *testing.T) {
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

	tasks := sampleTasks(10, now)
	require.Len(t, tasks, 10)
	require.Equal(t, "Sample task 1", tasks[0].Title)
	require.True(t, tasks[0].Completed)
	require.False(t, tasks[1].Completed)
	require.Equal(t, "2026-10-15T08:00:00.000Z", tasks[0].StartsAt)
	require.Equal(t, "2026-10-14T10:00:00.000Z", tasks[1].EndsAt)
	require.NotEqual(t, tasks[0].ID, tasks[1].ID)
}

func Test_parseOutputFormat(t *testing.T) {
	for _, s := range allOutputFormats {
		_, err := parseOutputFormat(s)
		require.NoError(t, err)
	}

	_, err := parseOutputFormat("xml")
	require.Error(t, err)
}
