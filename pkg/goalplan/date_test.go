package goalplan

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "date only format YYYY-MM-DD", input: `"2026-08-30"`, want: "2026-08-30"},
		{name: "RFC3339 format", input: `"2026-08-30T15:04:05Z"`, want: "2026-08-30"},
		{name: "datetime without timezone", input: `"2026-08-30T15:04:05"`, want: "2026-08-30"},
		{name: "null value", input: `null`, want: ""},
		{name: "empty string", input: `""`, want: ""},
		{name: "invalid format", input: `"not-a-date"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	got, err := json.Marshal(Date{Time: time.Date(2026, 8, 30, 15, 30, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2026-08-30"`, string(got))

	got, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(got))
}

func TestDate_UnmarshalText(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalText([]byte("2027-04-18")))
	assert.Equal(t, NewDate(2027, 4, 18), d)

	assert.Error(t, d.UnmarshalText([]byte("18/04/2027")))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			name: "same day different times",
			from: time.Date(2026, 1, 15, 23, 59, 0, 0, time.UTC),
			to:   time.Date(2026, 1, 15, 0, 1, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "late evening to next morning is one day",
			from: time.Date(2026, 1, 15, 23, 0, 0, 0, time.UTC),
			to:   time.Date(2026, 1, 16, 1, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "past date is negative",
			from: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC),
			want: -2,
		},
		{
			name: "across a leap day",
			from: time.Date(2028, 2, 28, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2028, 3, 1, 0, 0, 0, 0, time.UTC),
			want: 2,
		},
		{
			name: "centuries apart",
			from: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2400, 1, 1, 0, 0, 0, 0, time.UTC),
			want: 136600,
		},
		{
			name: "centuries back",
			from: time.Date(2400, 1, 1, 12, 0, 0, 0, time.UTC),
			to:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			want: -136600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.from, tt.to))
		})
	}
}
