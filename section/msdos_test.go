package section

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeToMsDosTime(t *testing.T) {
	tests := []struct {
		name     string
		in       time.Time
		wantDate uint16
		wantTime uint16
	}{
		{
			name:     "regular timestamp",
			in:       time.Date(2021, 6, 15, 10, 30, 44, 0, time.UTC),
			wantDate: uint16(15 + 6<<5 + (2021-1980)<<9),
			wantTime: uint16(22 + 30<<5 + 10<<11),
		},
		{
			name:     "seconds round down to 2s resolution",
			in:       time.Date(2021, 6, 15, 10, 30, 45, 0, time.UTC),
			wantDate: uint16(15 + 6<<5 + (2021-1980)<<9),
			wantTime: uint16(22 + 30<<5 + 10<<11),
		},
		{
			name:     "unix epoch clamps to dos epoch",
			in:       time.Unix(0, 0).UTC(),
			wantDate: 0x21,
			wantTime: 0,
		},
		{
			name:     "zero value clamps to dos epoch",
			in:       time.Time{},
			wantDate: 0x21,
			wantTime: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDate, gotTime := timeToMsDosTime(tt.in)
			require.Equal(t, tt.wantDate, gotDate)
			require.Equal(t, tt.wantTime, gotTime)
		})
	}
}
