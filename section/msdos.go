package section

import "time"

// timeToMsDosTime converts t to an MS-DOS date and time pair with 2-second
// resolution. The wall clock is used as-is: entry timestamps are UTC and the
// DOS field is written without zone conversion, which matches what the bulk
// of streaming producers emit in practice.
//
// Times before 1980 (including the zero value and the Unix epoch default)
// clamp to the DOS epoch, 1980-01-01 00:00:00.
func timeToMsDosTime(t time.Time) (dosDate, dosTime uint16) {
	if t.Year() < 1980 {
		return 0x21, 0 // 1980-01-01
	}

	dosDate = uint16(t.Day() + int(t.Month())<<5 + (t.Year()-1980)<<9)
	dosTime = uint16(t.Second()/2 + t.Minute()<<5 + t.Hour()<<11)

	return dosDate, dosTime
}
