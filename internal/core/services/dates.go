package services

import (
	"strconv"
	"strings"
	"time"
)

// ymdToInt parses YYYYMMDD (dashes ignored). ok is false unless exactly
// eight digits remain.
func ymdToInt(ymd string) (int, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(ymd, "-", ""))
	if len(s) != 8 {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// inWindow reports whether ymd lies in [start, end]. Both bounds must be valid.
func inWindow(ymd int, start, end string) bool {
	startInt, okStart := ymdToInt(start)
	endInt, okEnd := ymdToInt(end)
	return okStart && okEnd && startInt <= ymd && ymd <= endInt
}

// formatYMD renders YYYYMMDD as YYYY-MM-DD; shorter strings are returned as-is
func formatYMD(ymd string) string {
	if len(ymd) >= 8 {
		return ymd[:4] + "-" + ymd[4:6] + "-" + ymd[6:8]
	}
	return ymd
}

// ymdOf returns t as YYYYMMDD in loc
func ymdOf(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("20060102")
}

func defaultLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}
