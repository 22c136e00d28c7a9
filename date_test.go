package pnl

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-01-10", want: NewDate(2025, time.January, 10)},
		{in: "2025-1-2", want: NewDate(2025, time.January, 2)}, // lenient form
		{in: "01/10/2025", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestDate_Ordering(t *testing.T) {
	early := MustParseDate("2025-01-10")
	late := MustParseDate("2025-02-01")

	if !early.Before(late) {
		t.Errorf("%s should be before %s", early, late)
	}
	if !late.After(early) {
		t.Errorf("%s should be after %s", late, early)
	}
	if early.Before(early) || early.After(early) {
		t.Error("a date is neither before nor after itself")
	}
	if got, want := early.Add(22), late; got != want {
		t.Errorf("%s.Add(22) = %s, want %s", early, got, want)
	}
}
