package humanize

import "testing"

func TestMinutes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, ""},
		{45, "45min"},
		{60, "1h"},
		{90, "1h 30min"},
		{1440, "1d"},
		{1500, "1d 1h"},
		{1501, "1d 1h 1min"},
		{2880, "2d"},
	}
	for _, c := range cases {
		if got := Minutes(c.in); got != c.want {
			t.Fatalf("Minutes(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
