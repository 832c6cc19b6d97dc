package converter

import "testing"

func TestFormatPercent(t *testing.T) {
	cases := []struct {
		name  string
		ratio float64
		want  string
	}{
		{
			name:  "Success",
			ratio: 0.1234,
			want:  "12.34%",
		},
		{
			name:  "Zero",
			ratio: 0,
			want:  "0.00%",
		},
		{
			name:  "Whole",
			ratio: 1,
			want:  "100.00%",
		},
		{
			name:  "Rounded",
			ratio: 0.056789,
			want:  "5.68%",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := FormatPercent(tc.ratio)
			if got != tc.want {
				t.Errorf("unexpected result, want: %s, got: %s", tc.want, got)
			}
		})
	}
}

func TestFailureRate(t *testing.T) {
	cases := []struct {
		name   string
		failed int
		total  int
		want   float64
	}{
		{
			name:   "Success",
			failed: 1,
			total:  4,
			want:   0.25,
		},
		{
			name:   "ZeroTotal",
			failed: 0,
			total:  0,
			want:   0,
		},
		{
			name:   "AllFailed",
			failed: 3,
			total:  3,
			want:   1,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := FailureRate(tc.failed, tc.total)
			if got != tc.want {
				t.Errorf("unexpected result, want: %f, got: %f", tc.want, got)
			}
		})
	}
}
