package date

import (
	"reflect"
	"slices"
	"testing"
	"time"
)

func TestNewRange(t *testing.T) {
	a, b := New(2025, time.March, 1), New(2025, time.February, 1)
	if got, want := NewRange(a, b), (Range{From: b, To: a}); got != want {
		t.Errorf("NewRange() = %v, want %v", got, want)
	}
}

func TestRange_Contains(t *testing.T) {
	r := NewRange(New(2025, time.January, 1), New(2025, time.January, 31))
	testCases := []struct {
		in   Date
		want bool
	}{
		{New(2024, time.December, 31), false},
		{New(2025, time.January, 1), true},
		{New(2025, time.January, 15), true},
		{New(2025, time.January, 31), true},
		{New(2025, time.February, 1), false},
	}
	for _, tc := range testCases {
		if got := r.Contains(tc.in); got != tc.want {
			t.Errorf("Contains(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRange_Periods(t *testing.T) {
	testCases := []struct {
		name string
		r    Range
		p    Period
		want []Range
	}{
		{
			name: "months partially covered",
			r:    NewRange(New(2025, time.January, 15), New(2025, time.March, 2)),
			p:    Monthly,
			want: []Range{
				{New(2025, time.January, 1), New(2025, time.January, 31)},
				{New(2025, time.February, 1), New(2025, time.February, 28)},
				{New(2025, time.March, 1), New(2025, time.March, 31)},
			},
		},
		{
			name: "days",
			r:    NewRange(New(2025, time.January, 30), New(2025, time.February, 1)),
			p:    Daily,
			want: []Range{
				{New(2025, time.January, 30), New(2025, time.January, 30)},
				{New(2025, time.January, 31), New(2025, time.January, 31)},
				{New(2025, time.February, 1), New(2025, time.February, 1)},
			},
		},
		{
			name: "years",
			r:    NewRange(New(2024, time.June, 1), New(2025, time.June, 1)),
			p:    Yearly,
			want: []Range{
				{New(2024, time.January, 1), New(2024, time.December, 31)},
				{New(2025, time.January, 1), New(2025, time.December, 31)},
			},
		},
		{
			name: "single day",
			r:    NewRange(New(2025, time.May, 5), New(2025, time.May, 5)),
			p:    Monthly,
			want: []Range{{New(2025, time.May, 1), New(2025, time.May, 31)}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := slices.Collect(tc.r.Periods(tc.p))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Periods(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestRange_Days(t *testing.T) {
	r := NewRange(New(2024, time.February, 27), New(2024, time.March, 1))
	got := slices.Collect(r.Days())
	want := []Date{New(2024, time.February, 27), New(2024, time.February, 28), New(2024, time.February, 29), New(2024, time.March, 1)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Days() = %v, want %v", got, want)
	}
}
