package models

import (
	"testing"
	"time"
)

func TestDateOnly(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 17, 42, 9, 123, time.Local)
	got := DateOnly(ts)
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("DateOnly = %v, want %v", got, want)
	}
	if !DateOnly(got).Equal(got) {
		t.Error("DateOnly not idempotent")
	}
}

func TestMoodCategory(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "Very Low"},
		{2, "Very Low"},
		{3, "Low"},
		{4, "Low"},
		{5, "Moderate"},
		{6, "Moderate"},
		{7, "Good"},
		{8, "Good"},
		{9, "Excellent"},
		{10, "Excellent"},
	}
	for _, tt := range tests {
		e := MoodEntry{MoodLevel: tt.level}
		if got := e.MoodCategory(); got != tt.want {
			t.Errorf("MoodCategory(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
