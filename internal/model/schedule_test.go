package model

import "testing"

func TestSemesterWindowValidate(t *testing.T) {
	tests := []struct {
		name    string
		window  SemesterWindow
		wantErr bool
	}{
		{
			name:   "normal window",
			window: SemesterWindow{SemesterStart: "2025-01-06", SemesterEnd: "2025-05-01", Timezone: "UTC"},
		},
		{
			name:   "single-day window",
			window: SemesterWindow{SemesterStart: "2025-01-06", SemesterEnd: "2025-01-06", Timezone: "UTC"},
		},
		{
			name:    "inverted window",
			window:  SemesterWindow{SemesterStart: "2025-05-01", SemesterEnd: "2025-01-06", Timezone: "UTC"},
			wantErr: true,
		},
		{
			name:    "missing timezone",
			window:  SemesterWindow{SemesterStart: "2025-01-06", SemesterEnd: "2025-05-01"},
			wantErr: true,
		},
		{
			name:    "bogus timezone",
			window:  SemesterWindow{SemesterStart: "2025-01-06", SemesterEnd: "2025-05-01", Timezone: "Mars/Olympus"},
			wantErr: true,
		},
		{
			name:    "malformed start date",
			window:  SemesterWindow{SemesterStart: "06-01-2025", SemesterEnd: "2025-05-01", Timezone: "UTC"},
			wantErr: true,
		},
		{
			name:    "malformed end date",
			window:  SemesterWindow{SemesterStart: "2025-01-06", SemesterEnd: "soon", Timezone: "UTC"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.window.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDayOfWeekWeekday(t *testing.T) {
	if !DayOfWeek("wed").Valid() {
		t.Error("wed should be a valid weekday code")
	}
	if DayOfWeek("wednesday").Valid() {
		t.Error("long names are not valid weekday codes")
	}
}
