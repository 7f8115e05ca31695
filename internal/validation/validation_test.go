package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	apperr "github.com/julianstephens/timetable/internal/errors"
	"github.com/julianstephens/timetable/internal/models"
)

func hasConflict(result ValidationResult, t ConflictType) bool {
	for _, c := range result.Conflicts {
		if c.Type == t {
			return true
		}
	}
	return false
}

func TestValidateConfig_Default(t *testing.T) {
	result := ValidateConfig(models.DefaultConfig())
	if result.HasConflicts() {
		t.Fatalf("default config has conflicts:\n%s", result.FormatReport())
	}
	if err := result.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("unexpected report %q", result.FormatReport())
	}
}

func TestValidateConfig_Days(t *testing.T) {
	tests := []struct {
		name string
		days []time.Weekday
		want ConflictType
	}{
		{"empty", nil, ConflictEmptyDays},
		{"duplicate", []time.Weekday{time.Monday, time.Monday}, ConflictDuplicateDay},
		{"out of range", []time.Weekday{time.Saturday, time.Weekday(7)}, ConflictInvalidDay},
		{"gap", []time.Weekday{time.Monday, time.Wednesday}, ConflictNonConsecutiveDays},
		{"reversed", []time.Weekday{time.Tuesday, time.Monday}, ConflictNonConsecutiveDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.DefaultConfig()
			cfg.Days = tt.days
			result := ValidateConfig(cfg)
			if !hasConflict(result, tt.want) {
				t.Errorf("expected %s conflict, got %+v", tt.want, result.Conflicts)
			}
		})
	}
}

func TestValidateConfig_OutOfRangeIsNotDuplicate(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Days = []time.Weekday{time.Weekday(9)}
	cfg.Months = []time.Month{time.Month(0)}

	result := ValidateConfig(cfg)
	if hasConflict(result, ConflictDuplicateDay) || hasConflict(result, ConflictDuplicateMonth) {
		t.Errorf("out-of-range values reported as duplicates: %+v", result.Conflicts)
	}
	if !hasConflict(result, ConflictInvalidDay) || !hasConflict(result, ConflictInvalidMonth) {
		t.Errorf("expected invalid day and month conflicts, got %+v", result.Conflicts)
	}
}

func TestValidateConfig_WraparoundIsConsecutive(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Days = []time.Weekday{time.Friday, time.Saturday, time.Sunday, time.Monday}
	cfg.Months = []time.Month{time.November, time.December, time.January}

	if result := ValidateConfig(cfg); result.HasConflicts() {
		t.Errorf("wraparound ranges rejected:\n%s", result.FormatReport())
	}
}

func TestValidateConfig_Months(t *testing.T) {
	tests := []struct {
		name   string
		months []time.Month
		want   ConflictType
	}{
		{"empty", []time.Month{}, ConflictEmptyMonths},
		{"duplicate", []time.Month{time.May, time.May}, ConflictDuplicateMonth},
		{"out of range", []time.Month{time.December, time.Month(13)}, ConflictInvalidMonth},
		{"gap", []time.Month{time.May, time.July}, ConflictNonConsecutiveMths},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.DefaultConfig()
			cfg.Months = tt.months
			if result := ValidateConfig(cfg); !hasConflict(result, tt.want) {
				t.Errorf("expected %s conflict, got %+v", tt.want, result.Conflicts)
			}
		})
	}
}

func TestValidateConfig_Hours(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Duration
		want     ConflictType
		ok       bool
	}{
		{"working hours", 8 * time.Hour, 17 * time.Hour, "", true},
		{"end of day is allowed", 8 * time.Hour, 23*time.Hour + 59*time.Minute, "", true},
		{"misaligned from", 8*time.Hour + 10*time.Minute, 17 * time.Hour, ConflictMisalignedTime, false},
		{"misaligned to", 8 * time.Hour, 17*time.Hour + 5*time.Minute, ConflictMisalignedTime, false},
		{"to before from", 17 * time.Hour, 8 * time.Hour, ConflictInvalidTimeRange, false},
		{"equal bounds", 8 * time.Hour, 8 * time.Hour, ConflictInvalidTimeRange, false},
		{"past midnight", 8 * time.Hour, 25 * time.Hour, ConflictTimeOutOfRange, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.DefaultConfig()
			cfg.TimeFrom, cfg.TimeTo = tt.from, tt.to
			result := ValidateConfig(cfg)
			if tt.ok {
				if result.HasConflicts() {
					t.Errorf("unexpected conflicts:\n%s", result.FormatReport())
				}
				return
			}
			if !hasConflict(result, tt.want) {
				t.Errorf("expected %s conflict, got %+v", tt.want, result.Conflicts)
			}
		})
	}
}

func TestValidateConfig_ErrWrapsSentinel(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Days = nil
	cfg.DisplayType = "year"

	result := ValidateConfig(cfg)
	err := result.Err()
	if !errors.Is(err, apperr.ErrInvalidConfig) {
		t.Fatalf("Err() = %v, want ErrInvalidConfig", err)
	}
	if !hasConflict(result, ConflictInvalidDisplayType) {
		t.Error("expected invalid display type conflict")
	}
	if !strings.Contains(result.FormatReport(), "At least one day") {
		t.Errorf("report misses the days conflict:\n%s", result.FormatReport())
	}
}
