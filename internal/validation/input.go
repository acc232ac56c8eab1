package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/manifest/internal/constants"
	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/utils"
)

const (
	MaxNameLength  = 80
	MaxTitleLength = 120
)

var ErrEmpty = errors.New("value cannot be empty")

// ValidateName checks a display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name: %w", ErrEmpty)
	}
	if len([]rune(name)) > MaxNameLength {
		return fmt.Errorf("name is longer than %d characters", MaxNameLength)
	}
	return nil
}

// ValidateTitle checks a goal or ritual title.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title: %w", ErrEmpty)
	}
	if len([]rune(title)) > MaxTitleLength {
		return fmt.Errorf("title is longer than %d characters", MaxTitleLength)
	}
	return nil
}

// ValidateReminderTimes requires two HH:MM times with morning before evening.
func ValidateReminderTimes(times models.ReminderTimes) error {
	morning, err := utils.ParseTimeToMinutes(times.Morning)
	if err != nil {
		return fmt.Errorf("invalid morning time %q (expected HH:MM)", times.Morning)
	}
	evening, err := utils.ParseTimeToMinutes(times.Evening)
	if err != nil {
		return fmt.Errorf("invalid evening time %q (expected HH:MM)", times.Evening)
	}
	if morning >= evening {
		return fmt.Errorf("morning reminder (%s) must be before evening reminder (%s)", times.Morning, times.Evening)
	}
	return nil
}

// ValidateTargetDate accepts an empty date or a YYYY-MM-DD date that is not
// before today.
func ValidateTargetDate(date string, today time.Time) error {
	if date == "" {
		return nil
	}
	d, err := time.ParseInLocation(constants.DateFormat, date, today.Location())
	if err != nil {
		return fmt.Errorf("invalid target date %q (expected YYYY-MM-DD)", date)
	}
	if d.Format(constants.DateFormat) < utils.DateString(today) {
		return fmt.Errorf("target date %s is in the past", date)
	}
	return nil
}

// ValidateCategories requires at least one category, each from the known list.
func ValidateCategories(categories []string) error {
	if len(categories) == 0 {
		return errors.New("choose at least one category")
	}
	for _, c := range categories {
		if !slices.Contains(constants.Categories, c) {
			return fmt.Errorf("unknown category %q (choose from: %s)", c, strings.Join(constants.Categories, ", "))
		}
	}
	return nil
}

// ValidateGoalInput checks everything the goal wizard collects.
func ValidateGoalInput(in models.GoalInput, rituals []string, today time.Time) error {
	if err := ValidateTitle(in.Title); err != nil {
		return fmt.Errorf("goal %w", err)
	}
	if err := ValidateCategories(in.Categories); err != nil {
		return err
	}
	if err := ValidateTargetDate(in.TargetDate, today); err != nil {
		return err
	}
	for _, r := range rituals {
		if err := ValidateTitle(r); err != nil {
			return fmt.Errorf("ritual %w", err)
		}
	}
	return nil
}

// NormalizeCategories matches categories case-insensitively against the known
// list and returns them in canonical spelling. Unknown values are kept as-is
// so ValidateCategories can report them.
func NormalizeCategories(raw []string) []string {
	var out []string
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		canonical := r
		for _, c := range constants.Categories {
			if strings.EqualFold(c, r) {
				canonical = c
				break
			}
		}
		if !slices.Contains(out, canonical) {
			out = append(out, canonical)
		}
	}
	return out
}

// ValidateSettings checks user-editable settings.
func ValidateSettings(s models.Settings) error {
	if !utils.ValidateTimezone(s.Timezone) {
		return fmt.Errorf("invalid timezone %q", s.Timezone)
	}
	if s.NotificationGracePeriodMin < 0 || s.NotificationGracePeriodMin > 120 {
		return fmt.Errorf("notification grace period must be between 0 and 120 minutes, got %d", s.NotificationGracePeriodMin)
	}
	if strings.TrimSpace(s.TextModel) == "" || strings.TrimSpace(s.ImageModel) == "" {
		return errors.New("text and image models cannot be empty")
	}
	return nil
}
