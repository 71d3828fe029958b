package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/choirsched/internal/model"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendLocal:
		if c.Local.Path == "" {
			return fmt.Errorf("local.path is required for the local backend")
		}
	case BackendFirestore:
		if c.Firestore.ProjectID == "" {
			return fmt.Errorf("firestore.project_id is required for the firestore backend")
		}
	default:
		return fmt.Errorf("backend must be %q or %q (got %q)", BackendLocal, BackendFirestore, c.Backend)
	}

	if err := c.Schedule.validate(); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	if err := c.Defaults.validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	for i, tpl := range c.Seed {
		if err := tpl.validate(); err != nil {
			return fmt.Errorf("seed[%d]: %w", i, err)
		}
	}
	return nil
}

func (s ScheduleConfig) validate() error {
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", s.Timezone, err)
	}
	if s.WriteTimeout <= 0 {
		return fmt.Errorf("write_timeout must be > 0 (got %v)", s.WriteTimeout)
	}
	if s.NoticeLead <= 0 {
		return fmt.Errorf("notice_lead must be > 0 (got %v)", s.NoticeLead)
	}
	if s.NoticeBuffer <= 0 {
		return fmt.Errorf("notice_buffer must be > 0 (got %d)", s.NoticeBuffer)
	}
	return nil
}

func (d DefaultsConfig) validate() error {
	if _, err := model.ParseCategory(d.Category); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	if err := validClockOrEmpty("time", d.Time); err != nil {
		return err
	}
	return validClockOrEmpty("time2", d.Time2)
}

func (t SeedTemplate) validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if _, err := ParseWeekday(t.Weekday); err != nil {
		return err
	}
	if t.Category != "" {
		if _, err := model.ParseCategory(t.Category); err != nil {
			return fmt.Errorf("category: %w", err)
		}
	}
	if err := validClockOrEmpty("time", t.Time); err != nil {
		return err
	}
	return validClockOrEmpty("time2", t.Time2)
}

func validClockOrEmpty(field, v string) error {
	if v != "" && !model.ValidClock(v) {
		return fmt.Errorf("%s must be HH:MM (got %q)", field, v)
	}
	return nil
}

// ParseWeekday accepts full English names or their three-letter forms.
func ParseWeekday(raw string) (time.Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if v == name || v == name[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", raw)
}
