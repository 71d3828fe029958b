package config

import "time"

const (
	BackendLocal     = "local"
	BackendFirestore = "firestore"
)

// Config is the root application configuration.
type Config struct {
	Backend   string          `yaml:"backend" env:"CHOIRSCHED_BACKEND" env-default:"local"`
	Admin     bool            `yaml:"admin"   env:"CHOIRSCHED_ADMIN"   env-default:"false"`
	Firestore FirestoreConfig `yaml:"firestore"`
	Local     LocalConfig     `yaml:"local"`
	Log       LogConfig       `yaml:"log"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Seed      []SeedTemplate  `yaml:"seed"`
}

// FirestoreConfig selects the remote collection. With FIRESTORE_EMULATOR_HOST
// set, the client connects to the emulator.
type FirestoreConfig struct {
	ProjectID       string `yaml:"project_id"       env:"CHOIRSCHED_FIRESTORE_PROJECT"`
	Collection      string `yaml:"collection"       env:"CHOIRSCHED_FIRESTORE_COLLECTION"  env-default:"schedules"`
	CredentialsFile string `yaml:"credentials_file" env:"CHOIRSCHED_FIRESTORE_CREDENTIALS"`
}

type LocalConfig struct {
	Path string `yaml:"path" env:"CHOIRSCHED_LOCAL_PATH" env-default:"choirsched.db"`
	Key  string `yaml:"key"  env:"CHOIRSCHED_LOCAL_KEY"  env-default:"gloria.schedules"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `yaml:"level"        env:"LOG_LEVEL"        env-default:"info"`
	Format     string `yaml:"format"       env:"LOG_FORMAT"       env-default:"text"`
	File       string `yaml:"file"         env:"LOG_FILE"         env-default:"choirsched.log"`
	MaxSizeMB  int    `yaml:"max_size_mb"  env:"LOG_MAX_SIZE_MB"  env-default:"10"`
	MaxBackups int    `yaml:"max_backups"  env:"LOG_MAX_BACKUPS"  env-default:"3"`
}

type ScheduleConfig struct {
	Timezone     string        `yaml:"timezone"      env:"CHOIRSCHED_TIMEZONE"      env-default:"Asia/Seoul"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"CHOIRSCHED_WRITE_TIMEOUT" env-default:"10s"`
	NoticeLead   time.Duration `yaml:"notice_lead"   env:"CHOIRSCHED_NOTICE_LEAD"   env-default:"30m"`
	NoticeBuffer int           `yaml:"notice_buffer" env:"CHOIRSCHED_NOTICE_BUFFER" env-default:"16"`
	// Zero values are replaced by env-default, so switches are phrased as
	// opt-outs.
	DisableNotices bool `yaml:"disable_notices" env:"CHOIRSCHED_DISABLE_NOTICES"`
	// StateFile remembers which notices were already shown.
	StateFile string `yaml:"state_file" env:"CHOIRSCHED_STATE_FILE" env-default:".choirsched_state.json"`
}

// Lead is the notice lead time, or 0 when notices are off.
func (s ScheduleConfig) Lead() time.Duration {
	if s.DisableNotices {
		return 0
	}
	return s.NoticeLead
}

// Location resolves Timezone, falling back to UTC. Validate rejects unknown
// zones, so the fallback only applies to unvalidated configs.
func (s ScheduleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DefaultsConfig pre-fills the add form unless Disabled.
type DefaultsConfig struct {
	Disabled bool   `yaml:"disabled" env:"CHOIRSCHED_DEFAULTS_DISABLED"`
	Category string `yaml:"category" env:"CHOIRSCHED_DEFAULT_CATEGORY"  env-default:"practice"`
	Time     string `yaml:"time"     env:"CHOIRSCHED_DEFAULT_TIME"      env-default:"08:00"`
	Time2    string `yaml:"time2"    env:"CHOIRSCHED_DEFAULT_TIME2"     env-default:"10:20"`
	Location string `yaml:"location" env:"CHOIRSCHED_DEFAULT_LOCATION"  env-default:"찬양대실"`
}

// SeedTemplate is a weekly event generated by the seed command.
type SeedTemplate struct {
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Weekday     string `yaml:"weekday"`
	Time        string `yaml:"time"`
	Time2       string `yaml:"time2"`
	Location    string `yaml:"location"`
	Description string `yaml:"description"`
}

// DefaultSeed is used when the config file lists no templates.
func DefaultSeed() []SeedTemplate {
	return []SeedTemplate{
		{Title: "주일 찬양", Category: "worship", Weekday: "sunday", Time: "11:00", Location: "대예배실"},
		{Title: "정기 연습", Category: "practice", Weekday: "sunday", Time: "13:30", Time2: "15:00", Location: "찬양대실"},
	}
}
