package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/sublime-music/subsonic-source/pkg/catalog"
	"github.com/sublime-music/subsonic-source/pkg/subsonic"
)

const (
	DefaultPath = "subsonic-source.toml"

	EnvPath     = "SUBSONIC_SOURCE_CFG"
	EnvURL      = "SUBSONIC_URL"
	EnvUser     = "SUBSONIC_USER"
	EnvPassword = "SUBSONIC_PASSWORD"
)

const (
	AppSubsonic  = "subsonic"
	AppNavidrome = "navidrome"
)

var ErrInvalid = errors.New("invalid config")

// Duration is a [time.Duration] written as a string such as "8s".
type Duration time.Duration

func (d *Duration) UnmarshalText(b []byte) error {
	parsed, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

type Server struct {
	URL      string `toml:"url" validate:"required,url"`
	User     string `toml:"user" validate:"required"`
	Password string `toml:"password" validate:"required"`
	// App selects the default title of the root node.
	App            string   `toml:"app" validate:"oneof=subsonic navidrome"`
	Title          string   `toml:"title"`
	ClientName     string   `toml:"client_name" validate:"required"`
	APIVersion     string   `toml:"api_version" validate:"required"`
	Timeout        Duration `toml:"timeout" validate:"gt=0"`
	SkipCertVerify bool     `toml:"skip_cert_verify"`
}

type Sections struct {
	Artists   bool `toml:"artists"`
	Albums    bool `toml:"albums"`
	Playlists bool `toml:"playlists"`
	Genres    bool `toml:"genres"`
	Radio     bool `toml:"radio"`
}

type Config struct {
	Listen      string   `toml:"listen" validate:"required,hostname_port"`
	CORSOrigins []string `toml:"cors_origins"`
	LogLevel    string   `toml:"log_level" validate:"oneof=trace debug info warn error"`
	// LogFile, when set, receives a copy of the log with size based
	// rotation.
	LogFile  string   `toml:"log_file"`
	Language string   `toml:"language" validate:"omitempty,bcp47_language_tag"`
	Server   Server   `toml:"server"`
	Sections Sections `toml:"sections"`
}

func Defaults() Config {
	settings := catalog.DefaultSettings()
	return Config{
		Listen:   "127.0.0.1:8095",
		LogLevel: "info",
		Language: "en",
		Server: Server{
			App:        AppSubsonic,
			ClientName: subsonic.DefaultClientName,
			APIVersion: subsonic.DefaultVersion,
			Timeout:    Duration(subsonic.DefaultTimeout),
		},
		Sections: Sections{
			Artists:   settings.Artists,
			Albums:    settings.Albums,
			Playlists: settings.Playlists,
			Genres:    settings.Genres,
			Radio:     settings.Radio,
		},
	}
}

// Path returns the config file to load: flagPath if set, then the
// SUBSONIC_SOURCE_CFG environment variable, then [DefaultPath].
func Path(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return envString(EnvPath, DefaultPath)
}

// Load reads the config file at path from fs on top of the defaults, applies
// the environment overrides and validates the result. A missing file is not
// an error so that the server can be configured from the environment alone.
func Load(fsys afero.Fs, path string, log *zerolog.Logger) (*Config, error) {
	cfg := Defaults()

	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Str("path", path).Msg("Config file not found, using defaults and environment")
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	} else {
		decoder := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
			}
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
		log.Debug().Str("path", path).Msg("Loaded config file")
	}

	cfg.Server.URL = envString(EnvURL, cfg.Server.URL)
	cfg.Server.User = envString(EnvUser, cfg.Server.User)
	cfg.Server.Password = envString(EnvPassword, cfg.Server.Password)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	err := validate.Struct(c)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			fields = append(fields, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(fields, ", "))
	} else if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Level is the parsed log level. The value has already been validated.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Title is the title of the root node, defaulting to the server software.
func (c *Config) Title() string {
	if c.Server.Title != "" {
		return c.Server.Title
	} else if c.Server.App == AppNavidrome {
		return "Navidrome"
	}
	return "Subsonic"
}

func (c *Config) ClientConfig(userAgent string) subsonic.Config {
	return subsonic.Config{
		URL:            c.Server.URL,
		Username:       c.Server.User,
		Password:       c.Server.Password,
		ClientName:     c.Server.ClientName,
		Version:        c.Server.APIVersion,
		UserAgent:      userAgent,
		Timeout:        time.Duration(c.Server.Timeout),
		SkipCertVerify: c.Server.SkipCertVerify,
	}
}

func (c *Config) CatalogOptions() catalog.Options {
	return catalog.Options{
		Title:    c.Title(),
		Language: c.Language,
		Settings: catalog.Settings{
			Artists:   c.Sections.Artists,
			Albums:    c.Sections.Albums,
			Playlists: c.Sections.Playlists,
			Genres:    c.Sections.Genres,
			Radio:     c.Sections.Radio,
		},
	}
}

func envString(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
