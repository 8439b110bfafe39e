package machine

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mastercactapus/drawbot/coord"
	"github.com/mastercactapus/drawbot/gcode"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "APP_"

// Profile describes the physical machine.
type Profile struct {
	Dimensions coord.Vec2D  `json:"dimensions"`
	Flavor     gcode.Flavor `json:"flavor"`
	Device     string       `json:"device"`
	Port       string       `json:"port"`
	BaudRate   int          `json:"baud_rate"`
}

// Settings are the machine profile plus transport tuning.
type Settings struct {
	Profile
	Transport TransportConfig
}

type rawSettings struct {
	XDim     float32 `mapstructure:"xdim"`
	YDim     float32 `mapstructure:"ydim"`
	Flavor   string  `mapstructure:"flavor"`
	Name     string  `mapstructure:"name"`
	Port     string  `mapstructure:"port"`
	BaudRate int     `mapstructure:"baud_rate"`

	Tick        time.Duration `mapstructure:"tick"`
	AckAttempts int           `mapstructure:"ack_attempts"`
	AckDelay    time.Duration `mapstructure:"ack_delay"`
	AckPolicy   string        `mapstructure:"ack_policy"`
}

var requiredKeys = []string{"xdim", "ydim", "flavor", "name", "port", "baud_rate"}

// LoadSettings reads settings from a YAML file, then applies
// APP_* overrides from the process environment.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSettings(data, os.Environ())
}

// ParseSettings decodes YAML settings with overrides from environ,
// given as KEY=value pairs.
func ParseSettings(data []byte, environ []string) (*Settings, error) {
	values := make(map[string]interface{})
	err := yaml.Unmarshal(data, &values)
	if err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	for _, kv := range environ {
		if !strings.HasPrefix(kv, EnvPrefix) {
			continue
		}
		parts := strings.SplitN(strings.TrimPrefix(kv, EnvPrefix), "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[strings.ToLower(parts[0])] = parts[1]
	}

	for _, key := range requiredKeys {
		if _, ok := values[key]; !ok {
			return nil, errors.New("missing config value: " + key)
		}
	}

	var raw rawSettings
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return nil, err
	}
	err = dec.Decode(values)
	if err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	flavor, err := gcode.ParseFlavor(raw.Flavor)
	if err != nil {
		return nil, err
	}
	policy, err := ParseAckPolicy(raw.AckPolicy)
	if err != nil {
		return nil, err
	}
	if raw.XDim <= 0 || raw.YDim <= 0 {
		return nil, fmt.Errorf("invalid bed dimensions %gx%g", raw.XDim, raw.YDim)
	}

	return &Settings{
		Profile: Profile{
			Dimensions: coord.Vec2D{X: raw.XDim, Y: raw.YDim},
			Flavor:     flavor,
			Device:     raw.Name,
			Port:       raw.Port,
			BaudRate:   raw.BaudRate,
		},
		Transport: TransportConfig{
			TickInterval: raw.Tick,
			AckAttempts:  raw.AckAttempts,
			AckDelay:     raw.AckDelay,
			AckPolicy:    policy,
		},
	}, nil
}
