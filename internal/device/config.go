package device

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/nekoflow/nekodev/internal/accel"
	"github.com/nekoflow/nekodev/internal/precision"
)

// EnvDevice is the environment variable holding the default device config.
//
// The format is "<backend>[:key=value,...]", see ParseConfig.
const EnvDevice = "NEKO_DEVICE"

// Config selects a backend, a device and the kernel precision.
type Config struct {
	Backend    Backend             `json:"backend"`
	Precision  precision.Precision `json:"precision"`
	DeviceType accel.DeviceType    `json:"deviceType,omitempty"`
	// Platform and Device are indexes into the enumerated list; -1 means any.
	Platform int `json:"platform"`
	Device   int `json:"device"`
}

// DefaultConfig returns the host backend at the compiled precision.
func DefaultConfig() Config {
	return Config{
		Backend:   BackendCPU,
		Precision: precision.CurrentPrecision(),
		Platform:  -1,
		Device:    -1,
	}
}

// ConfigFromEnv parses $NEKO_DEVICE, falling back to DefaultConfig.
func ConfigFromEnv() (Config, error) {
	if s, ok := os.LookupEnv(EnvDevice); ok && strings.TrimSpace(s) != "" {
		cfg, err := ParseConfig(s)
		if err != nil {
			return Config{}, errors.WithMessagef(err, "$%s", EnvDevice)
		}
		return cfg, nil
	}
	return DefaultConfig(), nil
}

// ParseConfig parses "<backend>[:key=value,...]".
//
// Recognized keys are platform, device, type and precision. For example
// "opencl:platform=0,type=gpu" or "cpu:precision=dp".
func ParseConfig(s string) (Config, error) {
	cfg := DefaultConfig()

	backendPart, optionsPart, _ := strings.Cut(strings.TrimSpace(s), ":")
	cfg.Backend = NormalizeBackend(backendPart)
	if !cfg.Backend.known() {
		return Config{}, errors.Wrapf(ErrUnknownBackend, "%q", backendPart)
	}

	if strings.TrimSpace(optionsPart) == "" {
		return cfg, nil
	}

	for _, opt := range strings.Split(optionsPart, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		key, value, ok := strings.Cut(opt, "=")
		if !ok {
			return Config{}, errors.Errorf("device option %q: expected key=value", opt)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "platform":
			idx, err := parseIndex(value)
			if err != nil {
				return Config{}, errors.WithMessage(err, "platform")
			}
			cfg.Platform = idx
		case "device":
			idx, err := parseIndex(value)
			if err != nil {
				return Config{}, errors.WithMessage(err, "device")
			}
			cfg.Device = idx
		case "type":
			dt, err := accel.ParseDeviceType(value)
			if err != nil {
				return Config{}, err
			}
			cfg.DeviceType = dt
		case "precision":
			p, err := precision.ParsePrecision(value)
			if err != nil {
				return Config{}, err
			}
			cfg.Precision = p
		default:
			return Config{}, errors.Errorf("unknown device option %q", key)
		}
	}

	return cfg, nil
}

func parseIndex(s string) (int, error) {
	if strings.EqualFold(s, "any") {
		return -1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.Errorf("invalid index %q", s)
	}
	return n, nil
}

// Validate checks that the config names a known backend and matches the
// precision this binary was compiled with.
func (c Config) Validate() error {
	if !c.Backend.known() {
		return errors.Wrapf(ErrUnknownBackend, "%q", string(c.Backend))
	}
	if built := precision.CurrentPrecision(); c.Precision != built {
		return errors.Wrapf(ErrPrecisionMismatch, "config wants %q, binary built with %q", c.Precision.Name, built.Name)
	}
	return nil
}

// Preference converts the device constraints for accel.Select.
func (c Config) Preference() accel.Preference {
	return accel.Preference{
		Type:     c.DeviceType,
		Platform: c.Platform,
		Device:   c.Device,
	}
}

// String formats the config so that ParseConfig returns it unchanged.
func (c Config) String() string {
	var opts []string
	if c.Platform >= 0 {
		opts = append(opts, fmt.Sprintf("platform=%d", c.Platform))
	}
	if c.Device >= 0 {
		opts = append(opts, fmt.Sprintf("device=%d", c.Device))
	}
	if c.DeviceType != "" {
		opts = append(opts, "type="+strings.ToLower(string(c.DeviceType)))
	}
	if c.Precision.Name != "" {
		opts = append(opts, "precision="+c.Precision.Name)
	}
	if len(opts) == 0 {
		return string(c.Backend)
	}
	return string(c.Backend) + ":" + strings.Join(opts, ",")
}
