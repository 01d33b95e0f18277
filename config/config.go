// Package config loads panel calibration and tuning from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"kite/touch"
)

// Touch holds the panel calibration and the contact-quality gate.
type Touch struct {
	XLow       float32 `toml:"x_low"`
	XHigh      float32 `toml:"x_high"`
	YLow       float32 `toml:"y_low"`
	YHigh      float32 `toml:"y_high"`
	RThreshold float32 `toml:"r_threshold"`
}

// File is the on-disk configuration.
type File struct {
	Touch Touch `toml:"touch"`
}

// Default returns the configuration used when no file exists: identity
// calibration and the stock pressure gate.
func Default() File {
	cal := touch.DefaultCalibration()
	return File{
		Touch: Touch{
			XLow:       cal.XLow,
			XHigh:      cal.XHigh,
			YLow:       cal.YLow,
			YHigh:      cal.YHigh,
			RThreshold: touch.DefaultRTouchThreshold,
		},
	}
}

// Load reads the file at path. A missing file is not an error: defaults
// apply. A file that exists but does not parse or validate is an error.
func Load(path string) (File, error) {
	if path == "" {
		return Default(), nil
	}
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return Default(), err
	}
	return f, nil
}

// Save writes the file at path.
func Save(path string, f File) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer out.Close()
	if err := toml.NewEncoder(out).Encode(f); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}

// Validate checks the calibration spans and the pressure gate.
func (f File) Validate() error {
	if f.Touch.XHigh <= f.Touch.XLow {
		return fmt.Errorf("config: x calibration span %v..%v is empty", f.Touch.XLow, f.Touch.XHigh)
	}
	if f.Touch.YHigh <= f.Touch.YLow {
		return fmt.Errorf("config: y calibration span %v..%v is empty", f.Touch.YLow, f.Touch.YHigh)
	}
	if f.Touch.RThreshold <= 0 {
		return fmt.Errorf("config: r_threshold %v must be positive", f.Touch.RThreshold)
	}
	return nil
}

// Calibration converts to the touch-package mapping.
func (f File) Calibration() touch.Calibration {
	return touch.Calibration{
		XLow:  f.Touch.XLow,
		XHigh: f.Touch.XHigh,
		YLow:  f.Touch.YLow,
		YHigh: f.Touch.YHigh,
	}
}
