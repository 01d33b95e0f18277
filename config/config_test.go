package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be fine, got %v", err)
	}
	if f != Default() {
		t.Fatalf("expected defaults, got %+v", f)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	f, err := Load("")
	if err != nil {
		t.Fatalf("expected empty path to be fine, got %v", err)
	}
	if f != Default() {
		t.Fatalf("expected defaults, got %+v", f)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kite.toml")
	want := File{Touch: Touch{
		XLow: 0.05, XHigh: 0.93, YLow: 0.08, YHigh: 0.95, RThreshold: 80,
	}}
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kite.toml")
	if err := os.WriteFile(path, []byte("touch = {"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadRejectsInvalidCalibration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kite.toml")
	body := "[touch]\nx_low = 0.9\nx_high = 0.1\ny_low = 0.0\ny_high = 1.0\nr_threshold = 100.0\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for an empty x span")
	}
}

func TestValidate(t *testing.T) {
	f := Default()
	if err := f.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	f.Touch.RThreshold = -1
	if err := f.Validate(); err == nil {
		t.Fatal("expected negative threshold to be rejected")
	}
}

func TestCalibrationConversion(t *testing.T) {
	f := Default()
	cal := f.Calibration()
	if !cal.Valid() {
		t.Fatal("expected default calibration to be valid")
	}
	if cal.XLow != f.Touch.XLow || cal.YHigh != f.Touch.YHigh {
		t.Fatalf("expected field-for-field conversion, got %+v", cal)
	}
}
