/*
 * m6809 - Board configuration file parser test set.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package configparser

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "board.cfg")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.IOPage != 0xE000 {
		t.Errorf("IOPage = %#x, want 0xE000", cfg.IOPage)
	}
	if cfg.TimerPeriod != 20*time.Millisecond {
		t.Errorf("TimerPeriod = %v, want 20ms", cfg.TimerPeriod)
	}
	if cfg.UARTBackend != "stdio" {
		t.Errorf("UARTBackend = %q, want stdio", cfg.UARTBackend)
	}
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := writeTempConfig(t, `# board configuration
rom = "boot.rom"
iopage = 0xD000
timer = 5ms
uart = tcp:localhost:2000
`)
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.ROMPath != "boot.rom" {
		t.Errorf("ROMPath = %q, want boot.rom", cfg.ROMPath)
	}
	if cfg.IOPage != 0xD000 {
		t.Errorf("IOPage = %#x, want 0xD000", cfg.IOPage)
	}
	if cfg.TimerPeriod != 5*time.Millisecond {
		t.Errorf("TimerPeriod = %v, want 5ms", cfg.TimerPeriod)
	}
	if cfg.UARTBackend != "tcp" {
		t.Errorf("UARTBackend = %q, want tcp", cfg.UARTBackend)
	}
	if cfg.UARTAddr != "localhost:2000" {
		t.Errorf("UARTAddr = %q, want localhost:2000", cfg.UARTAddr)
	}
}

func TestLoadConfigFileBareROMPath(t *testing.T) {
	path := writeTempConfig(t, "rom = boot/image.rom\n")
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.ROMPath != "boot/image.rom" {
		t.Errorf("ROMPath = %q, want boot/image.rom", cfg.ROMPath)
	}
}

func TestLoadConfigFileCommentsAndBlankLines(t *testing.T) {
	path := writeTempConfig(t, "\n# a comment line\n\nrom = a.rom # trailing comment\n")
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.ROMPath != "a.rom" {
		t.Errorf("ROMPath = %q, want a.rom", cfg.ROMPath)
	}
}

func TestLoadConfigFileUnknownSetting(t *testing.T) {
	path := writeTempConfig(t, "bogus = 1\n")
	if _, err := LoadConfigFile(path); err == nil {
		t.Error("expected error for unknown setting")
	}
}

func TestLoadConfigFileBadIOPage(t *testing.T) {
	path := writeTempConfig(t, "iopage = not-hex\n")
	if _, err := LoadConfigFile(path); err == nil {
		t.Error("expected error for malformed iopage")
	}
}

func TestLoadConfigFileBadUARTBackend(t *testing.T) {
	path := writeTempConfig(t, "uart = carrier-pigeon\n")
	if _, err := LoadConfigFile(path); err == nil {
		t.Error("expected error for unknown uart backend")
	}
}

func TestLoadConfigFileMissingFile(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.cfg")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfigFileQuotedValueWithSpaces(t *testing.T) {
	path := writeTempConfig(t, `rom = "path with spaces/boot.rom"`+"\n")
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.ROMPath != "path with spaces/boot.rom" {
		t.Errorf("ROMPath = %q, want %q", cfg.ROMPath, "path with spaces/boot.rom")
	}
}
