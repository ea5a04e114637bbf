package main

import (
	"archive/zip"
	"image"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"lightbox/viewer"
)

func TestIsSupportedExt(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"PNG file", "test.png", true},
		{"JPG file", "test.jpg", true},
		{"JPEG file", "test.jpeg", true},
		{"WebP file", "test.webp", true},
		{"BMP file", "test.bmp", true},
		{"GIF file", "test.gif", true},
		{"PNG uppercase", "test.PNG", true},
		{"Text file", "test.txt", false},
		{"Archive", "test.zip", false},
		{"No extension", "test", false},
		{"Empty string", "", false},
		{"Multiple dots", "test.backup.jpg", true},
		{"Path with directory", "/path/to/test.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isSupportedExt(tt.path)
			if result != tt.expected {
				t.Errorf("isSupportedExt(%s) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestIsArchiveExt(t *testing.T) {
	for path, expected := range map[string]bool{
		"a.zip": true, "a.RAR": true, "a.7z": true, "a.tar": false, "a.png": false,
	} {
		if got := isArchiveExt(path); got != expected {
			t.Errorf("isArchiveExt(%s) = %v, want %v", path, got, expected)
		}
	}
}

func writeConfig(t *testing.T, configJSON string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), ".lightbox.json")
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return configPath
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name            string
		configJSON      string
		expectedWidth   int
		expectedHeight  int
		expectedCache   int
		expectedPreload int
		expectedThumb   int
	}{
		{
			name:            "Valid config",
			configJSON:      `{"window_width": 1000, "window_height": 800, "cache_size": 32, "preload_count": 4, "thumb_size": 200}`,
			expectedWidth:   1000,
			expectedHeight:  800,
			expectedCache:   32,
			expectedPreload: 4,
			expectedThumb:   200,
		},
		{
			name:            "Window too small",
			configJSON:      `{"window_width": 200, "window_height": 100}`,
			expectedWidth:   defaultWidth,
			expectedHeight:  defaultHeight,
			expectedCache:   16,
			expectedPreload: 2,
			expectedThumb:   defaultThumbSize,
		},
		{
			name:            "Out of range values",
			configJSON:      `{"cache_size": 100, "preload_count": -1, "thumb_size": 10}`,
			expectedWidth:   defaultWidth,
			expectedHeight:  defaultHeight,
			expectedCache:   64,
			expectedPreload: 0,
			expectedThumb:   defaultThumbSize,
		},
		{
			name:            "Zero cache and large preload",
			configJSON:      `{"cache_size": 0, "preload_count": 20, "thumb_size": 2000}`,
			expectedWidth:   defaultWidth,
			expectedHeight:  defaultHeight,
			expectedCache:   16,
			expectedPreload: 8,
			expectedThumb:   defaultThumbSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := loadConfigFromPath(writeConfig(t, tt.configJSON))
			config := result.Config

			if result.Status != "OK" {
				t.Errorf("Expected status OK, got %s (%v)", result.Status, result.Warnings)
			}
			if config.WindowWidth != tt.expectedWidth || config.WindowHeight != tt.expectedHeight {
				t.Errorf("Expected size %dx%d, got %dx%d", tt.expectedWidth, tt.expectedHeight, config.WindowWidth, config.WindowHeight)
			}
			if config.CacheSize != tt.expectedCache {
				t.Errorf("Expected cache size %d, got %d", tt.expectedCache, config.CacheSize)
			}
			if config.PreloadCount != tt.expectedPreload {
				t.Errorf("Expected preload count %d, got %d", tt.expectedPreload, config.PreloadCount)
			}
			if config.ThumbSize != tt.expectedThumb {
				t.Errorf("Expected thumb size %d, got %d", tt.expectedThumb, config.ThumbSize)
			}
		})
	}
}

func TestConfigGesture(t *testing.T) {
	t.Run("Partial override keeps other defaults", func(t *testing.T) {
		result := loadConfigFromPath(writeConfig(t, `{"gesture": {"tap_slop": 20, "swipe_distance": 60}}`))
		want := viewer.DefaultPolicy()
		want.TapSlop = 20
		want.SwipeDistance = 60

		if result.Status != "OK" {
			t.Errorf("Expected status OK, got %s", result.Status)
		}
		if result.Config.Gesture != want {
			t.Errorf("Expected %+v, got %+v", want, result.Config.Gesture)
		}
	})

	t.Run("Invalid policy falls back to defaults", func(t *testing.T) {
		result := loadConfigFromPath(writeConfig(t, `{"gesture": {"decay": 1.5, "tap_slop": 20}}`))

		if result.Status != "Warning" {
			t.Errorf("Expected status Warning, got %s", result.Status)
		}
		if len(result.Warnings) != 1 {
			t.Errorf("Expected 1 warning, got %v", result.Warnings)
		}
		if result.Config.Gesture != viewer.DefaultPolicy() {
			t.Errorf("Expected default policy, got %+v", result.Config.Gesture)
		}
	})
}

func TestConfigKeybindings(t *testing.T) {
	tests := []struct {
		name           string
		configJSON     string
		expectedStatus string
		expectedQuit   []string
	}{
		{"Custom binding", `{"keybindings": {"quit": ["Shift+KeyQ"]}}`, "OK", []string{"Shift+KeyQ"}},
		{"Conflict with a default", `{"keybindings": {"quit": ["KeyF"]}}`, "Warning", []string{"KeyQ"}},
		{"Unknown key", `{"keybindings": {"quit": ["KeyQQ"]}}`, "Warning", []string{"KeyQ"}},
		{"Unknown modifier", `{"keybindings": {"quit": ["Hyper+KeyQ"]}}`, "Warning", []string{"KeyQ"}},
		{"Unknown action", `{"keybindings": {"rotate": ["KeyR"]}}`, "Warning", []string{"KeyQ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := loadConfigFromPath(writeConfig(t, tt.configJSON))

			if result.Status != tt.expectedStatus {
				t.Errorf("Expected status %s, got %s (%v)", tt.expectedStatus, result.Status, result.Warnings)
			}
			if got := result.Config.Keybindings["quit"]; !reflect.DeepEqual(got, tt.expectedQuit) {
				t.Errorf("Expected quit keys %v, got %v", tt.expectedQuit, got)
			}
			// Missing actions always get their defaults
			if got := result.Config.Keybindings["dismiss"]; !reflect.DeepEqual(got, []string{"Escape"}) {
				t.Errorf("Expected dismiss keys [Escape], got %v", got)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	result := loadConfigFromPath(filepath.Join(t.TempDir(), "missing.json"))
	if result.Status != "Default" {
		t.Errorf("Expected status Default, got %s", result.Status)
	}
	if !reflect.DeepEqual(result.Config, defaultConfig()) {
		t.Errorf("Expected default config, got %+v", result.Config)
	}

	result = loadConfigFromPath(writeConfig(t, `{"window_width": `))
	if result.Status != "Error" || !result.HasError {
		t.Errorf("Expected status Error, got %s", result.Status)
	}
	if result.Config.WindowWidth != defaultWidth {
		t.Errorf("Expected default width, got %d", result.Config.WindowWidth)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".lightbox.json")
	config := defaultConfig()
	config.WindowWidth = 1280
	config.Gesture.ZoomStep = 3
	saveConfigToPath(config, configPath)

	result := loadConfigFromPath(configPath)
	if result.Status != "OK" {
		t.Fatalf("Expected status OK, got %s", result.Status)
	}
	if result.Config.WindowWidth != 1280 || result.Config.Gesture.ZoomStep != 3 {
		t.Errorf("Saved values not loaded back: %+v", result.Config)
	}

	// Too small windows are never written
	small := filepath.Join(t.TempDir(), "small.json")
	config.WindowWidth = 10
	saveConfigToPath(config, small)
	if _, err := os.Stat(small); !os.IsNotExist(err) {
		t.Errorf("Expected no file for invalid window size, got %v", err)
	}
}

func createTestZip(t *testing.T, path string, names ...string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, name := range names {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}
		entry.Write([]byte("dummy"))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
}

func TestCollectMedia(t *testing.T) {
	tempDir := t.TempDir()
	for _, name := range []string{"b10.png", "b2.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(tempDir, name), []byte("dummy"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
	archive := filepath.Join(tempDir, "a.zip")
	createTestZip(t, archive, "p10.png", "sub/", "p2.png", "readme.txt")

	t.Run("Directory", func(t *testing.T) {
		media, err := collectMedia([]string{tempDir}, SortNatural)
		if err != nil {
			t.Fatalf("collectMedia failed: %v", err)
		}

		expected := []string{
			archive + ":p2.png",
			archive + ":p10.png",
			filepath.Join(tempDir, "b2.png"),
			filepath.Join(tempDir, "b10.png"),
		}
		if got := refPaths(media); !reflect.DeepEqual(got, expected) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
		if media[0].ArchivePath != archive || media[0].EntryPath != "p2.png" {
			t.Errorf("Archive entry fields not set: %+v", media[0])
		}
	})

	t.Run("Single archive keeps entry order", func(t *testing.T) {
		media, err := collectMedia([]string{archive}, SortEntryOrder)
		if err != nil {
			t.Fatalf("collectMedia failed: %v", err)
		}
		expected := []string{archive + ":p10.png", archive + ":p2.png"}
		if got := refPaths(media); !reflect.DeepEqual(got, expected) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})

	t.Run("Unsupported file is skipped", func(t *testing.T) {
		media, err := collectMedia([]string{filepath.Join(tempDir, "notes.txt")}, SortNatural)
		if err != nil || len(media) != 0 {
			t.Errorf("Expected no media and no error, got %v, %v", media, err)
		}
	})

	t.Run("Missing path", func(t *testing.T) {
		if _, err := collectMedia([]string{filepath.Join(tempDir, "missing")}, SortNatural); err == nil {
			t.Error("Expected error for missing path")
		}
	})

	t.Run("Broken archive is skipped", func(t *testing.T) {
		broken := filepath.Join(t.TempDir(), "broken.zip")
		if err := os.WriteFile(broken, []byte("not a zip"), 0644); err != nil {
			t.Fatal(err)
		}
		media, err := collectMedia([]string{broken}, SortNatural)
		if err != nil || len(media) != 0 {
			t.Errorf("Expected no media and no error, got %v, %v", media, err)
		}
	})
}

func TestMediaRefName(t *testing.T) {
	tests := []struct {
		ref      MediaRef
		expected string
	}{
		{MediaRef{Path: "/photos/cat.png"}, "cat.png"},
		{archiveEntry("/books/vol1.zip", "pages/001.jpg"), "vol1.zip:001.jpg"},
	}
	for _, tt := range tests {
		if got := tt.ref.Name(); got != tt.expected {
			t.Errorf("Name() = %s, want %s", got, tt.expected)
		}
	}
}

func TestScaleToFit(t *testing.T) {
	tests := []struct {
		name       string
		w, h, size int
		wantW      int
		wantH      int
	}{
		{"Landscape", 400, 200, 100, 100, 50},
		{"Portrait", 200, 400, 100, 50, 100},
		{"Already small", 80, 60, 100, 80, 60},
		{"Extreme aspect", 1000, 1, 100, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scaleToFit(image.NewRGBA(image.Rect(0, 0, tt.w, tt.h)), tt.size).Bounds()
			if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
				t.Errorf("Expected %dx%d, got %dx%d", tt.wantW, tt.wantH, got.Dx(), got.Dy())
			}
		})
	}
}

func TestDrawHelpers(t *testing.T) {
	if got := fitScale(1600, 900, 800, 600); got != 0.5 {
		t.Errorf("fitScale = %v, want 0.5", got)
	}
	if got := fitScale(100, 100, 800, 600); got != 1 {
		t.Errorf("fitScale should not upscale, got %v", got)
	}
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("日本語のファイル名", 5); got != "日本..." {
		t.Errorf("truncate should cut runes, got %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
}

func TestEaseToward(t *testing.T) {
	offset := 120.0
	for i := 0; i < 100 && offset != 0; i++ {
		next := easeToward(offset, 0, offsetEaseRate)
		if next > offset || next < 0 {
			t.Fatalf("Easing overshot: %v -> %v", offset, next)
		}
		offset = next
	}
	if offset != 0 {
		t.Errorf("Expected offset to settle at 0, got %v", offset)
	}
}

func TestStepFade(t *testing.T) {
	fade := 0.0
	shown := viewer.Transform{Visible: true}
	for i := 0; i < 20; i++ {
		fade = stepFade(fade, shown)
	}
	if fade != 1 {
		t.Errorf("Expected full opacity after fade in, got %v", fade)
	}

	fade = stepFade(fade, viewer.Transform{Visible: true, Closing: true})
	if fade >= 1 {
		t.Errorf("Expected fade out to start, got %v", fade)
	}
}
