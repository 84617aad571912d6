package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rp-magrathea/vogsphere/internal/model"
)

func TestFormKey(t *testing.T) {
	a := FormKey("https://example.com/claim-form")
	b := FormKey("https://example.com/claim-form")
	c := FormKey("https://example.com/other-form")

	if a != b {
		t.Error("Expected stable keys")
	}
	if a == c {
		t.Error("Expected different URLs to get different keys")
	}
	if !strings.HasPrefix(a, "vogsphere-form-v1-") {
		t.Errorf("Unexpected key prefix: %s", a)
	}
}

func TestNew_Disabled(t *testing.T) {
	if c := New(model.CacheConfig{Enabled: false}); c != nil {
		t.Errorf("Expected nil cache when disabled, got %T", c)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if val, ok := c.Get("k"); !ok || string(val) != "v" {
		t.Errorf("Expected hit with 'v', got %q, %v", val, ok)
	}

	_ = c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	origNow := nowFunc
	nowFunc = func() time.Time { return now }
	defer func() { nowFunc = origNow }()

	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set("form", []byte("<form></form>"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if val, ok := c.Get("form"); !ok || string(val) != "<form></form>" {
		t.Errorf("Expected hit, got %q, %v", val, ok)
	}

	now = now.Add(2 * time.Hour)
	if _, ok := c.Get("form"); ok {
		t.Error("Expected miss after expiry")
	}
	if _, err := os.Stat(filepath.Join(dir, "form.cache")); !os.IsNotExist(err) {
		t.Error("Expected expired entry to be removed")
	}
}

func TestDiskCache_DeleteMissing(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	if err := c.Delete("nothing"); err != nil {
		t.Errorf("Expected no error deleting a missing key, got %v", err)
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set("form", []byte("page"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	c := &LayeredCache{
		memory: NewMemoryCache(time.Hour, time.Minute),
		disk:   disk,
	}

	if val, ok := c.Get("form"); !ok || string(val) != "page" {
		t.Fatalf("Expected disk hit, got %q, %v", val, ok)
	}
	if val, ok := c.memory.Get("form"); !ok || string(val) != "page" {
		t.Error("Expected disk hit to be promoted to memory")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, ok := c.Get("form"); ok {
		t.Error("Expected miss after clear")
	}
}
