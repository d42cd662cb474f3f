package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"pos_backend/pkg/models"
	"strings"
)

// FileSettings keeps SystemSettings in a JSON file. Keys missing from the
// file take their default value.
type FileSettings struct {
	Path string
}

// Load reads the file over the defaults. A missing file yields the defaults.
func (f FileSettings) Load() (models.SystemSettings, error) {
	settings := models.DefaultSettings()
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, err
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.DefaultSettings(), fmt.Errorf("parse %s: %w", f.Path, err)
	}
	return settings, nil
}

// Save writes the settings atomically.
func (f FileSettings) Save(settings models.SystemSettings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), ".settings-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.Path)
}

// Settings returns the current settings.
func (s *AppState) Settings() models.SystemSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings validates, applies and persists new settings. Orders already
// placed keep their stored total whatever the new tax rate.
func (s *AppState) UpdateSettings(settings models.SystemSettings) (models.SystemSettings, error) {
	settings.Name = strings.TrimSpace(settings.Name)
	if settings.Name == "" {
		return models.SystemSettings{}, fmt.Errorf("business name is required: %w", ErrInvalidInput)
	}
	if settings.TaxRate < 0 {
		return models.SystemSettings{}, fmt.Errorf("tax rate cannot be negative: %w", ErrInvalidInput)
	}
	if settings.StandbyMinutes < 0 {
		return models.SystemSettings{}, fmt.Errorf("standby minutes cannot be negative: %w", ErrInvalidInput)
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	if s.settingsStore != nil {
		if err := s.settingsStore.Save(settings); err != nil {
			return settings, fmt.Errorf("save settings: %w", err)
		}
	}
	return settings, nil
}

// ResetSystem clears orders, reservations and customers and frees every
// table. Menu and staff are kept.
func (s *AppState) ResetSystem() {
	s.mu.Lock()
	s.orders = nil
	s.reservations = nil
	s.customers = nil
	for i := range s.tables {
		s.setTableStatusLocked(i, models.TableStatusAvailable)
	}
	s.mu.Unlock()

	s.write("delete all orders", func(ctx context.Context) error {
		return s.store.DeleteAll(ctx, &models.Order{})
	})
	s.write("delete all reservations", func(ctx context.Context) error {
		return s.store.DeleteAll(ctx, &models.Reservation{})
	})
	s.write("delete all customers", func(ctx context.Context) error {
		return s.store.DeleteAll(ctx, &models.Customer{})
	})
}

// ResetMenu replaces the menu with the default one. The remote delete and
// insert run as one job so the insert cannot land first.
func (s *AppState) ResetMenu() []models.MenuItem {
	menu := models.DefaultMenu()

	s.mu.Lock()
	s.menu = menu
	s.mu.Unlock()

	seed := models.DefaultMenu()
	s.write("reset menu", func(ctx context.Context) error {
		if err := s.store.DeleteAll(ctx, &models.MenuItem{}); err != nil {
			return err
		}
		return s.store.Insert(ctx, &seed)
	})

	out := make([]models.MenuItem, len(menu))
	copy(out, menu)
	return out
}
