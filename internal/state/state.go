package state

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/Dasen603/typeset/internal/config"
	"github.com/Dasen603/typeset/internal/store"
)

type State struct {
	Config  *config.Config
	Store   *store.Store
	Home    string
	Watcher *StoreWatcher
}

func NewState() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	watcher, err := NewStoreWatcher(cfg.DBPath)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to create store watcher: %w", err)
	}

	return &State{
		Config:  cfg,
		Store:   s,
		Home:    home,
		Watcher: watcher,
	}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(home + "/" + config.ConfigDir)
	viper.SetConfigName(config.ConfigFile)
	viper.SetConfigType(config.ConfigFileType)
	viper.ReadInConfig()

	if err := config.EnsureExists(home); err != nil {
		return nil, err
	}

	return config.Load(home)
}

// Close releases the database handle and the file watcher.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Store = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
