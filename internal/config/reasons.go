package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ReasonPlaceholder is the "no reason given" entry shown first in the
// mark-tested quick-reason dropdown.
const ReasonPlaceholder = "—"

// ReasonConfig is the operator-facing quick-reason list for the mark-tested
// flow. Values outside the list are accepted as free text, never rejected;
// the list only drives what the UI offers.
type ReasonConfig struct {
	QuickReasons []string `mapstructure:"quickReasons"`
}

func DefaultReasonConfig() ReasonConfig {
	return ReasonConfig{
		QuickReasons: []string{
			ReasonPlaceholder,
			"Routine test",
			"No flow",
			"Meter changed out",
			"Plate changed",
			"Recalibrated",
			"Witnessed test",
			"Failed previous test",
			"Operator request",
		},
	}
}

// ReasonConfigHolder serves the current reason list and hot-reloads it when
// the config file changes on disk.
type ReasonConfigHolder struct {
	current atomic.Value // holds ReasonConfig
}

func NewReasonConfigHolder() (*ReasonConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("meterwatch")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/meterwatch")
	v.AddConfigPath(".")

	v.SetEnvPrefix("METERWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultReasonConfig()
		v.SetDefault("markTested.quickReasons", defaults.QuickReasons)
	}

	var cfg ReasonConfig
	if err := v.UnmarshalKey("markTested", &cfg); err != nil {
		return nil, err
	}
	if err := validateReasonConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ReasonConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ReasonConfig
		if err := v.UnmarshalKey("markTested", &updated); err != nil {
			log.Printf("[reason-config] reload failed: %v", err)
			return
		}
		if err := validateReasonConfig(updated); err != nil {
			log.Printf("[reason-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[reason-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *ReasonConfigHolder) Get() ReasonConfig {
	return h.current.Load().(ReasonConfig)
}

func validateReasonConfig(cfg ReasonConfig) error {
	if len(cfg.QuickReasons) == 0 {
		return errors.New("markTested.quickReasons cannot be empty")
	}
	return nil
}
