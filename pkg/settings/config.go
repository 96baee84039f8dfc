package settings

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Store kinds understood by Collection.Store.
const (
	StoreFIFO = "fifo"
	StoreLIFO = "lifo"
	StoreMPMC = "mpmc"
)

type Config struct {
	Logger     Logger     `mapstructure:"logger"`
	Collection Collection `mapstructure:"collection"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" validate:"gte=0"`  // Days
	MaxSize     int    `mapstructure:"max_size" validate:"gte=0"` // Megabytes
	Compress    bool   `mapstructure:"compress"`
}

// Collection is the configuration for a blocking collection
type Collection struct {
	Name string `mapstructure:"name"`
	// Capacity bounds the number of queued items; 0 means unbounded.
	Capacity int `mapstructure:"capacity" validate:"gte=0"`
	// Store selects the item store, fifo when empty.
	Store string `mapstructure:"store" validate:"omitempty,oneof=fifo lifo mpmc"`
	// StoreCapacity preallocates the store. For mpmc it defaults to Capacity.
	StoreCapacity int `mapstructure:"store_capacity" validate:"gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return c.Collection.validateStore()
}

// Validate checks the collection settings on their own.
func (c *Collection) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid collection config")
	}
	return c.validateStore()
}

func (c *Collection) validateStore() error {
	if c.Store != StoreMPMC {
		return nil
	}
	if c.Capacity == 0 {
		return errors.New("invalid collection config: mpmc store requires a capacity")
	}
	if c.StoreCapacity != 0 && c.StoreCapacity < c.Capacity {
		return errors.Errorf("invalid collection config: store_capacity %d below capacity %d", c.StoreCapacity, c.Capacity)
	}
	return nil
}
