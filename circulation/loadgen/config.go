package loadgen

import (
	"errors"
	"time"
)

const (
	DefaultItems         = 50
	DefaultCopiesPerItem = 2
	DefaultPatrons       = 200
	DefaultWorkers       = 8
	DefaultDuration      = 30 * time.Second

	// Chances per patron visit.
	ChanceReturn  = 0.6
	ChanceRenew   = 0.1
	ChanceReserve = 0.5

	commandTimeout = 5 * time.Second
)

var ErrInvalidConfig = errors.New("invalid load generator config")

type Config struct {
	Items         int
	CopiesPerItem int
	Patrons       int
	Workers       int

	// Duration bounds the run. MaxVisits stops it earlier when > 0.
	Duration  time.Duration
	MaxVisits int
}

func DefaultConfig() Config {
	return Config{
		Items:         DefaultItems,
		CopiesPerItem: DefaultCopiesPerItem,
		Patrons:       DefaultPatrons,
		Workers:       DefaultWorkers,
		Duration:      DefaultDuration,
	}
}

func (c Config) validate() error {
	if c.Items < 1 || c.CopiesPerItem < 1 || c.Patrons < 1 || c.Workers < 1 {
		return errors.Join(ErrInvalidConfig, errors.New("items, copies, patrons and workers must be positive"))
	}

	if c.Duration <= 0 && c.MaxVisits <= 0 {
		return errors.Join(ErrInvalidConfig, errors.New("either duration or max visits must be set"))
	}

	return nil
}
