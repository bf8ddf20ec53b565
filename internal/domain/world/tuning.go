package world

import (
	"errors"
	"fmt"
)

type EconomyMode string

const (
	EconomyGrief  EconomyMode = "grief"
	EconomyEnergy EconomyMode = "energy"
)

var ErrInvalidTuning = errors.New("invalid tuning")

type Range struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

func (r Range) Pick(rng Random) int {
	return Between(rng, r.Min, r.Max)
}

type EnergyTuning struct {
	Min              int `yaml:"min" json:"min"`
	Max              int `yaml:"max" json:"max"`
	Initial          int `yaml:"initial" json:"initial"`
	CreateCost       int `yaml:"create_cost" json:"create_cost"`
	DeletePenalty    int `yaml:"delete_penalty" json:"delete_penalty"`
	DeleteReward     int `yaml:"delete_reward" json:"delete_reward"`
	VisitRewardBase  int `yaml:"visit_reward_base" json:"visit_reward_base"`
	VisitRewardDecay int `yaml:"visit_reward_decay" json:"visit_reward_decay"`
	VisitRewardFloor int `yaml:"visit_reward_floor" json:"visit_reward_floor"`
}

type Tuning struct {
	Economy        EconomyMode  `yaml:"economy" json:"economy"`
	Catalog        Catalog      `yaml:"catalog" json:"catalog"`
	GriefThreshold int          `yaml:"grief_threshold" json:"grief_threshold"`
	SeedPackages   Range        `yaml:"seed_packages" json:"seed_packages"`
	PackageItems   Range        `yaml:"package_items" json:"package_items"`
	MatchAttempts  int          `yaml:"match_attempts" json:"match_attempts"`
	Energy         EnergyTuning `yaml:"energy" json:"energy"`
}

const (
	DefaultGriefThreshold = 3
	DefaultMatchAttempts  = 3
)

func DefaultTuning() Tuning {
	return Tuning{
		Economy:        EconomyGrief,
		Catalog:        DefaultCatalog(),
		GriefThreshold: DefaultGriefThreshold,
		SeedPackages:   Range{Min: 1, Max: 2},
		PackageItems:   Range{Min: 3, Max: 5},
		MatchAttempts:  DefaultMatchAttempts,
		Energy: EnergyTuning{
			Min:              0,
			Max:              100,
			Initial:          50,
			CreateCost:       10,
			DeletePenalty:    5,
			DeleteReward:     5,
			VisitRewardBase:  20,
			VisitRewardDecay: 2,
			VisitRewardFloor: 1,
		},
	}
}

func (t Tuning) EnergyEnabled() bool {
	return t.Economy == EconomyEnergy
}

func (t Tuning) Validate() error {
	switch t.Economy {
	case EconomyGrief, EconomyEnergy:
	default:
		return fmt.Errorf("%w: unknown economy %q", ErrInvalidTuning, t.Economy)
	}
	if len(t.Catalog) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTuning, ErrEmptyCatalog)
	}
	if t.GriefThreshold <= 0 {
		return fmt.Errorf("%w: grief_threshold must be positive", ErrInvalidTuning)
	}
	if t.SeedPackages.Min < 1 || t.SeedPackages.Max < t.SeedPackages.Min {
		return fmt.Errorf("%w: seed_packages range %d..%d", ErrInvalidTuning, t.SeedPackages.Min, t.SeedPackages.Max)
	}
	if t.PackageItems.Min < 1 || t.PackageItems.Max < t.PackageItems.Min {
		return fmt.Errorf("%w: package_items range %d..%d", ErrInvalidTuning, t.PackageItems.Min, t.PackageItems.Max)
	}
	if t.MatchAttempts < 1 {
		return fmt.Errorf("%w: match_attempts must be at least 1", ErrInvalidTuning)
	}
	e := t.Energy
	if e.Max < e.Min || e.Initial < e.Min || e.Initial > e.Max {
		return fmt.Errorf("%w: energy bounds %d..%d initial %d", ErrInvalidTuning, e.Min, e.Max, e.Initial)
	}
	if e.CreateCost < 0 || e.DeletePenalty < 0 || e.DeleteReward < 0 || e.VisitRewardFloor < 0 || e.VisitRewardDecay < 0 {
		return fmt.Errorf("%w: energy amounts must not be negative", ErrInvalidTuning)
	}
	return nil
}
