package domain

import "fmt"

// SpeedBucket defines the normal distribution drawn from for a set of hours.
// A bucket with no hours listed is the catch-all for hours no other bucket claims.
type SpeedBucket struct {
	Name      string  `yaml:"name" json:"name"`
	Hours     []int   `yaml:"hours,flow" json:"hours,omitempty"`
	MeanKPH   float64 `yaml:"mean_kph" json:"mean_kph"`
	StdDevKPH float64 `yaml:"stddev_kph" json:"stddev_kph"`
}

// Covers reports whether the bucket claims the given hour
func (b SpeedBucket) Covers(hour int) bool {
	for _, h := range b.Hours {
		if h == hour {
			return true
		}
	}
	return false
}

// SpeedProfile is the time-of-day policy table driving the traffic simulation.
// It is ordinary configuration: swapping distributions must never require
// touching the generation loop.
type SpeedProfile struct {
	FloorKPH float64       `yaml:"floor_kph" json:"floor_kph"`
	Buckets  []SpeedBucket `yaml:"buckets" json:"buckets"`
}

// DefaultSpeedProfile returns the built-in policy table
func DefaultSpeedProfile() SpeedProfile {
	return SpeedProfile{
		FloorKPH: 5,
		Buckets: []SpeedBucket{
			{Name: "rush", Hours: []int{7, 8, 9, 16, 17, 18}, MeanKPH: 18, StdDevKPH: 5},
			{Name: "midday", Hours: []int{10, 11, 12, 13, 14, 15}, MeanKPH: 30, StdDevKPH: 7},
			{Name: "evening", Hours: []int{19, 20, 21, 22}, MeanKPH: 40, StdDevKPH: 5},
			{Name: "offpeak", MeanKPH: 50, StdDevKPH: 5},
		},
	}
}

// BucketFor returns the bucket claiming the given hour, falling back to the catch-all
func (p SpeedProfile) BucketFor(hour int) SpeedBucket {
	var fallback *SpeedBucket
	for i, b := range p.Buckets {
		if b.Covers(hour) {
			return b
		}
		if len(b.Hours) == 0 && fallback == nil {
			fallback = &p.Buckets[i]
		}
	}
	if fallback != nil {
		return *fallback
	}
	return SpeedBucket{}
}

// Validate checks that the profile is usable: a positive floor, sane
// distributions, no hour claimed twice, and every hour of the day covered.
func (p SpeedProfile) Validate() error {
	if p.FloorKPH <= 0 {
		return fmt.Errorf("domain: speed profile floor must be positive, got %.1f", p.FloorKPH)
	}
	if len(p.Buckets) == 0 {
		return fmt.Errorf("domain: speed profile has no buckets")
	}

	claimed := make(map[int]string)
	catchAll := false
	for _, b := range p.Buckets {
		if b.StdDevKPH <= 0 {
			return fmt.Errorf("domain: bucket %q has non-positive stddev", b.Name)
		}
		if b.MeanKPH <= 0 {
			return fmt.Errorf("domain: bucket %q has non-positive mean", b.Name)
		}
		if len(b.Hours) == 0 {
			catchAll = true
			continue
		}
		for _, h := range b.Hours {
			if h < 0 || h > 23 {
				return fmt.Errorf("domain: bucket %q claims invalid hour %d", b.Name, h)
			}
			if prev, dup := claimed[h]; dup {
				return fmt.Errorf("domain: hour %d claimed by both %q and %q", h, prev, b.Name)
			}
			claimed[h] = b.Name
		}
	}

	if !catchAll {
		for h := 0; h < 24; h++ {
			if _, ok := claimed[h]; !ok {
				return fmt.Errorf("domain: hour %d not covered by any bucket", h)
			}
		}
	}
	return nil
}
