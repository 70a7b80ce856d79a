package models

import "sort"

// RegionSelection is the set of regions the dashboard is currently filtered to.
// The dashboard service owns the single mutable selection cell; everything else
// receives selections as read-only values.
type RegionSelection struct {
	regions []string
	members map[string]bool
}

// NewRegionSelection builds a selection from region values, deduplicating and
// sorting them. Blank values are ignored.
func NewRegionSelection(regions []string) RegionSelection {
	members := make(map[string]bool, len(regions))
	unique := make([]string, 0, len(regions))
	for _, region := range regions {
		if region == "" || members[region] {
			continue
		}
		members[region] = true
		unique = append(unique, region)
	}
	sort.Strings(unique)
	return RegionSelection{regions: unique, members: members}
}

// IsEmpty reports whether the selection contains no regions
func (s RegionSelection) IsEmpty() bool {
	return len(s.regions) == 0
}

// Contains reports whether a region is a member of the selection
func (s RegionSelection) Contains(region string) bool {
	return s.members[region]
}

// Regions returns the selected regions in sorted order. The returned slice is a
// copy; callers cannot mutate the selection through it.
func (s RegionSelection) Regions() []string {
	out := make([]string, len(s.regions))
	copy(out, s.regions)
	return out
}

// Size returns the number of selected regions
func (s RegionSelection) Size() int {
	return len(s.regions)
}

// Equal reports whether two selections contain the same regions
func (s RegionSelection) Equal(other RegionSelection) bool {
	if len(s.regions) != len(other.regions) {
		return false
	}
	for i := range s.regions {
		if s.regions[i] != other.regions[i] {
			return false
		}
	}
	return true
}
