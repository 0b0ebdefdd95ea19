package models

import "fmt"

// Branch is the service branch enumeration. The set is closed: exactly six
// branches, no dynamic extension.
type Branch string

const (
	BranchArmy       Branch = "Army"
	BranchNavy       Branch = "Navy"
	BranchAirForce   Branch = "Air Force"
	BranchMarines    Branch = "Marines"
	BranchSpaceForce Branch = "Space Force"
	BranchCoastGuard Branch = "Coast Guard"
)

// Branches lists all branches in display order.
func Branches() []Branch {
	return []Branch{
		BranchArmy, BranchNavy, BranchAirForce,
		BranchMarines, BranchSpaceForce, BranchCoastGuard,
	}
}

// Abbreviation returns the short form of the branch ("USA", "USN", ...).
func (b Branch) Abbreviation() string {
	switch b {
	case BranchArmy:
		return "USA"
	case BranchNavy:
		return "USN"
	case BranchAirForce:
		return "USAF"
	case BranchMarines:
		return "USMC"
	case BranchSpaceForce:
		return "USSF"
	case BranchCoastGuard:
		return "USCG"
	}
	return ""
}

// Valid reports whether b is one of the six known branches.
func (b Branch) Valid() bool {
	return b.Abbreviation() != ""
}

// ParseBranch converts a display name into a Branch.
func ParseBranch(s string) (Branch, error) {
	b := Branch(s)
	if !b.Valid() {
		return "", fmt.Errorf("unknown service branch: %q", s)
	}
	return b, nil
}
