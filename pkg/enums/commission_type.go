package enums

import "fmt"

// CommissionType selects how a seller is monetized by the platform.
type CommissionType string

const (
	CommissionTypePercentage   CommissionType = "percentage"
	CommissionTypeSubscription CommissionType = "subscription"
)

var validCommissionTypes = []CommissionType{
	CommissionTypePercentage,
	CommissionTypeSubscription,
}

// String implements fmt.Stringer.
func (c CommissionType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CommissionType.
func (c CommissionType) IsValid() bool {
	for _, candidate := range validCommissionTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCommissionType converts raw input into a CommissionType.
func ParseCommissionType(value string) (CommissionType, error) {
	for _, candidate := range validCommissionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid commission type %q", value)
}
