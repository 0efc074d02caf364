package internal

import (
	"fmt"

	"github.com/blocky/ear/pkg/ear_error"
)

// Tier is the trust tier an appraisal assigns to an attester.
type Tier int

const (
	TierNone Tier = iota
	TierAffirming
	TierWarning
	TierContraindicated
)

var tierNames = map[Tier]string{
	TierNone:            "none",
	TierAffirming:       "affirming",
	TierWarning:         "warning",
	TierContraindicated: "contraindicated",
}

// ParseTier maps an "ear.status" value to its Tier. The match is exact and
// case-sensitive.
func ParseTier(status string) (Tier, error) {
	for tier, name := range tierNames {
		if name == status {
			return tier, nil
		}
	}
	return TierNone, fmt.Errorf("%w \"%s\"", ear_error.ErrUnknownStatus, status)
}

func (t Tier) String() string {
	name, ok := tierNames[t]
	if !ok {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return name
}

func (t Tier) MarshalText() ([]byte, error) {
	name, ok := tierNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown tier %d", int(t))
	}
	return []byte(name), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	tier, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = tier
	return nil
}

// severity orders tiers for aggregation: a worse verdict always wins and no
// verdict is weaker than an affirmation.
func (t Tier) severity() int {
	switch t {
	case TierAffirming:
		return 0
	case TierNone:
		return 1
	case TierWarning:
		return 2
	case TierContraindicated:
		return 3
	}
	return -1
}
