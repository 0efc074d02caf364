package internal

import "fmt"

// Layout describes where a profile keeps its appraisal outcomes.
type Layout int

const (
	// LayoutModular keeps one appraisal record per module under "submods".
	LayoutModular Layout = iota
	// LayoutFlat keeps a single appraisal at the top level of the claims.
	LayoutFlat
)

func (l Layout) String() string {
	switch l {
	case LayoutModular:
		return "modular"
	case LayoutFlat:
		return "flat"
	}
	return fmt.Sprintf("layout(%d)", int(l))
}

// Profile pins an EAR to a claims schema through its "eat_profile" tag.
type Profile struct {
	Tag    string
	Layout Layout
}

var (
	ProfileEAR = Profile{
		Tag:    "tag:github.com,2023:veraison/ear",
		Layout: LayoutModular,
	}
	ProfileEARFlat = Profile{
		Tag:    "tag:github.com,2022:veraison/ear",
		Layout: LayoutFlat,
	}
)

func lookupProfile(tag string, accepted []Profile) (Profile, bool) {
	for _, p := range accepted {
		if p.Tag == tag {
			return p, true
		}
	}
	return Profile{}, false
}
