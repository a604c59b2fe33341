//go:build !windows

package filter

// platformHiddenProbe never reports entries as hidden; dot-prefixed names are handled by the dot-file predicate.
type platformHiddenProbe struct{}

// NewPlatformHiddenProbe returns the hidden-attribute probe for the running platform.
func NewPlatformHiddenProbe() HiddenProbe {
	return platformHiddenProbe{}
}

func (platformHiddenProbe) IsHidden(string) bool {
	return false
}
