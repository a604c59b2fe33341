//go:build windows

package filter

import "golang.org/x/sys/windows"

// platformHiddenProbe reads the FILE_ATTRIBUTE_HIDDEN bit.
type platformHiddenProbe struct{}

// NewPlatformHiddenProbe returns the hidden-attribute probe for the running platform.
func NewPlatformHiddenProbe() HiddenProbe {
	return platformHiddenProbe{}
}

// IsHidden fails open: an attribute lookup error reports the path as visible.
func (platformHiddenProbe) IsHidden(path string) bool {
	pathPointer, conversionError := windows.UTF16PtrFromString(path)
	if conversionError != nil {
		return false
	}
	attributes, attributesError := windows.GetFileAttributes(pathPointer)
	if attributesError != nil {
		return false
	}
	return attributes&windows.FILE_ATTRIBUTE_HIDDEN != 0
}
