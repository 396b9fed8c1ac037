package enums

import "fmt"

// DesignType describes the kind of asset a project produces.
type DesignType string

const (
	DesignTypeSocialMedia DesignType = "social_media"
	DesignTypePrint       DesignType = "print"
	DesignTypeThumbnail   DesignType = "thumbnail"
	DesignTypeLogo        DesignType = "logo"
)

var validDesignTypes = []DesignType{
	DesignTypeSocialMedia,
	DesignTypePrint,
	DesignTypeThumbnail,
	DesignTypeLogo,
}

// IsValid reports whether the value matches the canonical design type enum.
func (d DesignType) IsValid() bool {
	for _, candidate := range validDesignTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDesignType converts the raw string to DesignType.
func ParseDesignType(value string) (DesignType, error) {
	for _, candidate := range validDesignTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid design type %q", value)
}
