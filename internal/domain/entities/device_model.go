package entities

// DeviceCategory groups device models that can be compared for pricing.
// Models of different categories are never used as estimation sources for each other.
type DeviceCategory string

const (
	DeviceCategoryPhone  DeviceCategory = "phone"
	DeviceCategoryTablet DeviceCategory = "tablet"
	DeviceCategoryOther  DeviceCategory = "other"
)

func (c DeviceCategory) Valid() bool {
	switch c {
	case DeviceCategoryPhone, DeviceCategoryTablet, DeviceCategoryOther:
		return true
	}
	return false
}

// Brand is a device manufacturer. Primary marks a focus brand whose models may be used
// as cross-brand estimation sources when that pool is restricted.
type Brand struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Primary bool   `json:"primary"`
}

// DeviceModel is a catalog device.
//
// Domain notes:
//   - TierLevel (higher = more premium) and ReleaseYear/ReleaseMonth are similarity
//     features only; two models may share both.
//   - ReleaseMonth is 0 when unknown.
//   - Active only affects catalog browsing. Inactive models keep their pricing history
//     and remain valid estimation targets and sources.
type DeviceModel struct {
	ID           uint           `json:"id"`
	Brand        Brand          `json:"brand"`
	Name         string         `json:"name"`
	TierLevel    int            `json:"tier_level"`
	ReleaseYear  int            `json:"release_year"`
	ReleaseMonth int            `json:"release_month,omitempty"`
	Category     DeviceCategory `json:"category"`
	Active       bool           `json:"active"`
}

func (m DeviceModel) HasReleaseMonth() bool {
	return m.ReleaseMonth >= 1 && m.ReleaseMonth <= 12
}
