package commission

type Category string

const (
	CategoryDefault Category = "default"
	CategoryStay    Category = "stay"
	CategoryVehicle Category = "vehicle"
	CategoryLuxury  Category = "luxury"
	// CategoryGuestService keys the guest-facing service fee rate.
	CategoryGuestService Category = "guest_service"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryDefault, CategoryStay, CategoryVehicle, CategoryLuxury, CategoryGuestService:
		return true
	default:
		return false
	}
}

// IsListingCategory reports whether listings can be filed under c.
func (c Category) IsListingCategory() bool {
	switch c {
	case CategoryStay, CategoryVehicle, CategoryLuxury:
		return true
	default:
		return false
	}
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}
