package domain

type MenuAddOn struct {
	ID    string
	Name  string
	Price Money
}

// MenuItem is immutable catalog data. AddOns is always present, possibly empty.
type MenuItem struct {
	ID          string
	Name        string
	Description string
	Price       Money
	Image       string
	AddOns      []MenuAddOn
}

func (i MenuItem) AddOn(id string) (MenuAddOn, bool) {
	for _, a := range i.AddOns {
		if a.ID == id {
			return a, true
		}
	}
	return MenuAddOn{}, false
}
