package domain

import "time"

// DefaultFreeAdLimit is how many ads an owner may hold before creation is blocked.
const DefaultFreeAdLimit = 2

type Address struct {
	HouseNo  string `json:"houseNo"`
	Area     string `json:"area"`
	District string `json:"district"`
	Phone    string `json:"phone"`
}

// Ad is a housing advertisement. UserID is the owner's external identity id.
type Ad struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	BHK         string    `json:"bhk"`
	Address     Address   `json:"address"`
	Images      []string  `json:"images"`
	IsPaid      bool      `json:"isPaid"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateAdRequest represents data needed to create a new ad
type CreateAdRequest struct {
	UserID      string   `json:"userId" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	BHK         string   `json:"bhk"`
	Address     Address  `json:"address"`
	Images      []string `json:"images"`
}

// UpdateAdRequest is a partial update. Nil fields keep their stored value and
// Images replaces the stored list only when non-empty.
type UpdateAdRequest struct {
	Title       *string
	Description *string
	BHK         *string
	HouseNo     *string
	Area        *string
	District    *string
	Phone       *string
	Images      []string
}

// Apply copies the supplied fields onto ad and bumps UpdatedAt.
func (p UpdateAdRequest) Apply(ad *Ad, now time.Time) {
	setIf(&ad.Title, p.Title)
	setIf(&ad.Description, p.Description)
	setIf(&ad.BHK, p.BHK)
	setIf(&ad.Address.HouseNo, p.HouseNo)
	setIf(&ad.Address.Area, p.Area)
	setIf(&ad.Address.District, p.District)
	setIf(&ad.Address.Phone, p.Phone)
	if len(p.Images) > 0 {
		ad.Images = append([]string(nil), p.Images...)
	}
	ad.UpdatedAt = now
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
