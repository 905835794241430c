package http

import "github.com/error7buddy/KiLagbe.Com/internal/ads/domain"

type createAdBody struct {
	UserID      string   `json:"userId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	BHK         string   `json:"bhk"`
	HouseNo     string   `json:"houseNo"`
	Area        string   `json:"area"`
	District    string   `json:"district"`
	Phone       string   `json:"phone"`
	Images      []string `json:"images"`
}

func (b createAdBody) toRequest() domain.CreateAdRequest {
	return domain.CreateAdRequest{
		UserID:      b.UserID,
		Title:       b.Title,
		Description: b.Description,
		BHK:         b.BHK,
		Address: domain.Address{
			HouseNo:  b.HouseNo,
			Area:     b.Area,
			District: b.District,
			Phone:    b.Phone,
		},
		Images: b.Images,
	}
}

type updateAdBody struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	BHK         *string  `json:"bhk"`
	HouseNo     *string  `json:"houseNo"`
	Area        *string  `json:"area"`
	District    *string  `json:"district"`
	Phone       *string  `json:"phone"`
	Images      []string `json:"images"`
}

func (b updateAdBody) toRequest() domain.UpdateAdRequest {
	return domain.UpdateAdRequest{
		Title:       b.Title,
		Description: b.Description,
		BHK:         b.BHK,
		HouseNo:     b.HouseNo,
		Area:        b.Area,
		District:    b.District,
		Phone:       b.Phone,
		Images:      b.Images,
	}
}
