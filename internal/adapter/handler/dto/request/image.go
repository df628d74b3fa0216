package request

type UploadImageRequest struct {
	AltText   string `form:"alt_text" binding:"omitempty,max=500"`
	SortOrder int    `form:"sort_order" binding:"omitempty,min=0"`
	IsPrimary bool   `form:"is_primary"`
}

type UpdateImageRequest struct {
	AltText   *string `json:"alt_text" binding:"omitempty,max=500"`
	SortOrder *int    `json:"sort_order" binding:"omitempty,min=0"`
	IsPrimary *bool   `json:"is_primary"`
}
