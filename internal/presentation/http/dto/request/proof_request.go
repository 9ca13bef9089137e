package request

// UpdateBundleRequest is the payload for patching a proof bundle
type UpdateBundleRequest struct {
	HasAd      *bool   `json:"has_ad"`
	HasPayment *bool   `json:"has_payment"`
	HasCession *bool   `json:"has_cession"`
	Notes      *string `json:"notes"`
}
