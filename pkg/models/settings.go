package models

// SystemSettings holds the business identity and the knobs staff can change at runtime
type SystemSettings struct {
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	Currency       string  `json:"currency"`
	TaxRate        float64 `json:"taxRate"`        // percentage, e.g. 10 for 10%
	ReceiptFooter  string  `json:"receiptFooter"`
	StandbyMinutes int     `json:"standbyMinutes"` // 0 disables auto-logout
}

// DefaultSettings returns the settings used before anything has been saved.
func DefaultSettings() SystemSettings {
	return SystemSettings{
		Name:           "Family World Restaurant",
		Address:        "123 Main Street, Accra, Ghana",
		Phone:          "+233 20 000 0000",
		Email:          "info@familyworld.com",
		Currency:       "₵",
		TaxRate:        10,
		ReceiptFooter:  "Thank you for dining with us! See you soon.",
		StandbyMinutes: 15,
	}
}
