package domain

// Salon is a tenant of the booking platform.
type Salon struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	City       string    `json:"city,omitempty"`
	Address    string    `json:"address,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	WhatsApp   string    `json:"whatsapp,omitempty"`
	PlanType   PlanType  `json:"plan_type"`
	BrandColor string    `json:"brand_color,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  Timestamp `json:"created_at"`
	UpdatedAt  Timestamp `json:"updated_at"`
}

// DefaultBrandColor is shown when a salon has no brand color of its own.
const DefaultBrandColor = "#E39B34"

// Contact returns the number shown next to the salon name in lists.
func (s Salon) Contact() string {
	if s.WhatsApp != "" {
		return s.WhatsApp
	}
	return s.Phone
}

// Owner is the salon_user account that logs into a salon's own dashboard.
// The console only ever reads it alongside its salon.
type Owner struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt Timestamp `json:"created_at"`
}

// Stats is the platform-wide snapshot shown on the dashboard.
// Missing fields decode as zero; the server is authoritative.
type Stats struct {
	TotalSalons       int     `json:"totalSalons"`
	ActiveSalons      int     `json:"activeSalons"`
	PremiumSalons     int     `json:"premiumSalons"`
	ActiveBookings    int     `json:"activeBookings"`
	MonthlyRevenueSAR float64 `json:"monthlyRevenueSAR"`
	OpenComplaints    int     `json:"openComplaints"`
}
