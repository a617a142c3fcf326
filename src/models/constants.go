package models

// Gender options accepted at registration
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Genders lists the registration options in display order
var Genders = []string{GenderMale, GenderFemale, GenderOther}

// NavPage identifies one of the dashboard pages
type NavPage string

const (
	// PageRegisterPatient is the landing page after login
	PageRegisterPatient NavPage = "Register Patient"
	// PagePredict runs the classifier for the selected patient
	PagePredict NavPage = "Predict"
	// PageMetrics shows the aggregate chart
	PageMetrics NavPage = "Metrics"
)

// NavPages lists the pages in sidebar order
var NavPages = []NavPage{PageRegisterPatient, PagePredict, PageMetrics}

// IsValid reports whether p names a known page
func (p NavPage) IsValid() bool {
	for _, page := range NavPages {
		if p == page {
			return true
		}
	}
	return false
}

// Age bounds enforced on registration and on the predict form
const (
	MinAge = 1
	MaxAge = 120
)
