package models

// CountryCount is one row of a per-country aggregate, ordered by count
// descending. Country strings are compared exactly as stored; "United States"
// and "US" count separately.
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// AggregateSnapshot is the full analytics view assembled from the store.
// Empty slices and zero totals are valid when nothing has been recorded yet.
type AggregateSnapshot struct {
	PhoneCountryCounts []CountryCount `json:"phone_country_counts"`
	IPCountryCounts    []CountryCount `json:"ip_country_counts"`
	TotalPhoneCount    int            `json:"total_phone_count"`
	TotalIPCount       int            `json:"total_ip_count"`
	RecentEvents       []SearchEvent  `json:"recent_events"`
}
