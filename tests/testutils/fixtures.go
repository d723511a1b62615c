package testutils

import (
	"time"

	"lookup-tracker/models"
)

func CreateTestPhoneSearch() *models.PhoneSearch {
	return &models.PhoneSearch{
		MaskedNumber:     "41791*****",
		DetectedRegion:   "Switzerland",
		DetectedOperator: "Swisscom",
		RequesterIP:      "203.0.113.7",
		CreatedAt:        time.Now().UTC(),
	}
}

func CreateTestPhoneSearchWithRegion(region string) *models.PhoneSearch {
	search := CreateTestPhoneSearch()
	search.DetectedRegion = region
	return search
}

func CreateTestIPSearch() *models.IPSearch {
	lat := 37.4
	lon := -122.0
	return &models.IPSearch{
		QueriedIP:   "8.8.8.8",
		Country:     "US",
		Region:      "California",
		City:        "Mountain View",
		ISP:         "Google LLC",
		Latitude:    &lat,
		Longitude:   &lon,
		LookupMode:  models.LookupModeCustomIP,
		RequesterIP: "203.0.113.7",
		CreatedAt:   time.Now().UTC(),
	}
}

func CreateTestIPSearchWithCountry(country string) *models.IPSearch {
	search := CreateTestIPSearch()
	search.Country = country
	return search
}
