package models

import (
	"time"
)

// Category is the closed set of place categories. Values are validated at the
// boundary; an unknown value never reaches storage.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryHiking        Category = "Hiking"
	CategoryCultural      Category = "Cultural"
	CategoryNature        Category = "Nature"
	CategoryEntertainment Category = "Entertainment"
	CategoryHistorical    Category = "Historical"
)

func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryHiking,
		CategoryCultural,
		CategoryNature,
		CategoryEntertainment,
		CategoryHistorical,
	}
}

func (c Category) Valid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

// WeatherSuitability tags a place with the weather it is best visited in.
type WeatherSuitability string

const (
	WeatherSunny      WeatherSuitability = "Sunny"
	WeatherRainy      WeatherSuitability = "Rainy"
	WeatherCloudy     WeatherSuitability = "Cloudy"
	WeatherAllWeather WeatherSuitability = "All Weather"
)

func WeatherSuitabilities() []WeatherSuitability {
	return []WeatherSuitability{WeatherSunny, WeatherRainy, WeatherCloudy, WeatherAllWeather}
}

func (w WeatherSuitability) Valid() bool {
	for _, v := range WeatherSuitabilities() {
		if w == v {
			return true
		}
	}
	return false
}

// Place is a point of interest. AverageRating and TotalVisits are denormalized:
// the average is folded forward on every rating submission and is never
// recomputed when a contribution is deleted.
type Place struct {
	ID                 uint               `json:"id" gorm:"primaryKey"`
	Name               string             `json:"name" gorm:"size:200;not null" validate:"required,max=200"`
	Description        string             `json:"description" gorm:"type:text;not null" validate:"required"`
	Latitude           float64            `json:"latitude" validate:"min=-90,max=90"`
	Longitude          float64            `json:"longitude" validate:"min=-180,max=180"`
	Category           Category           `json:"category" gorm:"size:32;not null;index"`
	WeatherSuitability WeatherSuitability `json:"weather_suitability" gorm:"size:32;not null;index"`
	AverageRating      float64            `json:"average_rating" gorm:"not null;default:0"`
	TotalVisits        int64              `json:"total_visits" gorm:"not null;default:0"`
	QRCodeFile         string             `json:"qr_code_file,omitempty" gorm:"size:100"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`

	Photos  []Photo  `json:"photos,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Reviews []Review `json:"reviews,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// PlaceFilter narrows List results. Zero values mean "no filter".
type PlaceFilter struct {
	Category Category
	Weather  WeatherSuitability
}

// RatingAggregate is the denormalized pair maintained by rating submissions.
type RatingAggregate struct {
	AverageRating float64 `json:"average_rating"`
	TotalVisits   int64   `json:"total_visits"`
}
