package entity

// Activity is a catalog entry shared by every workout plan.
type Activity struct {
	Base
	Name           string   `gorm:"size:255;not null;index" json:"name"`
	Description    string   `gorm:"type:text" json:"description"`
	CaloriesBurned *float64 `json:"calories_burned"`
	ImageURL       *string  `gorm:"type:text" json:"image"`
}

type Tag struct {
	Base
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

type ExpertSpecialization struct {
	Base
	Name        string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}
