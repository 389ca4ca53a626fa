package models

// Department groups doctors.
type Department struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Desc string `json:"desc" gorm:"column:description;type:text"`
}
