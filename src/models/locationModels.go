package models

type LocationModel struct {
	ID         int         `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string      `json:"name" gorm:"column:name;type:varchar(255);not null;index"`
	RegionCode *string     `json:"regionCode,omitempty" gorm:"column:region_code;type:varchar(100)"`
	Latitude   *float64    `json:"latitude,omitempty" gorm:"column:latitude"`
	Longitude  *float64    `json:"longitude,omitempty" gorm:"column:longitude"`
	Copies     []CopyModel `json:"-" gorm:"foreignKey:LocationID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}
