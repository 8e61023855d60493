package models

type TitleModel struct {
	ID        int            `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string         `json:"title" gorm:"column:title;type:varchar(255);not null;uniqueIndex"`
	Notes     *string        `json:"notes,omitempty" gorm:"column:notes;type:text"`
	ImagePath *string        `json:"imagePath,omitempty" gorm:"column:image_path;type:varchar(255)"`
	Editions  []EditionModel `json:"editions,omitempty" gorm:"foreignKey:TitleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type EditionModel struct {
	ID            int          `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID       int          `json:"titleId" gorm:"column:title_id;not null;index"`
	Title         *TitleModel  `json:"title,omitempty" gorm:"foreignKey:TitleID;references:ID"`
	EditionNumber *string      `json:"editionNumber,omitempty" gorm:"column:edition_number;type:varchar(20)"`
	EditionFormat *string      `json:"editionFormat,omitempty" gorm:"column:edition_format;type:varchar(10)"`
	Notes         *string      `json:"notes,omitempty" gorm:"column:notes;type:text"`
	Issues        []IssueModel `json:"issues,omitempty" gorm:"foreignKey:EditionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// IssueModel is one print run of an edition. Year is the label shown to
// readers; StartDate and EndDate bound the (possibly fuzzy) dating.
type IssueModel struct {
	ID        int           `json:"id" gorm:"primaryKey;autoIncrement"`
	EditionID int           `json:"editionId" gorm:"column:edition_id;not null;index"`
	Edition   *EditionModel `json:"edition,omitempty" gorm:"foreignKey:EditionID;references:ID"`
	Year      string        `json:"year" gorm:"column:year;type:varchar(20);not null"`
	StartDate int           `json:"startDate" gorm:"column:start_date;not null;default:0"`
	EndDate   int           `json:"endDate" gorm:"column:end_date;not null;default:0"`
	STCWing   *string       `json:"stcWing,omitempty" gorm:"column:stc_wing;type:varchar(255)"`
	ESTC      *string       `json:"estc,omitempty" gorm:"column:estc;type:varchar(255)"`
	Notes     *string       `json:"notes,omitempty" gorm:"column:notes;type:text"`
	Copies    []CopyModel   `json:"-" gorm:"foreignKey:IssueID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
