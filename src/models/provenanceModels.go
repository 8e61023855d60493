package models

// Century buckets the period an owner was active in.
type Century string

const (
	CenturyPre1700  Century = "17"
	Century18th     Century = "18"
	Century19th     Century = "19"
	CenturyPost1900 Century = "20"
)

type Gender string

const (
	GenderMale          Gender = "M"
	GenderFemale        Gender = "F"
	GenderUnknown       Gender = "U"
	GenderNotApplicable Gender = "X"
)

type ProvenanceNameModel struct {
	ID           int                     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string                  `json:"name" gorm:"column:name;type:varchar(255);not null;index"`
	Bio          *string                 `json:"bio,omitempty" gorm:"column:bio;type:text"`
	VIAF         *string                 `json:"viaf,omitempty" gorm:"column:viaf;type:varchar(255)"`
	StartCentury *Century                `json:"startCentury,omitempty" gorm:"column:start_century;type:varchar(2)"`
	EndCentury   *Century                `json:"endCentury,omitempty" gorm:"column:end_century;type:varchar(2)"`
	Gender       *Gender                 `json:"gender,omitempty" gorm:"column:gender;type:varchar(1)"`
	Records      []ProvenanceRecordModel `json:"-" gorm:"foreignKey:ProvenanceNameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// ProvenanceRecordModel links a copy to one of its recorded owners.
type ProvenanceRecordModel struct {
	ID               int                  `json:"id" gorm:"primaryKey;autoIncrement"`
	CopyID           int                  `json:"copyId" gorm:"column:copy_id;not null;index"`
	ProvenanceNameID int                  `json:"provenanceNameId" gorm:"column:provenance_name_id;not null;index"`
	ProvenanceName   *ProvenanceNameModel `json:"provenanceName,omitempty" gorm:"foreignKey:ProvenanceNameID;references:ID"`
}
