package models

import "time"

type Verification string

const (
	VerificationUnverified Verification = "U"
	VerificationVerified   Verification = "V"
	VerificationFalse      Verification = "F"
)

// CanonicalVerifications are the statuses of copies believed to exist.
var CanonicalVerifications = []Verification{VerificationVerified, VerificationUnverified}

type CopyModel struct {
	ID                  int                     `json:"id" gorm:"primaryKey;autoIncrement"`
	CatalogNumber       string                  `json:"catalogNumber" gorm:"column:catalog_number;type:varchar(40);not null;uniqueIndex"`
	Verification        Verification            `json:"verification" gorm:"column:verification;type:varchar(1);not null;default:U;index"`
	IssueID             *int                    `json:"issueId" gorm:"column:issue_id;index"`
	Issue               *IssueModel             `json:"issue,omitempty" gorm:"foreignKey:IssueID;references:ID"`
	LocationID          *int                    `json:"locationId" gorm:"column:location_id;index"`
	Location            *LocationModel          `json:"location,omitempty" gorm:"foreignKey:LocationID;references:ID"`
	Shelfmark           *string                 `json:"shelfmark,omitempty" gorm:"column:shelfmark;type:varchar(500)"`
	CatalogueURL        *string                 `json:"catalogueUrl,omitempty" gorm:"column:catalogue_url;type:varchar(500)"`
	DigitalFacsimileURL *string                 `json:"digitalFacsimileUrl,omitempty" gorm:"column:digital_facsimile_url;type:varchar(500)"`
	Fragment            bool                    `json:"fragment" gorm:"column:fragment;not null;default:false"`
	FromESTC            bool                    `json:"fromEstc" gorm:"column:from_estc;not null;default:false"`
	InEarlySammelband   bool                    `json:"inEarlySammelband" gorm:"column:in_early_sammelband;not null;default:false"`
	Height              *float64                `json:"height,omitempty" gorm:"column:height"`
	Width               *float64                `json:"width,omitempty" gorm:"column:width"`
	Binding             *string                 `json:"binding,omitempty" gorm:"column:binding;type:text"`
	Marginalia          *string                 `json:"marginalia,omitempty" gorm:"column:marginalia;type:text"`
	ProvInfo            *string                 `json:"provInfo,omitempty" gorm:"column:prov_info;type:text"`
	Bibliography        *string                 `json:"bibliography,omitempty" gorm:"column:bibliography;type:text"`
	BackendNotes        *string                 `json:"backendNotes,omitempty" gorm:"column:backend_notes;type:text"`
	CreatedByID         *int                    `json:"createdById,omitempty" gorm:"column:created_by_id"`
	VerifiedBy          *string                 `json:"verifiedBy,omitempty" gorm:"column:verified_by;type:varchar(255)"`
	ExaminedBy          *string                 `json:"examinedBy,omitempty" gorm:"column:examined_by;type:varchar(255)"`
	CollatedBy          *string                 `json:"collatedBy,omitempty" gorm:"column:collated_by;type:varchar(255)"`
	ProvenanceRecords   []ProvenanceRecordModel `json:"provenanceRecords,omitempty" gorm:"foreignKey:CopyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt           time.Time               `json:"createdAt"`
	UpdatedAt           time.Time               `json:"updatedAt"`
}

// IsCanonical reports whether the copy is verified or unverified.
func (c *CopyModel) IsCanonical() bool {
	return c.Verification != VerificationFalse
}
