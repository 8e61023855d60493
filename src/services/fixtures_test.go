package services

import (
	"testing"

	"github.com/jsench/Project-Wheatley/src/db/dbtest"
	"github.com/jsench/Project-Wheatley/src/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

// census holds the records created by seedCensus, keyed by short names.
type census struct {
	locations map[string]*models.LocationModel
	titles    map[string]*models.TitleModel
	issues    map[string]*models.IssueModel
	copies    map[string]*models.CopyModel
}

// seedCensus builds a small census:
//
//	c1 "123.4"  verified   Hamlet 1600         Oxford Library  owners Elizabeth Smith, John Smith
//	c2 "10"     unverified Tempest 1640-1660   Folger          owner Elizabeth Jones, sammelband
//	c3 "11"     verified   1 Henry IV 1590-99  British Library fragment
//	c4 "12"     ghost      Hamlet 1600         Folger
//	c5 "13"     verified   Comedies 1623       British Library
//	c6 "14"     unverified 1 Henry IV 1598     no location
func seedCensus(t *testing.T) (*gorm.DB, *census) {
	t.Helper()
	gdb := dbtest.Open(t)
	c := &census{
		locations: map[string]*models.LocationModel{},
		titles:    map[string]*models.TitleModel{},
		issues:    map[string]*models.IssueModel{},
		copies:    map[string]*models.CopyModel{},
	}
	create := func(v interface{}) {
		require.NoError(t, gdb.Create(v).Error)
	}

	for key, name := range map[string]string{
		"oxford":  "Oxford Library",
		"folger":  "The Folger Shakespeare Library",
		"british": "British Library",
	} {
		loc := &models.LocationModel{Name: name}
		create(loc)
		c.locations[key] = loc
	}

	female, male := models.GenderFemale, models.GenderMale
	c17, c18, c19 := models.CenturyPre1700, models.Century18th, models.Century19th
	owners := map[string]*models.ProvenanceNameModel{
		"esmith": {Name: "Elizabeth Smith", Gender: &female, StartCentury: &c17},
		"ejones": {Name: "Elizabeth Jones", Gender: &female, StartCentury: &c19},
		"jsmith": {Name: "John Smith", Gender: &male, StartCentury: &c18},
	}
	for _, o := range owners {
		create(o)
	}

	for key, title := range map[string]string{
		"hamlet":   "Hamlet",
		"henry":    "1 Henry IV",
		"tempest":  "The Tempest",
		"comedies": "Comedies, Histories, and Tragedies",
	} {
		tm := &models.TitleModel{Title: title}
		create(tm)
		c.titles[key] = tm
	}

	edition := func(title string) int {
		ed := &models.EditionModel{TitleID: c.titles[title].ID, EditionNumber: ptr("1")}
		create(ed)
		return ed.ID
	}
	hamletEd, henryEd, tempestEd, comediesEd := edition("hamlet"), edition("henry"), edition("tempest"), edition("comedies")

	issues := []struct {
		key        string
		edition    int
		year       string
		start, end int
		stc        string
	}{
		{"hamlet1600", hamletEd, "1600", 1600, 1600, "STC 22275"},
		{"tempest", tempestEd, "1640-1660", 1640, 1660, "Wing S2913"},
		{"henry1590s", henryEd, "1590-1599", 1590, 1599, "STC 22279"},
		{"henry1598", henryEd, "1598", 1598, 1598, "STC 22280"},
		{"comedies", comediesEd, "1623", 1623, 1623, "STC 22273"},
	}
	for _, is := range issues {
		im := &models.IssueModel{EditionID: is.edition, Year: is.year, StartDate: is.start, EndDate: is.end, STCWing: ptr(is.stc)}
		create(im)
		c.issues[is.key] = im
	}

	copies := []struct {
		key          string
		number       string
		verification models.Verification
		issue        string
		location     string
		mutate       func(*models.CopyModel)
	}{
		{"c1", "123.4", models.VerificationVerified, "hamlet1600", "oxford", func(cp *models.CopyModel) {
			cp.Marginalia = ptr("Annotated in a contemporary hand")
			cp.Height = ptr(18.5)
		}},
		{"c2", "10", models.VerificationUnverified, "tempest", "folger", func(cp *models.CopyModel) {
			cp.Binding = ptr("Contemporary calf")
			cp.InEarlySammelband = true
			cp.Height = ptr(20.0)
		}},
		{"c3", "11", models.VerificationVerified, "henry1590s", "british", func(cp *models.CopyModel) {
			cp.Fragment = true
			cp.DigitalFacsimileURL = ptr("https://example.org/facsimile/11")
			cp.FromESTC = true
		}},
		{"c4", "12", models.VerificationFalse, "hamlet1600", "folger", func(cp *models.CopyModel) {
			cp.Binding = ptr("Calf, rebacked")
			cp.Marginalia = ptr("Ghost marginalia")
		}},
		{"c5", "13", models.VerificationVerified, "comedies", "british", nil},
		{"c6", "14", models.VerificationUnverified, "henry1598", "", nil},
	}
	for _, cp := range copies {
		m := &models.CopyModel{
			CatalogNumber: cp.number,
			Verification:  cp.verification,
			IssueID:       &c.issues[cp.issue].ID,
		}
		if cp.location != "" {
			m.LocationID = &c.locations[cp.location].ID
		}
		if cp.mutate != nil {
			cp.mutate(m)
		}
		create(m)
		c.copies[cp.key] = m
	}

	link := func(copyKey, owner string) {
		create(&models.ProvenanceRecordModel{CopyID: c.copies[copyKey].ID, ProvenanceNameID: owners[owner].ID})
	}
	link("c1", "esmith")
	link("c1", "jsmith")
	link("c2", "ejones")

	return gdb, c
}

func (c *census) ids(keys ...string) []int {
	out := make([]int, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.copies[k].ID)
	}
	return out
}
