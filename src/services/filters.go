package services

import (
	"strconv"
	"strings"

	"github.com/jsench/Project-Wheatley/src/dtos"
	"github.com/jsench/Project-Wheatley/src/models"
	"gorm.io/gorm"
)

// Search fields accepted by the filter resolver.
const (
	FieldKeyword        = "keyword"
	FieldLocation       = "location"
	FieldYear           = "year"
	FieldProvenanceName = "provenance_name"
	FieldCensusID       = "census_id"
	FieldSTC            = "stc"
	FieldUnverified     = "unverified"
	FieldGhosts         = "ghosts"
	FieldCollection     = "collection"
)

var fieldAliases = map[string]string{
	"catalog_id": FieldCensusID,
	"wc":         FieldCensusID,
	"cen":        FieldCensusID,
	"identifier": FieldSTC,
}

// NormalizeField lowercases a field name and resolves its aliases.
func NormalizeField(field string) string {
	field = strings.ToLower(strings.TrimSpace(field))
	if canonical, ok := fieldAliases[field]; ok {
		return canonical
	}
	return field
}

type scope = func(*gorm.DB) *gorm.DB

// copyFilter is a resolved (field, value) pair.
type copyFilter struct {
	apply         scope
	displayField  string
	displayValue  string
	includeGhosts bool
}

const likeClause = " LIKE ? ESCAPE '!'"

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likePattern builds a case-insensitive substring pattern for value.
func likePattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(value))) + "%"
}

func ilike(column string) string {
	return "LOWER(" + column + ")" + likeClause
}

func subquery(tx *gorm.DB) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true})
}

// provenanceCopyIDs selects the ids of copies with an owner matching query.
func provenanceCopyIDs(tx *gorm.DB, query string, args ...interface{}) *gorm.DB {
	return subquery(tx).
		Table("provenance_record_models AS pr").
		Select("pr.copy_id").
		Joins("JOIN provenance_name_models pn ON pn.id = pr.provenance_name_id").
		Where(query, args...)
}

func issueIDs(tx *gorm.DB, query string, args ...interface{}) *gorm.DB {
	return subquery(tx).Table("issue_models").Select("id").Where(query, args...)
}

func statusStrings(statuses ...models.Verification) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// canonicalCopies keeps verified and unverified copies.
func canonicalCopies(tx *gorm.DB) *gorm.DB {
	return tx.Where("copy_models.verification IN ?", statusStrings(models.CanonicalVerifications...))
}

// excludeTitles drops copies of the given titles. Copies without an issue
// are kept.
func excludeTitles(titles []string) scope {
	return func(tx *gorm.DB) *gorm.DB {
		if len(titles) == 0 {
			return tx
		}
		excluded := subquery(tx).
			Table("issue_models AS i").
			Select("i.id").
			Joins("JOIN edition_models e ON e.id = i.edition_id").
			Joins("JOIN title_models t ON t.id = e.title_id").
			Where("t.title IN ?", titles)
		return tx.Where("(copy_models.issue_id IS NULL OR copy_models.issue_id NOT IN (?))", excluded)
	}
}

// ParseYearRange accepts "YYYY" or "YYYY-YYYY".
func ParseYearRange(value string) (start, end int, ok bool) {
	value = strings.TrimSpace(value)
	first, second, ranged := strings.Cut(value, "-")
	first, second = strings.TrimSpace(first), strings.TrimSpace(second)
	if !isYear(first) || (ranged && !isYear(second)) {
		return 0, 0, false
	}
	start, _ = strconv.Atoi(first)
	end = start
	if ranged {
		end, _ = strconv.Atoi(second)
	}
	return start, end, true
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// resolveFilter maps a search field and value to a copy filter. ok is false
// for unknown fields, unknown collections and missing values; callers treat
// that as an empty result.
func resolveFilter(field, value string) (copyFilter, bool) {
	value = strings.TrimSpace(value)
	switch NormalizeField(field) {
	case "":
		if value != "" {
			return resolveFilter(FieldKeyword, value)
		}
		return copyFilter{apply: func(tx *gorm.DB) *gorm.DB { return tx }}, true

	case FieldKeyword:
		if value == "" {
			return copyFilter{}, false
		}
		p := likePattern(value)
		return copyFilter{
			displayField: "Keyword Search",
			displayValue: value,
			apply: func(tx *gorm.DB) *gorm.DB {
				return tx.Where(
					"("+ilike("copy_models.marginalia")+
						" OR "+ilike("copy_models.binding")+
						" OR "+ilike("copy_models.backend_notes")+
						" OR "+ilike("copy_models.prov_info")+
						" OR "+ilike("copy_models.bibliography")+
						" OR copy_models.id IN (?))",
					p, p, p, p, p, provenanceCopyIDs(tx, ilike("pn.name"), p),
				)
			},
		}, true

	case FieldYear:
		if value == "" {
			return copyFilter{}, false
		}
		f := copyFilter{displayField: "Year", displayValue: value}
		if start, end, ok := ParseYearRange(value); ok {
			f.apply = func(tx *gorm.DB) *gorm.DB {
				return tx.Where("copy_models.issue_id IN (?)",
					issueIDs(tx, "start_date <= ? AND end_date >= ?", end, start))
			}
		} else {
			f.apply = func(tx *gorm.DB) *gorm.DB {
				return tx.Where("copy_models.issue_id IN (?)",
					issueIDs(tx, ilike("year"), likePattern(value)))
			}
		}
		return f, true

	case FieldLocation:
		if value == "" {
			return copyFilter{}, false
		}
		return copyFilter{
			displayField: "Location",
			displayValue: value,
			apply: func(tx *gorm.DB) *gorm.DB {
				locations := subquery(tx).Table("location_models").Select("id").
					Where(ilike("name"), likePattern(value))
				return tx.Where("copy_models.location_id IN (?)", locations)
			},
		}, true

	case FieldProvenanceName:
		if value == "" {
			return copyFilter{}, false
		}
		return copyFilter{
			displayField: "Provenance Name",
			displayValue: value,
			apply: func(tx *gorm.DB) *gorm.DB {
				return tx.Where("copy_models.id IN (?)",
					provenanceCopyIDs(tx, ilike("pn.name"), likePattern(value)))
			},
		}, true

	case FieldCensusID:
		if value == "" {
			return copyFilter{}, false
		}
		return copyFilter{
			displayField: "Census ID",
			displayValue: value,
			apply: func(tx *gorm.DB) *gorm.DB {
				return tx.Where("copy_models.catalog_number = ?", value)
			},
		}, true

	case FieldSTC:
		if value == "" {
			return copyFilter{}, false
		}
		p := likePattern(value)
		return copyFilter{
			displayField: "STC / Wing",
			displayValue: value,
			apply: func(tx *gorm.DB) *gorm.DB {
				return tx.Where("copy_models.issue_id IN (?)",
					issueIDs(tx, "("+ilike("stc_wing")+" OR "+ilike("estc")+")", p, p))
			},
		}, true

	case FieldUnverified:
		return copyFilter{
			displayField: "Unverified",
			displayValue: "All",
			apply: func(tx *gorm.DB) *gorm.DB {
				return tx.Where("copy_models.verification = ?", string(models.VerificationUnverified))
			},
		}, true

	case FieldGhosts:
		return copyFilter{
			displayField:  "Ghosts",
			displayValue:  "All",
			includeGhosts: true,
			apply: func(tx *gorm.DB) *gorm.DB {
				return tx.Where("copy_models.verification = ?", string(models.VerificationFalse))
			},
		}, true

	case FieldCollection:
		c, ok := LookupCollection(value)
		if !ok {
			return copyFilter{}, false
		}
		return copyFilter{
			displayField: c.Label,
			displayValue: "All",
			apply:        c.apply,
		}, true
	}
	return copyFilter{}, false
}

// Collection is a named, predefined copy filter.
type Collection struct {
	Key       string
	Label     string
	MenuLabel string
	apply     scope
}

var collections = []Collection{
	{
		Key:       "earlyprovenance",
		Label:     "Copies with known early provenance (before 1700)",
		MenuLabel: "With known early provenance (before 1700)",
		apply: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("copy_models.id IN (?)",
				provenanceCopyIDs(tx, "pn.start_century = ?", string(models.CenturyPre1700)))
		},
	},
	{
		Key:       "womanowner",
		Label:     "Copies with a known woman owner",
		MenuLabel: "With a known woman owner",
		apply: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("copy_models.id IN (?)",
				provenanceCopyIDs(tx, "pn.gender = ?", string(models.GenderFemale)))
		},
	},
	{
		Key:       "earlywomanowner",
		Label:     "Copies with a known woman owner before 1800",
		MenuLabel: "With a known woman owner before 1800",
		apply: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("copy_models.id IN (?)",
				provenanceCopyIDs(tx, "pn.gender = ? AND pn.start_century IN ?",
					string(models.GenderFemale),
					[]string{string(models.CenturyPre1700), string(models.Century18th)}))
		},
	},
	{
		Key:       "marginalia",
		Label:     "Copies that include marginalia",
		MenuLabel: "Includes marginalia",
		apply: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("copy_models.marginalia IS NOT NULL AND copy_models.marginalia <> ''")
		},
	},
	{
		Key:       "earlysammelband",
		Label:     "Copies in an early sammelband",
		MenuLabel: "In an early sammelband",
		apply: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("copy_models.in_early_sammelband = ?", true)
		},
	},
}

var collectionAliases = map[string]string{
	"hasmarginalia":     "marginalia",
	"inearlysammelband": "earlysammelband",
}

// LookupCollection finds a collection by key. Hyphens, underscores and case
// are ignored, so "early-provenance" and "earlyprovenance" are the same.
func LookupCollection(name string) (Collection, bool) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	if alias, ok := collectionAliases[key]; ok {
		key = alias
	}
	for _, c := range collections {
		if c.Key == key {
			return c, true
		}
	}
	return Collection{}, false
}

// CollectionOptions returns the collection menu, optionally narrowed to
// entries whose label or key contains query.
func CollectionOptions(query string) []dtos.CollectionOptionDTO {
	query = strings.ToLower(strings.TrimSpace(query))
	options := make([]dtos.CollectionOptionDTO, 0, len(collections))
	for _, c := range collections {
		if query != "" &&
			!strings.Contains(strings.ToLower(c.MenuLabel), query) &&
			!strings.Contains(c.Key, query) {
			continue
		}
		options = append(options, dtos.CollectionOptionDTO{Label: c.MenuLabel, Value: c.Key})
	}
	return options
}
