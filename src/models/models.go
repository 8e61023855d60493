package models

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&SessionModel{},
		&LocationModel{},
		&ProvenanceNameModel{},
		&TitleModel{},
		&EditionModel{},
		&IssueModel{},
		&CopyModel{},
		&ProvenanceRecordModel{},
		&StaticPageTextModel{},
	}
}
