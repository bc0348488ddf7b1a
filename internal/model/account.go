package model

// Account pairs a user-assigned name with a saved credential record set.
// Names are unique within a store, case-sensitive and non-empty.
type Account struct {
	Name    string
	Records RecordSet
}
