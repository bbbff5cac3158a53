package graph

const (
	// Two-character prefixes of IMDb codes ("nm0000001", "tt0000001")
	PersonPrefix = "nm"
	GroupPrefix  = "tt"
	prefixLen    = 2

	// Field positions in the entities source
	colPersonCode  = 0
	colPersonName  = 1
	colBirthYear   = 2
	colProfessions = 4

	// Field positions in the relations source
	colGroupCode  = 0
	colMemberCode = 2

	// How many records are read between context checks
	cancelCheckInterval = 1 << 16
)
