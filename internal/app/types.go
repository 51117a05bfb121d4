package app

// MaxPageSize is the biggest page github allows for listing endpoints.
const MaxPageSize = 100

// RepositoryRef identifies single repository.
type RepositoryRef struct {
	Owner string
	Name  string
}

// Owner entity
type Owner struct {
	Login string
}

// Repository entity, as returned by github.
// Owner can be nil when github data is incomplete.
type Repository struct {
	Name  string
	Owner *Owner
}

// ContributorRecord entity - contributor of a single repository.
type ContributorRecord struct {
	Login         string
	Contributions uint
}

// RankedContributor entity - single element of aggregation result.
type RankedContributor struct {
	Name          string
	Contributions uint
}

// Page is a single chunk of paginated listing.
type Page[T any] struct {
	Items   []T
	HasNext bool
}
