package github

import (
	"strings"

	"github.com/m-zajac/orgcontributors/internal/app"
)

type reposResponse []reposResponseItem

type reposResponseItem struct {
	Name  string                  `json:"name"`
	Owner *reposResponseItemOwner `json:"owner"`
}

type reposResponseItemOwner struct {
	Login string `json:"login"`
}

func (r reposResponse) ToRepositories() []app.Repository {
	rs := make([]app.Repository, 0, len(r))
	for _, i := range r {
		repo := app.Repository{
			Name: i.Name,
		}
		if i.Owner != nil {
			repo.Owner = &app.Owner{
				Login: i.Owner.Login,
			}
		}
		rs = append(rs, repo)
	}

	return rs
}

type contributorsResponse []struct {
	Login         string `json:"login"`
	Contributions uint   `json:"contributions"`
}

func (r contributorsResponse) ToContributors() []app.ContributorRecord {
	cs := make([]app.ContributorRecord, 0, len(r))
	for _, el := range r {
		cs = append(cs, app.ContributorRecord{
			Login:         el.Login,
			Contributions: el.Contributions,
		})
	}

	return cs
}

// hasNextPage checks if github Link header points to the next page, eg.:
// <https://api.github.com/organizations/1/repos?page=2>; rel="next", <https://api.github.com/organizations/1/repos?page=5>; rel="last"
func hasNextPage(linkHeader string) bool {
	for _, link := range strings.Split(linkHeader, ",") {
		parts := strings.Split(link, ";")
		if len(parts) < 2 {
			continue
		}
		for _, p := range parts[1:] {
			if strings.TrimSpace(p) == `rel="next"` {
				return true
			}
		}
	}

	return false
}
