package content

import "github.com/verte-zerg/tuifolio/internal/model"

// FilterAll shows every project.
const FilterAll = "all"

// Filters returns FilterAll followed by the distinct project categories in
// the order they first appear.
func Filters(projects []model.Project) []string {
	filters := []string{FilterAll}
	seen := map[string]struct{}{FilterAll: {}}
	for _, p := range projects {
		for _, c := range p.Categories {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			filters = append(filters, c)
		}
	}
	return filters
}

// FilterProjects returns the projects in category filter, or all of them for FilterAll.
func FilterProjects(projects []model.Project, filter string) []model.Project {
	if filter == "" || filter == FilterAll {
		return projects
	}
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		for _, c := range p.Categories {
			if c == filter {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
