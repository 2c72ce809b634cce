package service

import (
	"sort"

	"github.com/stayhub/hotel-booking-backend/internal/model"
)

// uniqueIDs drops duplicates and keeps first-seen order.
func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// difference returns the ids in want that are not in have.
func difference(want, have []int) []int {
	skip := make(map[int]struct{}, len(have))
	for _, id := range have {
		skip[id] = struct{}{}
	}
	var out []int
	for _, id := range want {
		if _, ok := skip[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func sortRolesByName(roles []model.Role) {
	sort.SliceStable(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
}

func sortPermissionsByName(permissions []model.Permission) {
	sort.SliceStable(permissions, func(i, j int) bool { return permissions[i].Name < permissions[j].Name })
}
