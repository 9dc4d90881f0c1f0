package aggregate

import "procureflow-api-server/internal/models"

// Series is a ready-to-plot categorical breakdown: one count per category,
// categories in first-seen order.
type Series struct {
	Categories []string `json:"categories"`
	Counts     []int    `json:"counts"`
}

const unassignedDepartment = "Unassigned"

func departmentSeries(departments []string) Series {
	s := Series{Categories: []string{}, Counts: []int{}}
	index := map[string]int{}
	for _, dept := range departments {
		if dept == "" {
			dept = unassignedDepartment
		}
		i, seen := index[dept]
		if !seen {
			i = len(s.Categories)
			index[dept] = i
			s.Categories = append(s.Categories, dept)
			s.Counts = append(s.Counts, 0)
		}
		s.Counts[i]++
	}
	return s
}

func RequestsByDepartment(requests []models.ProcurementRequest) Series {
	departments := make([]string, len(requests))
	for i, r := range requests {
		departments[i] = r.Department
	}
	return departmentSeries(departments)
}

func OrdersByDepartment(orders []models.Order) Series {
	departments := make([]string, len(orders))
	for i, o := range orders {
		departments[i] = o.Department
	}
	return departmentSeries(departments)
}
