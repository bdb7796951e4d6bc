package service

import (
	"context"
	"sort"
	"strings"

	"eligue-assistance/internal/models"
	"eligue-assistance/internal/repository"
)

// ReportService derives the technician leaderboard. It is a pure
// projection over users and tickets, recomputed on demand.
type ReportService struct {
	users   repository.UserRepository
	tickets repository.TicketRepository
}

func NewReportService(users repository.UserRepository, tickets repository.TicketRepository) *ReportService {
	return &ReportService{users: users, tickets: tickets}
}

// TechnicianSummary ranks technicians by closed tickets desc, then total
// assigned desc, stable for further ties. Equal (closed, total) pairs
// share a rank; the next distinct pair takes its 1-based row index, so
// the sequence reads 1,2,2,4 rather than 1,2,2,3. The q filter applies
// after ranking: a filtered row keeps the rank it holds in the full
// leaderboard.
func (s *ReportService) TechnicianSummary(ctx context.Context, q string) ([]models.TechnicianRank, error) {
	techs, err := s.users.List(ctx, "", models.RoleTechnician)
	if err != nil {
		return nil, err
	}

	rows := make([]models.TechnicianRank, 0, len(techs))
	for _, tech := range techs {
		assigned, err := s.tickets.List(ctx, repository.TicketFilter{AssigneeID: tech.ID})
		if err != nil {
			return nil, err
		}
		row := models.TechnicianRank{
			ID:            tech.ID,
			Login:         tech.Login,
			FullName:      tech.FullName,
			TotalAssigned: len(assigned),
		}
		for _, t := range assigned {
			switch t.Status {
			case models.StatusInProgress:
				row.InProgress++
			case models.StatusClosed:
				row.Closed++
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Closed != rows[j].Closed {
			return rows[i].Closed > rows[j].Closed
		}
		return rows[i].TotalAssigned > rows[j].TotalAssigned
	})

	rank, lastClosed, lastTotal := 0, -1, -1
	for i := range rows {
		if rows[i].Closed != lastClosed || rows[i].TotalAssigned != lastTotal {
			rank = i + 1
			lastClosed = rows[i].Closed
			lastTotal = rows[i].TotalAssigned
		}
		rows[i].Rank = rank
	}

	if q == "" {
		return rows, nil
	}
	q = strings.ToLower(q)
	filtered := rows[:0:0]
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.FullName), q) ||
			strings.Contains(strings.ToLower(row.Login), q) {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}
