package models

// TechnicianRank is one row of the technician leaderboard. Rank carries
// ties: technicians with equal (closed, totalAssigned) share a rank, and
// the next distinct pair takes its 1-based row index (1,2,2,4 style).
type TechnicianRank struct {
	Rank          int    `json:"rank"`
	ID            string `json:"id"`
	Login         string `json:"login"`
	FullName      string `json:"fullName"`
	TotalAssigned int    `json:"totalAssigned"`
	InProgress    int    `json:"inProgress"`
	Closed        int    `json:"closed"`
}
