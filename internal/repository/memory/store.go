// Package memory holds every collection for the lifetime of the process.
// There is deliberately no persistence behind it; the repositories exist so
// the rest of the code talks to the same interfaces a database-backed
// driver would implement.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"eligue-assistance/internal/models"
)

type userRecord struct {
	user         models.User
	passwordHash string
}

// Store owns the shared state. The HTTP server is concurrent, so all
// access goes through mu; every mutation is a single atomic update under
// the write lock.
type Store struct {
	mu       sync.RWMutex
	users    []userRecord
	tickets  []models.Ticket
	invoices []models.Invoice
	apps     []string
}

func New(applications []string) *Store {
	s := &Store{}
	seen := make(map[string]struct{}, len(applications))
	for _, a := range applications {
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		s.apps = append(s.apps, a)
	}
	sort.Strings(s.apps)
	return s
}

// serialNumber formats the human-facing ticket label for the n-th ticket.
func serialNumber(n int) string {
	return fmt.Sprintf("TI-%04d", n)
}

func cloneUser(u models.User) models.User {
	out := u
	out.Applications = append([]string(nil), u.Applications...)
	return out
}

func cloneTicket(t models.Ticket) models.Ticket {
	out := t
	out.Attachments = append([]string(nil), t.Attachments...)
	if t.AssignedTo != nil {
		snap := *t.AssignedTo
		out.AssignedTo = &snap
	}
	return out
}
