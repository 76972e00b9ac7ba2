package repositories

import (
	"strings"

	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/domain"
)

var profileFields = []string{
	"id", "full_name", "email", "role", "is_active",
	"expertise", "interests", "goals", "years_of_experience",
	"created_at", "updated_at",
}

// profileColumns qualifies the profile columns with a table alias.
func profileColumns(alias string) []string {
	cols := make([]string, len(profileFields))
	for i, f := range profileFields {
		cols[i] = alias + "." + f
	}
	return cols
}

func joinProfileColumns(alias string) string {
	return strings.Join(profileColumns(alias), ", ")
}

// profileRow collects scan targets for one profile; role is nullable in storage.
type profileRow struct {
	p    models.Profile
	role *string
}

func (r *profileRow) dest() []any {
	return []any{
		&r.p.ID, &r.p.FullName, &r.p.Email, &r.role, &r.p.IsActive,
		&r.p.Expertise, &r.p.Interests, &r.p.Goals, &r.p.YearsOfExperience,
		&r.p.CreatedAt, &r.p.UpdatedAt,
	}
}

func (r *profileRow) profile() *models.Profile {
	p := r.p
	if r.role != nil {
		p.Role = domain.NormalizeRole(*r.role)
	}
	return &p
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func parseStatus(s string) domain.RelationshipStatus {
	status, err := domain.ParseRelationshipStatus(s)
	if err != nil {
		// CHECK constraints keep unknown values out; treat anything else as pending.
		return domain.StatusPending
	}
	return status
}

func roleValue(r domain.Role) any {
	if !r.IsSet() {
		return nil
	}
	return r.String()
}
