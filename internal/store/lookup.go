package store

import (
	"time"

	"gorm.io/gorm"

	"tms-api/internal/cache"
	"tms-api/internal/models"
)

// nameTTL bounds how stale a resolved display name may be.
const nameTTL = 30 * time.Second

// NameResolver resolves reference-entity ids (stakeholders, departments, team
// members) to display names, caching results so building grid rows does not
// hammer the lookup tables.
type NameResolver struct {
	db    *gorm.DB
	names cache.Cache[string, string]
}

// NewNameResolver constructs a resolver over db.
func NewNameResolver(db *gorm.DB) *NameResolver {
	return &NameResolver{
		db:    db,
		names: cache.NewTTLCache[string, string](),
	}
}

func (r *NameResolver) resolve(kind, id string, query func() (string, error)) string {
	if id == "" {
		return ""
	}
	key := kind + ":" + id
	if name, ok := r.names.Get(key); ok {
		return name
	}
	name, err := query()
	if err != nil {
		// unknown id renders as empty; do not cache the miss
		return ""
	}
	r.names.Set(key, name, nameTTL)
	return name
}

// StakeholderName returns the stakeholder's display name, or "".
func (r *NameResolver) StakeholderName(id string) string {
	return r.resolve("stakeholder", id, func() (string, error) {
		var s models.Stakeholder
		if err := r.db.Select("name").Where("id = ?", id).First(&s).Error; err != nil {
			return "", err
		}
		return s.Name, nil
	})
}

// DepartmentName returns the department's display name, or "".
func (r *NameResolver) DepartmentName(id string) string {
	return r.resolve("department", id, func() (string, error) {
		var d models.Department
		if err := r.db.Select("name").Where("id = ?", id).First(&d).Error; err != nil {
			return "", err
		}
		return d.Name, nil
	})
}

// TeamMemberName returns the team member's display name, or "".
func (r *NameResolver) TeamMemberName(id string) string {
	return r.resolve("member", id, func() (string, error) {
		var m models.TeamMember
		if err := r.db.Select("name").Where("id = ?", id).First(&m).Error; err != nil {
			return "", err
		}
		return m.Name, nil
	})
}
