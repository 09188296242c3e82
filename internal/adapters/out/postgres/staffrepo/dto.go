// Package staffrepo provides read-only repositories over the staff and
// branch reference tables. The assignment engine looks up pharmacists
// here; order intake validates branch references.
package staffrepo

import (
	"time"

	"github.com/google/uuid"
)

// StaffDTO represents the database structure for staff members.
type StaffDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255"`
	Role      string    `gorm:"size:32;index"`
	CreatedAt time.Time
}

// TableName specifies the database table name for staff members.
func (StaffDTO) TableName() string {
	return "staff"
}

// BranchMembershipDTO links staff members to the branches they serve.
// A pharmacist may belong to several branches.
type BranchMembershipDTO struct {
	StaffID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName specifies the database table name for branch memberships.
func (BranchMembershipDTO) TableName() string {
	return "branch_user"
}

// BranchDTO represents the database structure for pharmacy branches.
type BranchDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255"`
	Address   string
	CreatedAt time.Time
}

// TableName specifies the database table name for branches.
func (BranchDTO) TableName() string {
	return "branches"
}
