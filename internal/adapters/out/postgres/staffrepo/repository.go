package staffrepo

import (
	"context"
	"errors"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/staff"
	"pharmadelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStaffRepository implements StaffRepository using GORM.
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GORM staff repository.
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// FindPharmacistForBranch returns the first pharmacist whose branch
// memberships include the given branch. Selection is first-match; no
// load balancing.
func (r *GormStaffRepository) FindPharmacistForBranch(ctx context.Context, branchID kernel.UUID) (kernel.UUID, error) {
	if err := branchID.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	var dto StaffDTO
	err := r.db.WithContext(ctx).
		Joins("JOIN branch_user ON branch_user.staff_id = staff.id").
		Where("staff.role = ? AND branch_user.branch_id = ?", staff.RolePharmacist.String(), branchID.Bytes()).
		Order("staff.created_at").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.UUID{}, errs.NewObjectNotFoundError("pharmacist", branchID.String())
		}
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromBytes(dto.ID[:])
}

// GormBranchRepository implements BranchRepository using GORM.
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GORM branch repository.
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// Exists reports whether a branch with the given ID is registered.
func (r *GormBranchRepository) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&BranchDTO{}).
		Where("id = ?", id.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
