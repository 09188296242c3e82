package ports

import (
	"context"

	"pharmadelivery/internal/core/domain/model/kernel"
)

// StaffRepository answers staffing questions the assignment engine needs.
type StaffRepository interface {
	// FindPharmacistForBranch returns the ID of the first pharmacist
	// whose branch membership includes the given branch. Selection is
	// first-match without load balancing. Returns
	// errs.ObjectNotFoundError when the branch has no pharmacist.
	FindPharmacistForBranch(ctx context.Context, branchID kernel.UUID) (kernel.UUID, error)
}

// BranchRepository validates branch references on incoming orders.
type BranchRepository interface {
	// Exists reports whether a branch with the given ID is registered.
	Exists(ctx context.Context, id kernel.UUID) (bool, error)
}
