package leave

import "time"

// Leave types
const (
	TypeAnnual = "annual"
	TypeSick   = "sick"
	TypeUnpaid = "unpaid"
)

// Leave request statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Request is one leave application over an inclusive date range. Regular
// requests wait for a manager; single-day applications filed to resolve a
// no-attendance issue are approved on creation.
type Request struct {
	ID           string
	EmployeeID   string
	Type         string
	StartDate    time.Time
	EndDate      time.Time
	Reason       *string
	Status       string
	AutoApproved bool
	DecidedBy    *string
	DecidedAt    *time.Time
	Note         *string // decision note from the approver
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	EmployeeName *string
}

// Days is the inclusive length of the range in calendar days.
func (r Request) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}
