package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAslab     RoleType = "ASLAB"     // lab assistant / instructor
	RolePraktikan RoleType = "PRAKTIKAN" // student
)

// LinkedType identifies which entity a news item points at
type LinkedType string

const (
	LinkedTypeClass      LinkedType = "CLASS"
	LinkedTypeModule     LinkedType = "MODULE"
	LinkedTypeAssignment LinkedType = "ASSIGNMENT"
)

// IsValid reports whether the linked type is one of the known entity kinds.
func (t LinkedType) IsValid() bool {
	switch t {
	case LinkedTypeClass, LinkedTypeModule, LinkedTypeAssignment:
		return true
	}
	return false
}

// MaxFilesPerModule is the hard cap on attachments per module.
const MaxFilesPerModule = 5

// MaxFilesPerSubmission is the hard cap on file URLs per submission.
const MaxFilesPerSubmission = 5
