package diag

import (
	"fmt"
)

// Code is a stable numeric identifier for one problem kind. Codes are
// grouped by the phase that produces them; canonicalization owns the 3xxx
// range, the orchestrator the 4xxx range.
type Code uint16

const (
	UnknownCode Code = 0

	// Canonicalization problems.
	CanInfo                      Code = 3000
	CanUnresolvedIdent           Code = 3001
	CanUnresolvedTag             Code = 3002
	CanDuplicateBindingInPattern Code = 3003
	CanShadowedDefinition        Code = 3004
	CanIllegalCycle              Code = 3005
	CanModuleNotImported         Code = 3006
	CanValueNotExposed           Code = 3007
	CanExportNotDefined          Code = 3008
	CanDuplicateTopLevel         Code = 3009
	CanAnnotationWithoutDef      Code = 3010

	// Exhaustiveness findings, forwarded from the collaborator.
	CanNonExhaustiveMatch Code = 3100
	CanUnreachableArm     Code = 3101

	// Module graph / orchestration problems.
	DrvImportCycle     Code = 4001
	DrvUnknownModule   Code = 4002
	DrvDuplicateModule Code = 4003
)

var codeNames = map[Code]string{
	UnknownCode:                  "Unknown",
	CanInfo:                      "CanInfo",
	CanUnresolvedIdent:           "CanUnresolvedIdent",
	CanUnresolvedTag:             "CanUnresolvedTag",
	CanDuplicateBindingInPattern: "CanDuplicateBindingInPattern",
	CanShadowedDefinition:        "CanShadowedDefinition",
	CanIllegalCycle:              "CanIllegalCycle",
	CanModuleNotImported:         "CanModuleNotImported",
	CanValueNotExposed:           "CanValueNotExposed",
	CanExportNotDefined:          "CanExportNotDefined",
	CanDuplicateTopLevel:         "CanDuplicateTopLevel",
	CanAnnotationWithoutDef:      "CanAnnotationWithoutDef",
	CanNonExhaustiveMatch:        "CanNonExhaustiveMatch",
	CanUnreachableArm:            "CanUnreachableArm",
	DrvImportCycle:               "DrvImportCycle",
	DrvUnknownModule:             "DrvUnknownModule",
	DrvDuplicateModule:           "DrvDuplicateModule",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}

// ID renders the code in the user-facing TRNxxxx form.
func (c Code) ID() string {
	return fmt.Sprintf("TRN%04d", uint16(c))
}
