package diag

import (
	"fmt"
)

// Code identifies a diagnostic. The numeric value is stable: the process
// exit status of a failed build is derived from it (see ExitStatus).
type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = iota

	// Errors
	ModuleNotFoundError
	NoMainError
	SyntaxError
	IOLoadFileError
	InvalidExternBinding
	DuplicateModule

	// Warnings
	ShadowedExtern

	// Info
	EmptyModule

	// Errors added later; appended so the codes above keep their numbers.
	ModuleCycle
)

var (
	codeSeverity = map[Code]Severity{
		UnknownCode:          SevError,
		ModuleNotFoundError:  SevError,
		NoMainError:          SevError,
		SyntaxError:          SevError,
		IOLoadFileError:      SevError,
		InvalidExternBinding: SevError,
		DuplicateModule:      SevError,
		ShadowedExtern:       SevWarning,
		EmptyModule:          SevInfo,
		ModuleCycle:          SevError,
	}

	codeDescription = map[Code]string{
		UnknownCode:          "Unknown error",
		ModuleNotFoundError:  "Module not found",
		NoMainError:          "No entry point",
		SyntaxError:          "Syntax error",
		IOLoadFileError:      "Failed to load file",
		InvalidExternBinding: "Invalid external library binding",
		DuplicateModule:      "Module declared twice",
		ShadowedExtern:       "External library shadows a system library",
		EmptyModule:          "Module has no items",
		ModuleCycle:          "Module includes itself",
	}
)

// Severity returns the severity a code is always reported with.
func (c Code) Severity() Severity {
	if sev, ok := codeSeverity[c]; ok {
		return sev
	}
	return SevError
}

// ID renders the code the way it appears in output, e.g. "error[1]".
func (c Code) ID() string {
	return fmt.Sprintf("%s[%d]", c.Severity().Label(), uint16(c))
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// ExitStatus is the process status reported when this code aborts a build.
// Zero is reserved for success.
func (c Code) ExitStatus() int {
	return int(c) + 1
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
