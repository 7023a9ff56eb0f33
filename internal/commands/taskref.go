package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"github.com/google/uuid"

	"ntask/internal/exitcode"
	"ntask/internal/service"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num    int    // 1-based row in the unfiltered list, 0 if PageID is set
	PageID string // canonical dashed page id, "" if Num is set
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ErrTaskOutOfRange indicates a row number past the end of the list.
var ErrTaskOutOfRange = errors.New("task number out of range")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. No args → error: task reference required
// 2. All digits → row number from the unfiltered list
// 3. A UUID, with or without dashes → page id
// 4. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("unexpected argument: %s", args[1])
	}

	ref := args[0]

	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
		}
		return TaskRef{Num: num}, nil
	}

	id, err := uuid.Parse(ref)
	if err != nil {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
	}
	return TaskRef{PageID: id.String()}, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ResolveTaskRef returns the page id a reference points at. Row numbers are
// looked up in the unfiltered task list.
func ResolveTaskRef(ctx context.Context, svc service.Service, ref TaskRef) (string, error) {
	if ref.PageID != "" {
		return ref.PageID, nil
	}
	if ref.Num < 1 {
		return "", fmt.Errorf("%w: %d", ErrTaskOutOfRange, ref.Num)
	}

	set, err := svc.ListTasks(ctx, service.TaskQuery{})
	if err != nil {
		return "", err
	}
	if ref.Num > len(set.Tasks) {
		return "", fmt.Errorf("%w: %d", ErrTaskOutOfRange, ref.Num)
	}
	return set.Tasks[ref.Num-1].ID, nil
}

// resolveRefArgs parses and resolves args, printing any error. It returns the
// page id and exit code; the id is empty when the code is non-zero.
func resolveRefArgs(ctx context.Context, svc service.Service, args []string, errOut io.Writer) (string, int) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return "", exitcode.UserError
	}

	id, err := ResolveTaskRef(ctx, svc, ref)
	if err != nil {
		if errors.Is(err, ErrTaskOutOfRange) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return "", exitcode.UserError
		}
		return "", reportError(errOut, err)
	}
	return id, exitcode.Success
}
