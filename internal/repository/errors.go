package repository

import "errors"

// Common repository errors
var (
	// ErrProjectNotFound is returned when a project is not found, or when an
	// ownership-scoped lookup does not match. The two cases are deliberately
	// indistinguishable.
	ErrProjectNotFound = errors.New("project not found")

	// ErrRepositoryNotFound is returned when a repository is not found
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrKanbanNotFound is returned when a kanban board is not found
	ErrKanbanNotFound = errors.New("kanban not found")

	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrFileNotFound is returned when a file is not found
	ErrFileNotFound = errors.New("file not found")

	// ErrDuplicateHash is returned when identical content has already been
	// committed to the same repository
	ErrDuplicateHash = errors.New("file content already committed")

	// ErrDuplicateCollaborator is returned when the user is already linked to
	// the project
	ErrDuplicateCollaborator = errors.New("user is already a collaborator")
)
