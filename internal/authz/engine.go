// Package authz decides whether an actor has standing over a resource by
// walking the ownership edges. A category or task is reachable through a
// direct user edge; a subtask has no edge of its own and inherits the
// parent task's owner set at check time.
package authz

import (
	"context"

	"taskdeck/internal/apperr"
)

type Kind string

const (
	KindCategory Kind = "category"
	KindTask     Kind = "task"
	KindSubtask  Kind = "subtask"
)

// EdgeStore is the slice of the store the engine needs: edge existence and
// subtask parent resolution. Nothing else about the entities matters here.
type EdgeStore interface {
	HasUserCategory(ctx context.Context, userID, categoryID int) (bool, error)
	HasUserTask(ctx context.Context, userID, taskID int) (bool, error)
	SubtaskParent(ctx context.Context, subtaskID int) (int, error)
}

type Engine struct {
	edges EdgeStore
}

func NewEngine(edges EdgeStore) *Engine {
	return &Engine{edges: edges}
}

// Authorize returns nil when the actor has standing over the target and a
// Forbidden error when it does not. The engine assumes the target exists;
// callers resolve existence first and report NotFound themselves.
func (e *Engine) Authorize(ctx context.Context, actorID int, kind Kind, targetID int) error {
	switch kind {
	case KindCategory:
		ok, err := e.edges.HasUserCategory(ctx, actorID, targetID)
		if err != nil {
			return apperr.Wrap(apperr.Internal, "checking category ownership", err)
		}
		if !ok {
			return apperr.Newf(apperr.Forbidden, "user %d has no standing on category %d", actorID, targetID)
		}
		return nil

	case KindTask:
		ok, err := e.edges.HasUserTask(ctx, actorID, targetID)
		if err != nil {
			return apperr.Wrap(apperr.Internal, "checking task ownership", err)
		}
		if !ok {
			return apperr.Newf(apperr.Forbidden, "user %d has no standing on task %d", actorID, targetID)
		}
		return nil

	case KindSubtask:
		// Inheritance: resolve the parent and adjudicate against its edges.
		// Never cached, so a change of parent ownership is effective at once.
		taskID, err := e.edges.SubtaskParent(ctx, targetID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return err
			}
			return apperr.Wrap(apperr.Internal, "resolving subtask parent", err)
		}
		return e.Authorize(ctx, actorID, KindTask, taskID)

	default:
		return apperr.Newf(apperr.Internal, "unknown resource kind %q", kind)
	}
}
