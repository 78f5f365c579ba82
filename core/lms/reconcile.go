package lms

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/note"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/subject"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/task"
)

// upsertFunc applies one external record against the local store.
// written reports whether a local entity was created or updated;
// (false, nil) means the record was deliberately skipped.
type upsertFunc[T any] func(ctx context.Context, item T) (written bool, err error)

// reconcileAll applies upsert over items one at a time, in input order.
// A failing item is logged and counted; it never aborts the collection.
func reconcileAll[T any](ctx context.Context, items []T, kind string, upsert upsertFunc[T], logger core.Logger) (synced, errCount int) {
	for _, item := range items {
		written, err := upsert(ctx, item)
		if err != nil {
			errCount++
			logger.Error(fmt.Sprintf("syncing %s: %v", kind, err), err)
			continue
		}
		if written {
			synced++
		}
	}
	return synced, errCount
}

func (svc *Service) upsertSite(ctx context.Context, userID string, site Site) (bool, error) {
	existing, err := svc.subjects.GetSubjectByExternalID(ctx, userID, site.ID)
	switch errors.Cause(err) {
	case nil:
		// only content fields change; manually set color/kind survive
		existing.Name = site.Title
		existing.UpdatedAt = nowFunc().UTC()
		if _, err = svc.subjects.UpdateSubject(ctx, existing); err != nil {
			return false, errors.Wrapf(err, "updating subject %s", site.ID)
		}
		return true, nil
	case subject.ErrNotFound:
		now := nowFunc().UTC()
		sub := subject.Subject{
			UserID:     userID,
			Name:       site.Title,
			Color:      subject.DefaultColor,
			Kind:       subject.KindOther,
			ExternalID: null.StringFrom(site.ID),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if _, err = svc.subjects.CreateSubject(ctx, sub); err != nil {
			return false, errors.Wrapf(err, "creating subject %s", site.ID)
		}
		return true, nil
	default:
		return false, errors.Wrapf(err, "resolving subject %s", site.ID)
	}
}

// resolveSubjectID maps an external site id to the local subject synced from it.
// A miss yields an invalid null.String, not an error.
func (svc *Service) resolveSubjectID(ctx context.Context, userID, siteID string) (null.String, error) {
	if siteID == "" {
		return null.String{}, nil
	}
	sub, err := svc.subjects.GetSubjectByExternalID(ctx, userID, siteID)
	switch errors.Cause(err) {
	case nil:
		return null.StringFrom(sub.ID), nil
	case subject.ErrNotFound:
		return null.String{}, nil
	default:
		return null.String{}, errors.Wrapf(err, "resolving subject for site %s", siteID)
	}
}

func (svc *Service) upsertAssignment(ctx context.Context, userID string, asg Assignment) (bool, error) {
	subjectID, err := svc.resolveSubjectID(ctx, userID, asg.Context)
	if err != nil {
		return false, err
	}

	dueAt, dueKnown := resolveDueAt(asg)
	if !dueKnown {
		svc.logger.Warn(fmt.Sprintf("assignment %s carries no due date; defaulting to now", asg.ID))
	}

	existing, err := svc.tasks.GetTaskByExternalID(ctx, userID, asg.ID)
	switch errors.Cause(err) {
	case nil:
		existing.Title = asg.Title
		existing.Description = asg.Instructions
		existing.SubjectID = subjectID
		existing.DueAt = dueAt
		existing.UpdatedAt = nowFunc().UTC()
		if _, err = svc.tasks.UpdateTask(ctx, existing); err != nil {
			return false, errors.Wrapf(err, "updating task %s", asg.ID)
		}
		return true, nil
	case task.ErrNotFound:
		now := nowFunc().UTC()
		tsk := task.Task{
			UserID:      userID,
			SubjectID:   subjectID,
			Title:       asg.Title,
			Description: asg.Instructions,
			Status:      task.StatusNotStarted,
			DueAt:       dueAt,
			ExternalID:  null.StringFrom(asg.ID),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err = svc.tasks.CreateTask(ctx, tsk); err != nil {
			return false, errors.Wrapf(err, "creating task %s", asg.ID)
		}
		return true, nil
	default:
		return false, errors.Wrapf(err, "resolving task %s", asg.ID)
	}
}

func (svc *Service) upsertAnnouncement(ctx context.Context, userID string, ann Announcement) (bool, error) {
	subjectID, err := svc.resolveSubjectID(ctx, userID, ann.SiteID)
	if err != nil {
		return false, err
	}
	if !subjectID.Valid {
		// notes require a subject; an orphan announcement is dropped, not an error
		return false, nil
	}

	existing, err := svc.notes.GetNoteByExternalID(ctx, userID, ann.ID)
	switch errors.Cause(err) {
	case nil:
		existing.Title = ann.Title
		existing.Body = ann.Body
		existing.SubjectID = subjectID.String
		existing.UpdatedAt = nowFunc().UTC()
		if _, err = svc.notes.UpdateNote(ctx, existing); err != nil {
			return false, errors.Wrapf(err, "updating note %s", ann.ID)
		}
		return true, nil
	case note.ErrNotFound:
		now := nowFunc().UTC()
		nte := note.Note{
			UserID:     userID,
			SubjectID:  subjectID.String,
			Title:      ann.Title,
			Body:       ann.Body,
			ExternalID: null.StringFrom(ann.ID),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if _, err = svc.notes.CreateNote(ctx, nte); err != nil {
			return false, errors.Wrapf(err, "creating note %s", ann.ID)
		}
		return true, nil
	default:
		return false, errors.Wrapf(err, "resolving note %s", ann.ID)
	}
}
